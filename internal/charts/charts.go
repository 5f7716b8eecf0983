package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/daily_balance_bot/internal/ledger"
)

// Generator рисует графики по операциям за текущий день
type Generator struct{}

// NewGenerator создает новый генератор графиков
func NewGenerator() *Generator {
	return &Generator{}
}

// DayChart строит столбчатую диаграмму доходов и расходов за сегодня.
// Возвращает nil, если операций за день еще не было.
func (g *Generator) DayChart(stats ledger.Stats) ([]byte, error) {
	if len(stats.Transactions) == 0 {
		return nil, nil
	}

	income, _ := stats.TotalIncome.Float64()
	expense, _ := stats.TotalExpense.Float64()

	graph := chart.BarChart{
		Title:  fmt.Sprintf("Операции за %s", stats.Date.Format("02.01.2006")),
		Width:  600,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		BarWidth: 120,
		Bars: []chart.Value{
			{
				Label: "Доходы",
				Value: income,
				Style: chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen},
			},
			{
				Label: "Расходы",
				Value: expense,
				Style: chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render day chart: %w", err)
	}
	return buf.Bytes(), nil
}
