package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/daily_balance_bot/internal/model"
)

const supabaseTable = "bot_data"

// SupabaseStore хранит запись каждого пользователя в таблице bot_data
// (user_id bigint primary key, data jsonb).
type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseStore{client: client}, nil
}

type supabaseRow struct {
	UserID int64        `json:"user_id"`
	Data   model.Record `json:"data"`
}

func (s *SupabaseStore) Get(ctx context.Context, userID int64) (*model.Record, error) {
	data, count, err := s.client.From(supabaseTable).
		Select("user_id,data", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user data: %w", err)
	}
	_ = count

	var rows []supabaseRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	rec := rows[0].Data
	return &rec, nil
}

func (s *SupabaseStore) Put(ctx context.Context, userID int64, rec *model.Record) error {
	row := supabaseRow{UserID: userID, Data: *rec}
	_, count, err := s.client.From(supabaseTable).
		Insert(row, true, "user_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save user data: %w", err)
	}
	_ = count
	return nil
}
