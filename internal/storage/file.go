package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/ivanoskov/daily_balance_bot/internal/model"
)

const fileDataVersion = 1

type fileEnvelope struct {
	Version int                     `json:"version"`
	Users   map[string]model.Record `json:"users"`
}

// FileStore хранит данные всех пользователей в одном JSON-файле.
// Каждый Put сразу пишет файл целиком (через временный файл и rename),
// поэтому данные переживают падение процесса.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	users    map[string]model.Record
}

// NewFileStore открывает хранилище, создавая файл и каталог при надобности
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	s := &FileStore{filePath: path, users: make(map[string]model.Record)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("parse data file %s: %w", s.filePath, err)
	}
	if env.Users != nil {
		s.users = env.Users
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, userID int64) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[userKey(userID)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *FileStore) Put(ctx context.Context, userID int64, rec *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[userKey(userID)] = *rec
	return s.save()
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(fileEnvelope{Version: fileDataVersion, Users: s.users}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
