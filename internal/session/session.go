// Package session хранит сессию CLI (email, тип, access token) в JSON-файле.
package session

import (
	"billed/internal/newbill"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoSession = errors.New("сессия не найдена, выполните login")

// Load читает сессию. Файл без email считается отсутствующей сессией.
func Load(path string) (newbill.Session, error) {
	var s newbill.Session
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, ErrNoSession
	}
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("decode session %s: %w", path, err)
	}
	if strings.TrimSpace(s.Email) == "" {
		return newbill.Session{}, ErrNoSession
	}
	return s, nil
}

func Save(path string, s newbill.Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, path)
}

// Clear удаляет файл сессии; отсутствие файла не ошибка.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
