package storage

import (
	"billed/internal/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidPath = errors.New("путь вне каталога загрузок")

// ReceiptStorage хранит файлы чеков на диске: <base>/<yyyy>/<mm>/<uuid>.<ext>
type ReceiptStorage struct {
	baseDir string
	now     func() time.Time
}

func NewReceiptStorage(baseDir string) (*ReceiptStorage, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ReceiptStorage{baseDir: abs, now: time.Now}, nil
}

// Save сохраняет файл и возвращает относительный путь (со слешами).
func (s *ReceiptStorage) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	now := s.now()
	rel := filepath.Join(now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	full := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(full), os.ModePerm); err != nil {
		logger.Log.Error("Ошибка создания каталога для чека", zap.String("path", full), zap.Error(err))
		return "", fmt.Errorf("create dir: %w", err)
	}

	dst, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Log.Error("Ошибка при сохранении файла", zap.String("path", full), zap.Error(err))
		return "", fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(dst, r)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		logger.Log.Error("Ошибка записи файла чека", zap.String("path", full), zap.Error(err))
		return "", fmt.Errorf("write file: %w", err)
	}

	logger.Log.Debug("Чек сохранён на диск", zap.String("path", full), zap.Int64("size", n))
	return filepath.ToSlash(rel), nil
}

func (s *ReceiptStorage) Open(rel string) (*os.File, error) {
	full, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (s *ReceiptStorage) Remove(rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *ReceiptStorage) resolve(rel string) (string, error) {
	if rel == "" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if full != s.baseDir && !strings.HasPrefix(full, s.baseDir+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
