package services

import (
	"billed/internal/logger"
	"billed/internal/models"
	"billed/internal/newbill"
	"billed/internal/repository"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

var (
	ErrBillNotFound     = repository.ErrBillNotFound
	ErrForbidden        = errors.New("доступ запрещён")
	ErrInvalidBill      = errors.New("некорректная note de frais")
	ErrInvalidExtension = newbill.ErrInvalidExtension
)

type BillRepo interface {
	CreateBill(ctx context.Context, b *models.Bill) error
	UpdateBill(ctx context.Context, b *models.Bill) error
	GetBillByID(ctx context.Context, id string) (*models.Bill, error)
	ListBills(ctx context.Context, email string) ([]*models.Bill, error)
	DeleteBill(ctx context.Context, id string) error
}

type ReceiptStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Open(rel string) (*os.File, error)
	Remove(rel string) error
}

type BillService struct {
	repo      BillRepo
	files     ReceiptStore
	publicURL string
	policy    *bluemonday.Policy
}

func NewBillService(repo BillRepo, files ReceiptStore, publicURL string) *BillService {
	return &BillService{
		repo:      repo,
		files:     files,
		publicURL: strings.TrimRight(publicURL, "/"),
		policy:    bluemonday.StrictPolicy(),
	}
}

// clean убирает разметку из текстовых полей формы (их показывает дашборд админа).
func (s *BillService) clean(v string) string {
	return strings.TrimSpace(s.policy.Sanitize(v))
}

// CreateReceipt — "create" удалённого хранилища: сохраняет чек и заводит
// черновик note de frais со статусом pending.
func (s *BillService) CreateReceipt(ctx context.Context, actor models.Actor, email, fileName string, r io.Reader) (*models.ReceiptUpload, error) {
	if !newbill.IsAllowedFile(fileName) {
		logger.Log.Warn("Сервис: недопустимое расширение чека", zap.String("file", fileName))
		return nil, ErrInvalidExtension
	}
	if email == "" {
		email = actor.Email
	}
	if email != actor.Email && !actor.IsAdmin() {
		logger.Log.Warn("Сервис: email формы не совпадает с сессией", zap.String("email", email), zap.String("session", actor.Email))
		return nil, ErrForbidden
	}

	rel, err := s.files.Save(ctx, fileName, r)
	if err != nil {
		return nil, fmt.Errorf("save receipt: %w", err)
	}

	id := uuid.NewString()
	fileURL := s.publicURL + "/api/bills/" + id + "/file"
	name := fileName
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	bill := &models.Bill{
		ID:       id,
		Email:    email,
		Pct:      newbill.DefaultPct,
		FileURL:  &fileURL,
		FileName: &name,
		FilePath: rel,
		Status:   models.BillStatusPending,
	}
	if err := s.repo.CreateBill(ctx, bill); err != nil {
		_ = s.files.Remove(rel)
		return nil, fmt.Errorf("create bill: %w", err)
	}

	logger.Log.Info("Сервис: чек загружен", zap.String("bill_id", id), zap.String("email", email))
	return &models.ReceiptUpload{FileURL: fileURL, Key: id}, nil
}

// UpdateBill — "update" удалённого хранилища: заполняет поля формы.
func (s *BillService) UpdateBill(ctx context.Context, actor models.Actor, id string, in *models.Bill) (*models.Bill, error) {
	bill, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateBill(in); err != nil {
		logger.Log.Warn("Сервис: некорректная note de frais", zap.String("bill_id", id), zap.Error(err))
		return nil, err
	}

	bill.Type = s.clean(in.Type)
	bill.Name = s.clean(in.Name)
	bill.Amount = in.Amount
	bill.Date = in.Date
	bill.VAT = s.clean(in.VAT)
	bill.Pct = in.Pct
	if bill.Pct == 0 {
		bill.Pct = newbill.DefaultPct
	}
	bill.Commentary = s.clean(in.Commentary)
	bill.Status = models.BillStatusPending

	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		return nil, err
	}
	logger.Log.Info("Сервис: note de frais обновлена", zap.String("bill_id", id))
	return bill, nil
}

func validateBill(b *models.Bill) error {
	if b == nil {
		return fmt.Errorf("%w: пустое тело", ErrInvalidBill)
	}
	if b.Status != "" && b.Status != models.BillStatusPending {
		return fmt.Errorf("%w: статус %q", ErrInvalidBill, b.Status)
	}
	if b.Amount <= 0 {
		return fmt.Errorf("%w: сумма должна быть больше нуля", ErrInvalidBill)
	}
	if _, err := time.Parse(models.BillDateLayout, b.Date); err != nil {
		return fmt.Errorf("%w: дата %q", ErrInvalidBill, b.Date)
	}
	if b.Pct < 0 || b.Pct > 100 {
		return fmt.Errorf("%w: pct %d", ErrInvalidBill, b.Pct)
	}
	return nil
}

func (s *BillService) GetBill(ctx context.Context, actor models.Actor, id string) (*models.Bill, error) {
	return s.getOwned(ctx, actor, id)
}

// ListBills — свои записи для сотрудника, все — для админа.
func (s *BillService) ListBills(ctx context.Context, actor models.Actor) ([]*models.Bill, error) {
	email := actor.Email
	if actor.IsAdmin() {
		email = ""
	}
	return s.repo.ListBills(ctx, email)
}

// OpenReceipt — файл чека для скачивания. Вызывающий закрывает файл.
func (s *BillService) OpenReceipt(ctx context.Context, actor models.Actor, id string) (*os.File, *models.Bill, error) {
	bill, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.files.Open(bill.FilePath)
	if err != nil {
		logger.Log.Error("Файл чека не найден на диске", zap.String("path", bill.FilePath), zap.Error(err))
		return nil, nil, fmt.Errorf("open receipt: %w", err)
	}
	return f, bill, nil
}

func (s *BillService) DeleteBill(ctx context.Context, actor models.Actor, id string) error {
	bill, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		return err
	}
	if err := s.files.Remove(bill.FilePath); err != nil {
		logger.Log.Warn("Не удалось удалить файл чека", zap.String("path", bill.FilePath), zap.Error(err))
	}
	return nil
}

func (s *BillService) getOwned(ctx context.Context, actor models.Actor, id string) (*models.Bill, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBillNotFound
	}
	bill, err := s.repo.GetBillByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Email != actor.Email && !actor.IsAdmin() {
		logger.Log.Warn("Попытка доступа к чужой note de frais", zap.String("bill_id", id), zap.String("email", actor.Email))
		return nil, ErrForbidden
	}
	return bill, nil
}
