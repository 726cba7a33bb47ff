package repository

import (
	"billed/internal/logger"
	"billed/internal/models"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrBillNotFound = errors.New("note de frais не найдена")

type BillRepository struct {
	db *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{db: db}
}

const billColumns = `id, email, type, name, amount, date, vat, pct, commentary, file_url, file_name, file_path, status, created_at, updated_at`

// Создание черновика после загрузки чека
func (r *BillRepository) CreateBill(ctx context.Context, b *models.Bill) error {
	logger.Log.Info("Репозиторий: создание note de frais", zap.String("bill_id", b.ID), zap.String("email", b.Email))
	query := `
		INSERT INTO bills (id, email, pct, file_url, file_name, file_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		b.ID,
		b.Email,
		b.Pct,
		b.FileURL,
		b.FileName,
		b.FilePath,
		b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		logger.Log.Error("Ошибка создания note de frais (repo)", zap.Error(err))
	}
	return err
}

// Обновление полей формы. file_* не трогаем — они принадлежат загрузке.
func (r *BillRepository) UpdateBill(ctx context.Context, b *models.Bill) error {
	logger.Log.Info("Репозиторий: обновление note de frais", zap.String("bill_id", b.ID))
	query := `
		UPDATE bills
		SET type = $2, name = $3, amount = $4, date = $5, vat = $6, pct = $7,
		    commentary = $8, status = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		b.ID,
		b.Type,
		b.Name,
		b.Amount,
		b.Date,
		b.VAT,
		b.Pct,
		b.Commentary,
		b.Status,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBillNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка обновления note de frais (repo)", zap.String("bill_id", b.ID), zap.Error(err))
	}
	return err
}

func (r *BillRepository) GetBillByID(ctx context.Context, id string) (*models.Bill, error) {
	logger.Log.Debug("Репозиторий: получение note de frais по ID", zap.String("bill_id", id))
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	b, err := scanBill(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения note de frais по ID (repo)", zap.String("bill_id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

// Список по email; пустой email — все записи (для админа)
func (r *BillRepository) ListBills(ctx context.Context, email string) ([]*models.Bill, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if email != "" {
		rows, err = r.db.Query(ctx, `SELECT `+billColumns+` FROM bills WHERE email = $1 ORDER BY date DESC, created_at DESC`, email)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+billColumns+` FROM bills ORDER BY date DESC, created_at DESC`)
	}
	if err != nil {
		logger.Log.Error("Ошибка получения списка notes de frais (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	bills := make([]*models.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			logger.Log.Error("Ошибка сканирования note de frais (repo)", zap.Error(err))
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *BillRepository) DeleteBill(ctx context.Context, id string) error {
	logger.Log.Info("Репозиторий: удаление note de frais", zap.String("bill_id", id))
	tag, err := r.db.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления note de frais (repo)", zap.String("bill_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

func scanBill(row pgx.Row) (*models.Bill, error) {
	var (
		b        models.Bill
		filePath *string
	)
	err := row.Scan(
		&b.ID,
		&b.Email,
		&b.Type,
		&b.Name,
		&b.Amount,
		&b.Date,
		&b.VAT,
		&b.Pct,
		&b.Commentary,
		&b.FileURL,
		&b.FileName,
		&filePath,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if filePath != nil {
		b.FilePath = *filePath
	}
	return &b, nil
}
