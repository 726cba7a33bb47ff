package repository

import (
	"billed/internal/logger"
	"billed/internal/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("пользователь не найден")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// UserRepo — то, что нужно middleware для проверки токенов.
type UserRepo interface {
	IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("email", user.Email), zap.String("type", user.Type))
	query := `
	INSERT INTO users (email, password_hash, type)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Type,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", email))
	query := `SELECT id, email, password_hash, type, created_at FROM users WHERE email = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Type,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по email (repo)", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.Int("user_id", id))
	query := `SELECT id, email, password_hash, type, created_at FROM users WHERE id = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Type,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по ID (repo)", zap.Int("user_id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// BlacklistAccessToken — токен после logout недействителен до своего exp.
func (r *UserRepository) BlacklistAccessToken(ctx context.Context, token string, expiresAt time.Time) error {
	logger.Log.Debug("Добавление токена в блоклист (repo)")
	query := `
	INSERT INTO token_blacklist (token, expires_at) VALUES ($1, $2)
	ON CONFLICT (token) DO NOTHING`
	_, err := r.db.Exec(ctx, query, token, expiresAt)
	if err != nil {
		logger.Log.Error("Ошибка добавления токена в блоклист (repo)", zap.Error(err))
	}
	return err
}

func (r *UserRepository) IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, token).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки блоклиста (repo)", zap.Error(err))
	}
	return exists, err
}

// PurgeExpiredTokens чистит блоклист от токенов, которые и так истекли.
func (r *UserRepository) PurgeExpiredTokens(ctx context.Context) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM token_blacklist WHERE expires_at < now()`)
	if err != nil {
		logger.Log.Error("Ошибка очистки блоклиста (repo)", zap.Error(err))
		return err
	}
	logger.Log.Debug("Блоклист очищен (repo)", zap.Int64("deleted", tag.RowsAffected()))
	return nil
}
