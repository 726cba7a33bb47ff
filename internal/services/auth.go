package services

import (
	"billed/internal/logger"
	"billed/internal/models"
	"billed/internal/repository"
	"billed/internal/utils"
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrEmailTaken         = errors.New("адрес электронной почты уже зарегистрирован")
	ErrInvalidEmail       = errors.New("некорректный email")
	ErrWeakPassword       = errors.New("пароль слишком короткий")
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	BlacklistAccessToken(ctx context.Context, token string, expiresAt time.Time) error
}

func (s *AuthService) RegisterUser(ctx context.Context, email, plainPassword string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Log.Info("Регистрация пользователя (service)", zap.String("email", email))

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(plainPassword) < 6 {
		return nil, ErrWeakPassword
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		logger.Log.Error("Ошибка проверки email", zap.Error(err))
		return nil, err
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		Type:         models.UserTypeEmployee,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("email", email))
	return user, nil
}

func (s *AuthService) LoginUser(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL time.Duration,
) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("email", email), zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Email, user.Type, accessTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return "", nil, err
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("email", email))
	return accessToken, user, nil
}

// Logout — токен попадает в блоклист до истечения.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	logger.Log.Info("Выход пользователя (service)")
	return s.repo.BlacklistAccessToken(ctx, token, expiresAt)
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
