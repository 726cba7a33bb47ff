package handlers

import (
	"billed/internal/logger"
	"billed/internal/middleware"
	"billed/internal/models"
	"billed/internal/services"
	helpers "billed/internal/utils/helpres"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, plainPassword string) (*models.User, error)
	LoginUser(ctx context.Context, email, password, jwtSecret string, accessTTL time.Duration) (string, *models.User, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

type AuthHandler struct {
	authService AuthService
	jwtSecret   string
	accessTTL   time.Duration
}

func NewAuthHandler(authService AuthService, jwtSecret string, accessTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   jwtSecret,
		accessTTL:   accessTTL,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	Type        string `json:"type"`
}

// Register godoc
// @Summary Регистрация сотрудника
// @Tags auth
// @Accept json
// @Produce json
// @Param input body credentialsRequest true "Email и пароль"
// @Success 201 {object} models.UserProfileResponse
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	user, err := h.authService.RegisterUser(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		helpers.Error(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("Ошибка регистрации пользователя", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сервера")
		return
	}

	helpers.JSON(w, http.StatusCreated, models.UserProfileResponse{ID: user.ID, Email: user.Email, Type: user.Type})
}

// Login godoc
// @Summary Авторизация пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body credentialsRequest true "Данные для входа"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Неверный логин или пароль"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	access, user, err := h.authService.LoginUser(r.Context(), req.Email, req.Password, h.jwtSecret, h.accessTTL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			helpers.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка входа пользователя", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сервера")
		return
	}

	logger.WithCtx(r.Context()).Info("Вход выполнен", zap.String("email", user.Email), zap.String("type", user.Type))
	helpers.JSON(w, http.StatusOK, loginResponse{
		AccessToken: access,
		Email:       user.Email,
		Type:        user.Type,
	})
}

// Logout godoc
// @Summary Выход (токен в блоклист)
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {string} string "Выход выполнен"
// @Failure 401 {string} string "Невалидный токен"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, exp, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Невалидный токен")
		return
	}
	if err := h.authService.Logout(r.Context(), token, exp); err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка выхода", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сервера")
		return
	}
	helpers.JSON(w, http.StatusOK, "Выход выполнен")
}

// Profile godoc
// @Summary Данные текущего пользователя
// @Tags profile
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.UserProfileResponse
// @Failure 401 {string} string "Нет доступа"
// @Router /api/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}
	user, err := h.authService.GetUserByID(r.Context(), actor.UserID)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Пользователь не найден", zap.Error(err))
		helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}
	helpers.JSON(w, http.StatusOK, models.UserProfileResponse{ID: user.ID, Email: user.Email, Type: user.Type})
}
