package services

import (
	"billed/internal/models"
	"billed/internal/repository"
	"billed/internal/utils"
	"context"
	"errors"
	"testing"
	"time"
)

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users       map[string]*models.User
	lastUser    *models.User
	blacklisted map[string]time.Time
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User), blacklisted: make(map[string]time.Time)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = len(m.users) + 1
	m.users[user.Email] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) BlacklistAccessToken(_ context.Context, token string, exp time.Time) error {
	m.blacklisted[token] = exp
	return nil
}

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	user, err := service.RegisterUser(context.Background(), " Employee@Test.tld ", "secret")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" || repo.lastUser.PasswordHash == "secret" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if user.Email != "employee@test.tld" || user.Type != models.UserTypeEmployee {
		t.Fatalf("неожиданный пользователь: %+v", user)
	}
}

func TestRegisterUser_Duplicate(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	if _, err := service.RegisterUser(context.Background(), "a@a.fr", "secret"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}
	_, err := service.RegisterUser(context.Background(), "a@a.fr", "secret")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("ожидалась ErrEmailTaken, получено %v", err)
	}
}

func TestRegisterUser_Validation(t *testing.T) {
	service := NewAuthService(newMockUserRepo())

	if _, err := service.RegisterUser(context.Background(), "not-an-email", "secret"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("ожидалась ErrInvalidEmail, получено %v", err)
	}
	if _, err := service.RegisterUser(context.Background(), "a@a.fr", "123"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("ожидалась ErrWeakPassword, получено %v", err)
	}
}

func TestLoginUser_Success(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	// создаём пользователя вручную
	hashed, _ := utils.HashPassword("secret")
	repo.users["a@a"] = &models.User{
		ID:           1,
		Email:        "a@a",
		PasswordHash: hashed,
		Type:         models.UserTypeEmployee,
	}

	access, user, err := service.LoginUser(context.Background(), "a@a", "secret", "mysecret", 15*time.Minute)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}

	if access == "" || user == nil {
		t.Fatal("токен не сгенерирован")
	}

	claims, err := utils.ParseToken("mysecret", access)
	if err != nil {
		t.Fatalf("токен не разбирается: %v", err)
	}
	if claims.Email != "a@a" || claims.Type != models.UserTypeEmployee {
		t.Fatalf("неожиданные claims: %+v", claims)
	}
}

func TestLoginUser_Fail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	_, _, err := service.LoginUser(context.Background(), "unknown", "pass", "secret", time.Minute)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("ожидалась ошибка при логине несуществующего пользователя")
	}

	hashed, _ := utils.HashPassword("secret")
	repo.users["a@a"] = &models.User{ID: 1, Email: "a@a", PasswordHash: hashed, Type: models.UserTypeEmployee}
	_, _, err = service.LoginUser(context.Background(), "a@a", "wrong", "secret", time.Minute)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("ожидалась ошибка при неверном пароле")
	}
}

func TestLogout(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	exp := time.Now().Add(time.Hour)
	if err := service.Logout(context.Background(), "tok", exp); err != nil {
		t.Fatalf("ошибка выхода: %v", err)
	}
	if got, ok := repo.blacklisted["tok"]; !ok || !got.Equal(exp) {
		t.Fatal("токен не попал в блоклист")
	}
}
