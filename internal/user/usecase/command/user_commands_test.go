package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tansu/stockroom/internal/user/domain"
	"github.com/tansu/stockroom/internal/user/repository"
)

func newTestRepo(t *testing.T) *repository.GormUserRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func registerUser(t *testing.T, repo domain.UserRepository, username, role string) *domain.User {
	t.Helper()

	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter22",
		FullName: "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUser(t *testing.T) {
	repo := newTestRepo(t)

	user := registerUser(t, repo, "jdoe", "")
	assert.Equal(t, domain.RoleEmployee, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "hunter22", user.Password)

	admin := registerUser(t, repo, "boss", domain.RoleAdmin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestRegisterUserValidation(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewRegisterUserHandler(repo)
	registerUser(t, repo, "jdoe", "")

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing username", RegisterUserCommand{Email: "a@b.c", Password: "hunter22", FullName: "A"}},
		{"missing email", RegisterUserCommand{Username: "a", Password: "hunter22", FullName: "A"}},
		{"short password", RegisterUserCommand{Username: "a", Email: "a@b.c", Password: "short", FullName: "A"}},
		{"missing full name", RegisterUserCommand{Username: "a", Email: "a@b.c", Password: "hunter22"}},
		{"invalid role", RegisterUserCommand{Username: "a", Email: "a@b.c", Password: "hunter22", FullName: "A", Role: "superuser"}},
		{"duplicate username", RegisterUserCommand{Username: "jdoe", Email: "new@example.com", Password: "hunter22", FullName: "A"}},
		{"duplicate email", RegisterUserCommand{Username: "new", Email: "jdoe@example.com", Password: "hunter22", FullName: "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestLoginUser(t *testing.T) {
	repo := newTestRepo(t)
	registerUser(t, repo, "jdoe", "")
	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Username: "jdoe", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jdoe", resp.User.Username)

	_, err = handler.Handle(LoginUserCommand{Username: "jdoe", Password: "wrong"})
	assert.EqualError(t, err, "invalid credentials")

	_, err = handler.Handle(LoginUserCommand{Username: "nobody", Password: "hunter22"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginUserDeactivated(t *testing.T) {
	repo := newTestRepo(t)
	user := registerUser(t, repo, "jdoe", "")

	_, err := NewToggleActiveHandler(repo).Handle(ToggleActiveCommand{UserID: user.ID, IsActive: false})
	require.NoError(t, err)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "jdoe", Password: "hunter22"})
	assert.EqualError(t, err, "account is deactivated")
}

func TestChangeRole(t *testing.T) {
	repo := newTestRepo(t)
	user := registerUser(t, repo, "jdoe", "")
	handler := NewChangeRoleHandler(repo)

	updated, err := handler.Handle(ChangeRoleCommand{UserID: user.ID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	_, err = handler.Handle(ChangeRoleCommand{UserID: user.ID, Role: "superuser"})
	assert.Error(t, err)

	_, err = handler.Handle(ChangeRoleCommand{UserID: 9999, Role: domain.RoleAdmin})
	assert.Error(t, err)
}
