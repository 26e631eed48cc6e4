package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/joyashop/pkg/models"
	"github.com/example/joyashop/pkg/service"
)

func setupUsers(t *testing.T) (*service.UsersService, *mockUserStore) {
	t.Helper()
	users := newMockUserStore()
	return service.NewUsersService(users, zap.NewNop()), users
}

func TestCreateUser(t *testing.T) {
	svc, store := setupUsers(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.User{
		Email:    "ana@example.com",
		Password: "secreto",
		Name:     "Ana",
		Address:  "Calle 1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleCliente, created.Role)
	assert.Empty(t, created.Password, "password must not be echoed")

	stored, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secreto")))

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.User{Email: "luis@example.com"})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.User{
			Email: "luis@example.com", Password: "x", Name: "Luis", Address: "Calle 2",
			Role: models.Role("gerente"),
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.User{
			Email: "ana@example.com", Password: "x", Name: "Ana", Address: "Calle 1",
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestUpdateUser(t *testing.T) {
	svc, store := setupUsers(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.User{
		Email: "ana@example.com", Password: "secreto", Name: "Ana", Address: "Calle 1",
	})
	require.NoError(t, err)

	t.Run("rehashes a changed password", func(t *testing.T) {
		newPassword := "nuevo"
		updated, err := svc.Update(ctx, created.ID, models.UserPatch{Password: &newPassword})
		require.NoError(t, err)
		assert.Empty(t, updated.Password)

		stored, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("nuevo")))
	})

	t.Run("unknown role", func(t *testing.T) {
		bogus := models.Role("gerente")
		_, err := svc.Update(ctx, created.ID, models.UserPatch{Role: &bogus})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("missing user", func(t *testing.T) {
		name := "Luis"
		_, err := svc.Update(ctx, primitive.NewObjectID(), models.UserPatch{Name: &name})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestListUsersStripsPasswords(t *testing.T) {
	svc, _ := setupUsers(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.User{
		Email: "ana@example.com", Password: "secreto", Name: "Ana", Address: "Calle 1",
	})
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
}

func TestGetByEmailKeepsHashForLogin(t *testing.T) {
	svc, _ := setupUsers(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.User{
		Email: "ana@example.com", Password: "secreto", Name: "Ana", Address: "Calle 1",
	})
	require.NoError(t, err)

	u, err := svc.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, u.Password)

	_, err = svc.GetByEmail(ctx, "nadie@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
