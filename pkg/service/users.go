package service

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/joyashop/pkg/models"
)

type UsersService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUsersService(users UserStore, logger *zap.Logger) *UsersService {
	return &UsersService{users: users, logger: logger}
}

func (s *UsersService) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if u.Email == "" || u.Password == "" || u.Name == "" || u.Address == "" {
		return nil, errors.Wrap(models.ErrInvalidInput, "email, password, name and address are required")
	}
	if u.Role == "" {
		u.Role = models.RoleCliente
	}
	if !u.Role.Valid() {
		return nil, errors.Wrapf(models.ErrInvalidInput, "invalid role %q", u.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u.Password = string(hash)

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return sanitize(u), nil
}

func (s *UsersService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitize(u), nil
}

func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UsersService) Update(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, errors.Wrapf(models.ErrInvalidInput, "invalid role %q", *patch.Role)
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrap(err, "hash password")
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	u, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return sanitize(u), nil
}

func (s *UsersService) Remove(ctx context.Context, id primitive.ObjectID) error {
	return s.users.Delete(ctx, id)
}

// GetByEmail returns the user including the password hash; it exists for
// login flows and must not be exposed through the plain read endpoints.
func (s *UsersService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func sanitize(u *models.User) *models.User {
	u.Password = ""
	return u
}
