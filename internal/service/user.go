package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"StudyHub/internal/validation"
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrLoginTaken         = apperr.Conflict("username is already taken")
	ErrInvalidCredentials = &apperr.Error{Kind: apperr.KindUnauthenticated, Message: "invalid username or password"}
)

// Credentials — данные регистрации и входа.
type Credentials struct {
	Username string  `json:"username" validate:"required,min=3,max=32,username"`
	Password string  `json:"password" validate:"required,min=6,max=128"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
}

type UserService struct {
	repo     repo.UserRepository
	validate *validation.Validator
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r, validate: validation.New()}
}

// Register создаёт пользователя; занятый логин — ErrLoginTaken.
func (s *UserService) Register(ctx context.Context, in Credentials) (*model.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to check username", err)
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
	})
	if err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}
	return user, nil
}

// Login проверяет логин и пароль.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}
