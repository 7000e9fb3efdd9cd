package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"StudyHub/internal/validation"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShareInput — кому и с какой ролью открыть предмет. Роль по умолчанию — VIEWER.
type ShareInput struct {
	Username string          `json:"username" validate:"required,min=3,max=32"`
	Role     model.ShareRole `json:"role,omitempty" validate:"omitempty,oneof=VIEWER EDITOR"`
}

// ShareService — управление доступами. Все операции только для владельца.
type ShareService struct {
	access   *AccessResolver
	shares   repo.ShareRepository
	users    repo.UserRepository
	validate *validation.Validator
	logger   *zap.SugaredLogger
}

func NewShareService(access *AccessResolver, shares repo.ShareRepository, users repo.UserRepository, logger *zap.SugaredLogger) *ShareService {
	return &ShareService{access: access, shares: shares, users: users, validate: validation.New(), logger: logger}
}

// Share создаёт доступ или меняет роль существующего: повторный вызов не плодит записей.
func (s *ShareService) Share(ctx context.Context, ownerID int64, subjectID string, in ShareInput) (*model.SubjectShare, error) {
	if _, err := s.access.RequireOwner(ctx, ownerID, subjectID); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleViewer
	}

	target, err := s.lookup(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if target.ID == ownerID {
		return nil, apperr.Field("username", "you already own this subject")
	}

	share, err := s.shares.Upsert(ctx, subjectID, target.ID, in.Role)
	if err != nil {
		return nil, apperr.Internal("failed to share subject", err)
	}
	s.logger.Infow("subject shared", "subject_id", subjectID, "user_id", target.ID, "role", in.Role)
	return share, nil
}

// Unshare отзывает доступ; действует со следующего запроса участника.
func (s *ShareService) Unshare(ctx context.Context, ownerID int64, subjectID, username string) error {
	if _, err := s.access.RequireOwner(ctx, ownerID, subjectID); err != nil {
		return err
	}
	target, err := s.lookup(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	ok, err := s.shares.Delete(ctx, subjectID, target.ID)
	if err != nil {
		return apperr.Internal("failed to remove share", err)
	}
	if !ok {
		return apperr.NotFound("share not found")
	}
	s.logger.Infow("subject unshared", "subject_id", subjectID, "user_id", target.ID)
	return nil
}

func (s *ShareService) List(ctx context.Context, ownerID int64, subjectID string) ([]model.SubjectShare, error) {
	if _, err := s.access.RequireOwner(ctx, ownerID, subjectID); err != nil {
		return nil, err
	}
	shares, err := s.shares.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, apperr.Internal("failed to list shares", err)
	}
	return shares, nil
}

func (s *ShareService) lookup(ctx context.Context, username string) (*model.User, error) {
	if username == "" {
		return nil, apperr.Field("username", "this field is required")
	}
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return u, nil
}
