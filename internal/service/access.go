package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

// Access — уровень доступа пользователя к предмету.
type Access int

const (
	AccessNone Access = iota
	AccessViewer
	AccessEditor
	AccessOwner
)

func (a Access) String() string {
	switch a {
	case AccessOwner:
		return "OWNER"
	case AccessEditor:
		return "EDITOR"
	case AccessViewer:
		return "VIEWER"
	default:
		return "NONE"
	}
}

// CanEdit — владелец или EDITOR.
func (a Access) CanEdit() bool { return a >= AccessEditor }

// AccessResolver вычисляет доступ на каждый вызов по строке предмета и строке шаринга.
// Ничего не кэширует: отзыв доступа действует на следующий же запрос.
type AccessResolver struct {
	subjects repo.SubjectRepository
	shares   repo.ShareRepository
}

func NewAccessResolver(subjects repo.SubjectRepository, shares repo.ShareRepository) *AccessResolver {
	return &AccessResolver{subjects: subjects, shares: shares}
}

// Resolve возвращает AccessNone и nil-предмет, если предмета нет или id не UUID.
func (r *AccessResolver) Resolve(ctx context.Context, userID int64, subjectID string) (Access, *model.Subject, error) {
	if !repo.ValidID(subjectID) {
		return AccessNone, nil, nil
	}
	s, err := r.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessNone, nil, nil
		}
		return AccessNone, nil, apperr.Internal("failed to load subject", err)
	}
	if s.OwnerID == userID {
		return AccessOwner, s, nil
	}

	share, err := r.shares.Get(ctx, subjectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessNone, s, nil
		}
		return AccessNone, nil, apperr.Internal("failed to load share", err)
	}
	if share.Role == model.RoleEditor {
		return AccessEditor, s, nil
	}
	return AccessViewer, s, nil
}

// RequireRead — чтение. Чужой предмет неотличим от несуществующего: NOT_FOUND.
func (r *AccessResolver) RequireRead(ctx context.Context, userID int64, subjectID string) (Access, *model.Subject, error) {
	a, s, err := r.Resolve(ctx, userID, subjectID)
	if err != nil {
		return a, nil, err
	}
	if a == AccessNone {
		return a, nil, apperr.NotFound("subject not found")
	}
	return a, s, nil
}

// RequireParticipant — запись, доступная любому участнику (сессии, практика).
func (r *AccessResolver) RequireParticipant(ctx context.Context, userID int64, subjectID string) (Access, *model.Subject, error) {
	a, s, err := r.Resolve(ctx, userID, subjectID)
	if err != nil {
		return a, nil, err
	}
	if a == AccessNone {
		return a, nil, apperr.Forbidden("no access to this subject")
	}
	return a, s, nil
}

// RequireEditor — изменение карточек и пунктов чек-листа.
func (r *AccessResolver) RequireEditor(ctx context.Context, userID int64, subjectID string) (Access, *model.Subject, error) {
	a, s, err := r.Resolve(ctx, userID, subjectID)
	if err != nil {
		return a, nil, err
	}
	if !a.CanEdit() {
		return a, nil, apperr.Forbidden("editor access required")
	}
	return a, s, nil
}

// RequireOwner — настройки предмета, удаление и шаринг.
func (r *AccessResolver) RequireOwner(ctx context.Context, userID int64, subjectID string) (*model.Subject, error) {
	a, s, err := r.Resolve(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if a != AccessOwner {
		return nil, apperr.Forbidden("only the owner can do this")
	}
	return s, nil
}
