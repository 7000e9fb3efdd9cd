package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"StudyHub/internal/validation"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PracticeInput — пункты чек-листа, отработанные за один подход.
type PracticeInput struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,max=500,dive,required"`
}

// ChecklistService — пункты чек-листа и журнал практики.
type ChecklistService struct {
	access      *AccessResolver
	checklist   repo.ChecklistRepository
	invalidator ViewInvalidator
	validate    *validation.Validator
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewChecklistService(
	access *AccessResolver,
	checklist repo.ChecklistRepository,
	invalidator ViewInvalidator,
	logger *zap.SugaredLogger,
) *ChecklistService {
	return &ChecklistService{
		access:      access,
		checklist:   checklist,
		invalidator: invalidator,
		validate:    validation.New(),
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// LogPractice пишет по отметке на каждый пункт из списка, принадлежащий чек-листу.
// Чужие и некорректные id молча пропускаются; если валидных нет совсем — VALIDATION и ни одной записи.
// Все отметки одного вызова получают одно и то же время.
func (s *ChecklistService) LogPractice(ctx context.Context, subjectID string, userID int64, in PracticeInput) ([]model.ChecklistEntry, error) {
	_, subject, err := s.access.RequireParticipant(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if subject.Type != model.SubjectChecklist {
		return nil, apperr.Validation("practice can only be logged for checklist subjects", nil)
	}

	entries, err := s.checklist.LogEntries(ctx, subjectID, userID, uniqueIDs(in.ItemIDs), s.now())
	if err != nil {
		if errors.Is(err, repo.ErrNoValidItems) {
			return nil, apperr.Field("item_ids", "no items from this checklist")
		}
		return nil, apperr.Internal("failed to log practice", err)
	}

	s.logger.Infow("checklist practice logged",
		"subject_id", subjectID, "user_id", userID,
		"requested", len(in.ItemIDs), "logged", len(entries))
	s.invalidator.Invalidate(ctx, userID, subjectViews(subjectID)...)
	return entries, nil
}

// PracticeItem — отметка одного пункта. Неизвестный пункт — NOT_FOUND.
func (s *ChecklistService) PracticeItem(ctx context.Context, subjectID, itemID string, userID int64) (*model.ChecklistEntry, error) {
	_, subject, err := s.access.RequireParticipant(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if subject.Type != model.SubjectChecklist {
		return nil, apperr.Validation("practice can only be logged for checklist subjects", nil)
	}
	if _, err := s.checklist.GetItem(ctx, subjectID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("checklist item not found")
		}
		return nil, apperr.Internal("failed to load checklist item", err)
	}

	entries, err := s.checklist.LogEntries(ctx, subjectID, userID, []string{itemID}, s.now())
	if err != nil {
		if errors.Is(err, repo.ErrNoValidItems) {
			return nil, apperr.NotFound("checklist item not found")
		}
		return nil, apperr.Internal("failed to log practice", err)
	}
	s.invalidator.Invalidate(ctx, userID, subjectViews(subjectID)...)
	return &entries[0], nil
}

// AddItem добавляет пункт в конец: position = текущее число пунктов.
func (s *ChecklistService) AddItem(ctx context.Context, userID int64, subjectID string, in ItemInput) (*model.ChecklistItem, error) {
	_, subject, err := s.access.RequireEditor(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if subject.Type != model.SubjectChecklist {
		return nil, apperr.Validation("items can only be added to checklist subjects", nil)
	}

	item := &model.ChecklistItem{SubjectID: subjectID, Title: in.Title, Description: in.Description}
	if err := s.checklist.CreateItem(ctx, item); err != nil {
		return nil, apperr.Internal("failed to create checklist item", err)
	}
	return item, nil
}

func (s *ChecklistService) UpdateItem(ctx context.Context, userID int64, subjectID, itemID string, in ItemInput) (*model.ChecklistItem, error) {
	if _, _, err := s.access.RequireEditor(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	item, err := s.checklist.GetItem(ctx, subjectID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("checklist item not found")
		}
		return nil, apperr.Internal("failed to load checklist item", err)
	}

	item.Title = in.Title
	item.Description = in.Description
	if err := s.checklist.UpdateItem(ctx, item); err != nil {
		return nil, apperr.Internal("failed to update checklist item", err)
	}
	return item, nil
}

// DeleteItem удаляет пункт вместе с его отметками; позиции остальных не меняются.
func (s *ChecklistService) DeleteItem(ctx context.Context, userID int64, subjectID, itemID string) error {
	if _, _, err := s.access.RequireEditor(ctx, userID, subjectID); err != nil {
		return err
	}
	ok, err := s.checklist.DeleteItem(ctx, subjectID, itemID)
	if err != nil {
		return apperr.Internal("failed to delete checklist item", err)
	}
	if !ok {
		return apperr.NotFound("checklist item not found")
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
