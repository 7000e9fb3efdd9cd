package repo

import (
	"StudyHub/internal/model"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChecklistRepository — пункты чек-листа и журнал практики.
type ChecklistRepository interface {
	// CreateItem назначает position = число пунктов в предмете на момент вставки.
	CreateItem(ctx context.Context, item *model.ChecklistItem) error
	GetItem(ctx context.Context, subjectID, itemID string) (*model.ChecklistItem, error)
	UpdateItem(ctx context.Context, item *model.ChecklistItem) error
	// DeleteItem не пересчитывает позиции оставшихся пунктов.
	DeleteItem(ctx context.Context, subjectID, itemID string) (bool, error)
	ListItems(ctx context.Context, subjectID string) ([]model.ChecklistItem, error)
	// LogEntries пишет по одной записи на каждый пункт из itemIDs, принадлежащий предмету.
	// Чужие и несуществующие id пропускаются; если не осталось ни одного — ErrNoValidItems.
	// Id не в формате UUID считаются несуществующими.
	LogEntries(ctx context.Context, subjectID string, userID int64, itemIDs []string, at time.Time) ([]model.ChecklistEntry, error)
	RecentEntries(ctx context.Context, subjectID string, userID int64, limit int) ([]model.ChecklistEntry, error)
}

type checklistRepo struct {
	db *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &checklistRepo{db: db}
}

func (r *checklistRepo) CreateItem(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.ChecklistItem{}).Where("subject_id = ?", item.SubjectID).Count(&n).Error; err != nil {
			return err
		}
		item.Position = int(n)
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return touchSubject(tx, item.SubjectID)
	})
}

func (r *checklistRepo) GetItem(ctx context.Context, subjectID, itemID string) (*model.ChecklistItem, error) {
	if !ValidID(subjectID) || !ValidID(itemID) {
		return nil, gorm.ErrRecordNotFound
	}
	var it model.ChecklistItem
	err := r.db.WithContext(ctx).Where("id = ? AND subject_id = ?", itemID, subjectID).First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *checklistRepo) UpdateItem(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.ChecklistItem{}).
			Where("id = ? AND subject_id = ?", item.ID, item.SubjectID).
			Updates(map[string]any{"title": item.Title, "description": item.Description}).Error
		if err != nil {
			return err
		}
		return touchSubject(tx, item.SubjectID)
	})
}

func (r *checklistRepo) DeleteItem(ctx context.Context, subjectID, itemID string) (bool, error) {
	if !ValidID(subjectID) || !ValidID(itemID) {
		return false, nil
	}
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ? AND subject_id = ?", itemID, subjectID).Delete(&model.ChecklistEntry{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND subject_id = ?", itemID, subjectID).Delete(&model.ChecklistItem{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if !deleted {
			return nil
		}
		return touchSubject(tx, subjectID)
	})
	return deleted, err
}

func (r *checklistRepo) ListItems(ctx context.Context, subjectID string) ([]model.ChecklistItem, error) {
	var out []model.ChecklistItem
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("position ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *checklistRepo) LogEntries(ctx context.Context, subjectID string, userID int64, itemIDs []string, at time.Time) ([]model.ChecklistEntry, error) {
	itemIDs = validIDs(itemIDs)
	if !ValidID(subjectID) || len(itemIDs) == 0 {
		return nil, ErrNoValidItems
	}
	var entries []model.ChecklistEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var valid []string
		if err := tx.Model(&model.ChecklistItem{}).
			Where("subject_id = ? AND id IN ?", subjectID, itemIDs).
			Pluck("id", &valid).Error; err != nil {
			return err
		}
		if len(valid) == 0 {
			return ErrNoValidItems
		}

		// порядок записей — как во входном списке, повторы схлопываются
		ok := make(map[string]struct{}, len(valid))
		for _, id := range valid {
			ok[id] = struct{}{}
		}
		entries = make([]model.ChecklistEntry, 0, len(valid))
		for _, id := range itemIDs {
			if _, found := ok[id]; !found {
				continue
			}
			delete(ok, id)
			entries = append(entries, model.ChecklistEntry{
				ID:          uuid.NewString(),
				SubjectID:   subjectID,
				ItemID:      id,
				UserID:      userID,
				PracticedAt: at,
			})
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *checklistRepo) RecentEntries(ctx context.Context, subjectID string, userID int64, limit int) ([]model.ChecklistEntry, error) {
	var out []model.ChecklistEntry
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Order("practiced_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
