package repo

import (
	"StudyHub/internal/model"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShareRepository — доступы участников к предметам.
type ShareRepository interface {
	// Upsert создаёт доступ или меняет роль существующего (одна запись на пару subject/user).
	Upsert(ctx context.Context, subjectID string, userID int64, role model.ShareRole) (*model.SubjectShare, error)
	// Get возвращает gorm.ErrRecordNotFound, если доступа нет.
	Get(ctx context.Context, subjectID string, userID int64) (*model.SubjectShare, error)
	Delete(ctx context.Context, subjectID string, userID int64) (bool, error)
	ListBySubject(ctx context.Context, subjectID string) ([]model.SubjectShare, error)
}

type shareRepo struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepo{db: db}
}

func (r *shareRepo) Upsert(ctx context.Context, subjectID string, userID int64, role model.ShareRole) (*model.SubjectShare, error) {
	now := time.Now().UTC()
	s := &model.SubjectShare{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"role": role, "updated_at": now}),
	}).Create(s).Error
	if err != nil {
		return nil, err
	}

	var stored model.SubjectShare
	err = r.db.WithContext(ctx).
		Preload("User").
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *shareRepo) Get(ctx context.Context, subjectID string, userID int64) (*model.SubjectShare, error) {
	var s model.SubjectShare
	err := r.db.WithContext(ctx).Where("subject_id = ? AND user_id = ?", subjectID, userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shareRepo) Delete(ctx context.Context, subjectID string, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("subject_id = ? AND user_id = ?", subjectID, userID).Delete(&model.SubjectShare{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *shareRepo) ListBySubject(ctx context.Context, subjectID string) ([]model.SubjectShare, error) {
	var out []model.SubjectShare
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("subject_id = ?", subjectID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
