package repo

import (
	"StudyHub/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// SubjectRepository — предметы и их дочерние записи.
type SubjectRepository interface {
	// Create сохраняет предмет вместе с карточками или пунктами чек-листа.
	Create(ctx context.Context, s *model.Subject) error
	// GetByID возвращает предмет без связей; gorm.ErrRecordNotFound, если нет.
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	// ListForUser — предметы, где пользователь владелец или участник, свежие сверху.
	ListForUser(ctx context.Context, userID int64) ([]model.Subject, error)
	// Detail загружает предмет со связями: владелец, карточки, пункты, участники.
	Detail(ctx context.Context, id string) (*model.Subject, error)
	// Update меняет title, description и study_goal.
	Update(ctx context.Context, s *model.Subject) error
	// Delete удаляет предмет и всё, что к нему относится.
	Delete(ctx context.Context, id string) error
}

type subjectRepo struct {
	db   *gorm.DB
	caps Capabilities
}

func NewSubjectRepository(db *gorm.DB, caps Capabilities) SubjectRepository {
	return &subjectRepo{db: db, caps: caps}
}

func (r *subjectRepo) Create(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	if !ValidID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var s model.Subject
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepo) ListForUser(ctx context.Context, userID int64) ([]model.Subject, error) {
	shared := r.db.Model(&model.SubjectShare{}).Select("subject_id").Where("user_id = ?", userID)

	var out []model.Subject
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Shares.User").
		Where("owner_id = ? OR id IN (?)", userID, shared).
		Order("updated_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *subjectRepo) Detail(ctx context.Context, id string) (*model.Subject, error) {
	if !ValidID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var s model.Subject
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Cards", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("ChecklistItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, created_at ASC") }).
		Preload("Shares.User").
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepo) Update(ctx context.Context, s *model.Subject) error {
	s.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.Subject{}).Where("id = ?", s.ID).Updates(map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"study_goal":  s.StudyGoal,
		"updated_at":  s.UpdatedAt,
	}).Error
}

// Delete удаляет предмет и все дочерние записи явно, не полагаясь на каскады.
func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePerformance(tx, r.caps, "subject_id = ?", id); err != nil {
			return err
		}
		for _, m := range []any{
			&model.StudySession{},
			&model.ChecklistEntry{},
			&model.SubjectShare{},
			&model.Card{},
			&model.ChecklistItem{},
		} {
			if err := tx.Where("subject_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&model.Subject{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
