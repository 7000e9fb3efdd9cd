package repo

import (
	"StudyHub/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// CardRepository — карточки колоды. Все методы ограничены предметом.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	// GetInSubject возвращает gorm.ErrRecordNotFound, если карточки нет в этом предмете.
	GetInSubject(ctx context.Context, subjectID, cardID string) (*model.Card, error)
	Update(ctx context.Context, card *model.Card) error
	// Delete возвращает false, если карточки в предмете не было.
	Delete(ctx context.Context, subjectID, cardID string) (bool, error)
	ListBySubject(ctx context.Context, subjectID string) ([]model.Card, error)
}

type cardRepo struct {
	db   *gorm.DB
	caps Capabilities
}

func NewCardRepository(db *gorm.DB, caps Capabilities) CardRepository {
	return &cardRepo{db: db, caps: caps}
}

func (r *cardRepo) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(card).Error; err != nil {
			return err
		}
		return touchSubject(tx, card.SubjectID)
	})
}

func (r *cardRepo) GetInSubject(ctx context.Context, subjectID, cardID string) (*model.Card, error) {
	if !ValidID(subjectID) || !ValidID(cardID) {
		return nil, gorm.ErrRecordNotFound
	}
	var c model.Card
	err := r.db.WithContext(ctx).Where("id = ? AND subject_id = ?", cardID, subjectID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cardRepo) Update(ctx context.Context, card *model.Card) error {
	card.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Card{}).
			Where("id = ? AND subject_id = ?", card.ID, card.SubjectID).
			Updates(map[string]any{"prompt": card.Prompt, "answer": card.Answer, "updated_at": card.UpdatedAt}).Error
		if err != nil {
			return err
		}
		return touchSubject(tx, card.SubjectID)
	})
}

func (r *cardRepo) Delete(ctx context.Context, subjectID, cardID string) (bool, error) {
	if !ValidID(subjectID) || !ValidID(cardID) {
		return false, nil
	}
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePerformance(tx, r.caps, "card_id = ? AND subject_id = ?", cardID, subjectID); err != nil {
			return err
		}
		res := tx.Where("id = ? AND subject_id = ?", cardID, subjectID).Delete(&model.Card{})
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

func (r *cardRepo) ListBySubject(ctx context.Context, subjectID string) ([]model.Card, error) {
	var out []model.Card
	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).Order("created_at ASC").Find(&out).Error
	return out, err
}

// touchSubject поднимает updated_at предмета, чтобы он всплыл в списке.
func touchSubject(tx *gorm.DB, subjectID string) error {
	return tx.Model(&model.Subject{}).Where("id = ?", subjectID).Update("updated_at", time.Now().UTC()).Error
}

// deletePerformance чистит card_performances, если таблица есть.
// SQLite без PRAGMA foreign_keys каскадное удаление не выполняет.
func deletePerformance(tx *gorm.DB, caps Capabilities, query string, args ...any) error {
	if !caps.CardPerformance {
		return nil
	}
	return tx.Where(query, args...).Delete(&model.CardPerformance{}).Error
}
