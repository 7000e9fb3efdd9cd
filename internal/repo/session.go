package repo

import (
	"StudyHub/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardDelta — приращение счётчиков одной карточки за сессию.
type CardDelta struct {
	CardID    string
	Correct   int
	Incorrect int
}

// SessionTotals — суммы по сессиям пользователя в предмете.
type SessionTotals struct {
	Correct     int64 `json:"correct"`
	Incorrect   int64 `json:"incorrect"`
	DurationMin int64 `json:"duration_min"`
	Count       int64 `json:"count"`
}

// SessionRepository — журнал учебных сессий и накопленная статистика карточек.
type SessionRepository interface {
	// Record в одной транзакции проверяет, что все карточки из deltas принадлежат
	// предмету сессии (иначе ErrInvalidCardRefs и откат), вставляет сессию и,
	// если withPerformance, атомарно увеличивает счётчики card_performances.
	Record(ctx context.Context, session *model.StudySession, deltas []CardDelta, withPerformance bool) error
	ListRecent(ctx context.Context, subjectID string, userID int64, limit int) ([]model.StudySession, error)
	Totals(ctx context.Context, subjectID string, userID int64) (SessionTotals, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Record(ctx context.Context, session *model.StudySession, deltas []CardDelta, withPerformance bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(deltas) > 0 {
			ids := make([]string, 0, len(deltas))
			for _, d := range deltas {
				ids = append(ids, d.CardID)
			}
			var n int64
			if err := tx.Model(&model.Card{}).
				Where("subject_id = ? AND id IN ?", session.SubjectID, ids).
				Count(&n).Error; err != nil {
				return err
			}
			if int(n) != len(ids) {
				return ErrInvalidCardRefs
			}
		}

		if session.ID == "" {
			session.ID = uuid.NewString()
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		if !withPerformance {
			return nil
		}

		now := session.StudiedAt
		for _, d := range deltas {
			perf := &model.CardPerformance{
				ID:             uuid.NewString(),
				CardID:         d.CardID,
				UserID:         session.UserID,
				SubjectID:      session.SubjectID,
				CorrectCount:   d.Correct,
				IncorrectCount: d.Incorrect,
				LastStudiedAt:  now,
			}
			// инкремент выполняется в SQL, без чтения текущего значения
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "card_id"}, {Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"correct_count":   gorm.Expr("card_performances.correct_count + ?", d.Correct),
					"incorrect_count": gorm.Expr("card_performances.incorrect_count + ?", d.Incorrect),
					"last_studied_at": now,
				}),
			}).Create(perf).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sessionRepo) ListRecent(ctx context.Context, subjectID string, userID int64, limit int) ([]model.StudySession, error) {
	var out []model.StudySession
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Order("studied_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *sessionRepo) Totals(ctx context.Context, subjectID string, userID int64) (SessionTotals, error) {
	var t SessionTotals
	err := r.db.WithContext(ctx).Model(&model.StudySession{}).
		Select(`CAST(COALESCE(SUM(correct), 0) AS BIGINT) AS correct,
			CAST(COALESCE(SUM(incorrect), 0) AS BIGINT) AS incorrect,
			CAST(COALESCE(SUM(duration_min), 0) AS BIGINT) AS duration_min,
			COUNT(*) AS count`).
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Scan(&t).Error
	return t, err
}
