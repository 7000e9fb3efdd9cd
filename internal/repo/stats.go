package repo

import (
	"StudyHub/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// SubjectSessionStats — суммы по сессиям пользователя в одном предмете.
type SubjectSessionStats struct {
	SubjectID   string
	Correct     int64
	Incorrect   int64
	DurationMin int64
	CardCount   int64
	Sessions    int64
}

// UserTotals — суммы по всем сессиям пользователя.
type UserTotals struct {
	Correct     int64 `json:"correct"`
	Incorrect   int64 `json:"incorrect"`
	DurationMin int64 `json:"duration_min"`
	Sessions    int64 `json:"sessions"`
}

// ChildCounts — число карточек и пунктов чек-листа в предмете.
type ChildCounts struct {
	Cards int64
	Items int64
}

// MissedCard — карточка, на которую пользователь хотя бы раз ответил неверно.
type MissedCard struct {
	SubjectID string
	CardID    string
	Prompt    string
	Answer    string
	Correct   int
	Incorrect int
}

// StatsRepository — агрегаты для дашборда и аналитики.
// Методы, читающие card_performances, вызываются только при наличии таблицы.
type StatsRepository interface {
	SessionStatsBySubject(ctx context.Context, userID int64, subjectIDs []string) (map[string]SubjectSessionStats, error)
	EntryCountsBySubject(ctx context.Context, userID int64, subjectIDs []string) (map[string]int64, error)
	LastPracticedAt(ctx context.Context, userID int64, subjectID string) (*time.Time, error)
	UserTotals(ctx context.Context, userID int64) (UserTotals, error)
	ChildCounts(ctx context.Context, subjectIDs []string) (map[string]ChildCounts, error)
	SessionsSince(ctx context.Context, userID int64, subjectIDs []string, since time.Time) ([]model.StudySession, error)
	EntriesSince(ctx context.Context, userID int64, subjectIDs []string, since time.Time) ([]model.ChecklistEntry, error)
	ItemsForSubjects(ctx context.Context, subjectIDs []string) ([]model.ChecklistItem, error)
	CardPerformance(ctx context.Context, subjectID string, userID int64) ([]model.CardPerformance, error)
	MissedCards(ctx context.Context, userID int64, subjectIDs []string) ([]MissedCard, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) SessionStatsBySubject(ctx context.Context, userID int64, subjectIDs []string) (map[string]SubjectSessionStats, error) {
	out := make(map[string]SubjectSessionStats, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return out, nil
	}
	var rows []SubjectSessionStats
	err := r.db.WithContext(ctx).Model(&model.StudySession{}).
		Select(`subject_id,
			CAST(COALESCE(SUM(correct), 0) AS BIGINT) AS correct,
			CAST(COALESCE(SUM(incorrect), 0) AS BIGINT) AS incorrect,
			CAST(COALESCE(SUM(duration_min), 0) AS BIGINT) AS duration_min,
			CAST(COALESCE(SUM(card_count), 0) AS BIGINT) AS card_count,
			COUNT(*) AS sessions`).
		Where("user_id = ? AND subject_id IN ?", userID, subjectIDs).
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.SubjectID] = row
	}
	return out, nil
}

func (r *statsRepo) EntryCountsBySubject(ctx context.Context, userID int64, subjectIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		SubjectID string
		Entries   int64
	}
	err := r.db.WithContext(ctx).Model(&model.ChecklistEntry{}).
		Select("subject_id, COUNT(*) AS entries").
		Where("user_id = ? AND subject_id IN ?", userID, subjectIDs).
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.SubjectID] = row.Entries
	}
	return out, nil
}

// LastPracticedAt — время последней отметки; nil, если отметок не было.
func (r *statsRepo) LastPracticedAt(ctx context.Context, userID int64, subjectID string) (*time.Time, error) {
	var entries []model.ChecklistEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order("practiced_at DESC").
		Limit(1).
		Find(&entries).Error
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	at := entries[0].PracticedAt
	return &at, nil
}

func (r *statsRepo) UserTotals(ctx context.Context, userID int64) (UserTotals, error) {
	var t UserTotals
	err := r.db.WithContext(ctx).Model(&model.StudySession{}).
		Select(`CAST(COALESCE(SUM(correct), 0) AS BIGINT) AS correct,
			CAST(COALESCE(SUM(incorrect), 0) AS BIGINT) AS incorrect,
			CAST(COALESCE(SUM(duration_min), 0) AS BIGINT) AS duration_min,
			COUNT(*) AS sessions`).
		Where("user_id = ?", userID).
		Scan(&t).Error
	return t, err
}

func (r *statsRepo) ChildCounts(ctx context.Context, subjectIDs []string) (map[string]ChildCounts, error) {
	out := make(map[string]ChildCounts, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return out, nil
	}
	type row struct {
		SubjectID string
		N         int64
	}
	var cards, items []row
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Card{}).
		Select("subject_id, COUNT(*) AS n").
		Where("subject_id IN ?", subjectIDs).
		Group("subject_id").
		Scan(&cards).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.ChecklistItem{}).
		Select("subject_id, COUNT(*) AS n").
		Where("subject_id IN ?", subjectIDs).
		Group("subject_id").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	for _, c := range cards {
		cc := out[c.SubjectID]
		cc.Cards = c.N
		out[c.SubjectID] = cc
	}
	for _, it := range items {
		cc := out[it.SubjectID]
		cc.Items = it.N
		out[it.SubjectID] = cc
	}
	return out, nil
}

func (r *statsRepo) SessionsSince(ctx context.Context, userID int64, subjectIDs []string, since time.Time) ([]model.StudySession, error) {
	var out []model.StudySession
	if len(subjectIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id IN ? AND studied_at >= ?", userID, subjectIDs, since.UTC()).
		Order("studied_at ASC").
		Find(&out).Error
	return out, err
}

func (r *statsRepo) EntriesSince(ctx context.Context, userID int64, subjectIDs []string, since time.Time) ([]model.ChecklistEntry, error) {
	var out []model.ChecklistEntry
	if len(subjectIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id IN ? AND practiced_at >= ?", userID, subjectIDs, since.UTC()).
		Order("practiced_at ASC").
		Find(&out).Error
	return out, err
}

func (r *statsRepo) ItemsForSubjects(ctx context.Context, subjectIDs []string) ([]model.ChecklistItem, error) {
	var out []model.ChecklistItem
	if len(subjectIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("subject_id IN ?", subjectIDs).
		Order("position ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *statsRepo) CardPerformance(ctx context.Context, subjectID string, userID int64) ([]model.CardPerformance, error) {
	var out []model.CardPerformance
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Find(&out).Error
	return out, err
}

// MissedCards — карточки с incorrect_count > 0, по убыванию промахов.
func (r *statsRepo) MissedCards(ctx context.Context, userID int64, subjectIDs []string) ([]MissedCard, error) {
	var out []MissedCard
	if len(subjectIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Table("card_performances AS p").
		Select(`p.subject_id AS subject_id, p.card_id AS card_id, c.prompt AS prompt, c.answer AS answer,
			p.correct_count AS correct, p.incorrect_count AS incorrect`).
		Joins("JOIN cards c ON c.id = p.card_id").
		Where("p.user_id = ? AND p.subject_id IN ? AND p.incorrect_count > 0", userID, subjectIDs).
		Order("p.incorrect_count DESC, c.created_at ASC").
		Scan(&out).Error
	return out, err
}
