package model

import "time"

// StudySession — неизменяемый итог одного прохода по карточкам.
type StudySession struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	SubjectID   string    `gorm:"not null;type:uuid;index:idx_session_subject_user" json:"subject_id"`
	UserID      int64     `gorm:"not null;index:idx_session_subject_user;index" json:"user_id"`
	Correct     int       `gorm:"not null" json:"correct"`
	Incorrect   int       `gorm:"not null" json:"incorrect"`
	DurationMin int       `gorm:"not null" json:"duration_min"`
	CardCount   int       `gorm:"not null" json:"card_count"`
	StudiedAt   time.Time `gorm:"not null;index" json:"studied_at"`
}

// CardPerformance — накопленная статистика ответов пользователя по карточке.
// Таблица опциональна: в старых инсталляциях её может не быть.
type CardPerformance struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	CardID         string    `gorm:"not null;type:uuid;uniqueIndex:idx_perf_card_user" json:"card_id"`
	UserID         int64     `gorm:"not null;uniqueIndex:idx_perf_card_user;index" json:"user_id"`
	SubjectID      string    `gorm:"not null;type:uuid;index" json:"subject_id"`
	CorrectCount   int       `gorm:"not null" json:"correct_count"`
	IncorrectCount int       `gorm:"not null" json:"incorrect_count"`
	LastStudiedAt  time.Time `gorm:"not null" json:"last_studied_at"`
	Card           *Card     `gorm:"constraint:OnDelete:CASCADE" json:"card,omitempty"`
}

// ChecklistEntry — одна отметка о практике пункта чек-листа. Только добавление.
type ChecklistEntry struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	SubjectID   string         `gorm:"not null;type:uuid;index:idx_entry_subject_user" json:"subject_id"`
	ItemID      string         `gorm:"not null;type:uuid;index" json:"item_id"`
	UserID      int64          `gorm:"not null;index:idx_entry_subject_user" json:"user_id"`
	PracticedAt time.Time      `gorm:"not null;index" json:"practiced_at"`
	Item        *ChecklistItem `gorm:"constraint:OnDelete:CASCADE" json:"item,omitempty"`
}
