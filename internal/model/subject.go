package model

import "time"

// SubjectType — вид предмета. Не меняется после создания.
type SubjectType string

const (
	SubjectFlashcards SubjectType = "FLASHCARDS"
	SubjectChecklist  SubjectType = "CHECKLIST"
)

// Subject — колода карточек или чек-лист пользователя.
type Subject struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string      `gorm:"not null;size:120" json:"title"`
	Description *string     `gorm:"size:500" json:"description"`
	StudyGoal   int         `gorm:"not null" json:"study_goal"`
	Type        SubjectType `gorm:"not null;size:16" json:"type"`

	OwnerID int64 `gorm:"not null;index" json:"owner_id"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"owner,omitempty"`

	Cards          []Card          `gorm:"constraint:OnDelete:CASCADE" json:"cards,omitempty"`
	ChecklistItems []ChecklistItem `gorm:"constraint:OnDelete:CASCADE" json:"checklist_items,omitempty"`
	Shares         []SubjectShare  `gorm:"constraint:OnDelete:CASCADE" json:"shares,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Card — карточка колоды.
type Card struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	SubjectID string `gorm:"not null;index;type:uuid" json:"subject_id"`
	Prompt    string `gorm:"not null;size:500" json:"prompt"`
	Answer    string `gorm:"not null;size:500" json:"answer"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ChecklistItem — пункт чек-листа. Position назначается при создании
// и не пересчитывается после удалений, поэтому возможны пропуски.
type ChecklistItem struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	SubjectID   string  `gorm:"not null;index;type:uuid" json:"subject_id"`
	Title       string  `gorm:"not null;size:200" json:"title"`
	Description *string `gorm:"size:500" json:"description"`
	Position    int     `gorm:"not null" json:"position"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
