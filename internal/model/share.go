package model

import "time"

// ShareRole — уровень доступа участника.
type ShareRole string

const (
	RoleViewer ShareRole = "VIEWER"
	RoleEditor ShareRole = "EDITOR"
)

// SubjectShare — доступ пользователя к чужому предмету. Одна запись на пару (subject, user).
type SubjectShare struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	SubjectID string    `gorm:"not null;type:uuid;uniqueIndex:idx_share_subject_user" json:"subject_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_share_subject_user;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Role      ShareRole `gorm:"not null;size:16;default:VIEWER" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
