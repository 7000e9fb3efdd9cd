package model

import "time"

// User — учётная запись. Username уникален и используется для входа и шаринга.
type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"not null;uniqueIndex;size:32" json:"username"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Name         *string `gorm:"size:64" json:"name,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
