package model

import "time"

// Todo is owned by exactly one user; Title is the only field that
// ever changes after creation.
type Todo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
