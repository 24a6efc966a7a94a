package models

import "time"

// BaseModel is gorm.Model without soft deletes. Cascades remove rows for
// real, so a DeletedAt column would only hide half-finished cascades.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
