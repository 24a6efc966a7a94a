package models

type Comment struct {
	BaseModel

	Text   string `gorm:"not null"`
	TaskID uint   `gorm:"not null;index"`
	UserID uint   `gorm:"not null;index"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID"`
	User User `gorm:"foreignKey:UserID"`
}
