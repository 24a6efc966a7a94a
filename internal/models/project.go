package models

type Project struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	CreatedByID uint   `gorm:"not null;index"`

	// Relationships
	CreatedBy User   `gorm:"foreignKey:CreatedByID"`
	Tasks     []Task `gorm:"foreignKey:ProjectID"`
}
