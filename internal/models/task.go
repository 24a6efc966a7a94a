package models

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Task struct {
	BaseModel

	Title       string       `gorm:"not null"`
	Description string       `gorm:"not null"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending'"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'Medium'"`

	// ProjectID is fixed at creation; no update path changes it.
	ProjectID    uint `gorm:"not null;index"`
	AssignedToID uint `gorm:"not null;index"`
	CreatedByID  uint `gorm:"not null"`

	// Relationships
	Project    Project   `gorm:"foreignKey:ProjectID"`
	AssignedTo User      `gorm:"foreignKey:AssignedToID"`
	CreatedBy  User      `gorm:"foreignKey:CreatedByID"`
	Comments   []Comment `gorm:"foreignKey:TaskID"`
}
