package models

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeamMember Role = "team-member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeamMember
}

type User struct {
	BaseModel

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'team-member'"`

	// Relationships
	CreatedProjects []Project `gorm:"foreignKey:CreatedByID"`
	AssignedTasks   []Task    `gorm:"foreignKey:AssignedToID"`
	Comments        []Comment `gorm:"foreignKey:UserID"`
}
