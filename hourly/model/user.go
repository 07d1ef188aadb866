package model

import "time"

// Roles resolved from the user_roles collection.
const (
	RoleOperator   = "operator"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// UserRole maps an auth-service user id (UUID) to its role.
type UserRole struct {
	ID   string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Role string `gorm:"column:role;type:varchar(20);not null" json:"role"`

	CreatedAt time.Time `gorm:"<-:create" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// Profile holds the display attributes for a user, keyed by the same id as
// UserRole.
type Profile struct {
	ID         string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name       string `gorm:"column:name;type:varchar(100)" json:"name"`
	Department string `gorm:"column:department;type:varchar(100)" json:"department"`
	Phone      string `gorm:"column:phone;type:varchar(30)" json:"phone"`

	CreatedAt time.Time `gorm:"<-:create" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}
