package core

import (
	"errors"

	"gorm.io/gorm"
	"smarthourly.com/smarthourly/hourly/model"
)

// RoleOf resolves a user's role from the user_roles collection. Users
// without a row default to operator.
func RoleOf(db *gorm.DB, userID string) (string, error) {
	var row model.UserRole
	err := db.Where("id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RoleOperator, nil
	}
	if err != nil {
		return "", err
	}
	if row.Role == "" {
		return model.RoleOperator, nil
	}
	return row.Role, nil
}

// SupervisorRoster returns the names of all supervisors, for the ATL
// dropdown. The set comes from user_roles joined to profiles, never from a
// hardcoded list.
func SupervisorRoster(db *gorm.DB) ([]string, error) {
	var names []string
	err := db.Model(&model.Profile{}).
		Joins("JOIN user_roles ON user_roles.id = profiles.id").
		Where("user_roles.role = ?", model.RoleSupervisor).
		Order("profiles.name").
		Pluck("profiles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DisplayName resolves a user's profile name, falling back to empty when no
// profile exists.
func DisplayName(db *gorm.DB, userID string) (string, error) {
	var p model.Profile
	err := db.Where("id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.Name, nil
}
