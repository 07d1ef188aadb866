package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smarthourly.com/smarthourly/hourly/model"
)

func main() {
	dsn := os.Getenv("DSN")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	models := []interface{}{
		&model.ProductionEntry{},
		&model.UserRole{},
		&model.Profile{},
	}

	for _, m := range models {
		if !db.Migrator().HasTable(m) {
			if err := db.Migrator().CreateTable(m); err != nil {
				log.Fatalf("failed to create table for %T: %v", m, err)
			}
		}
	}

	if os.Getenv("SEED_USERS") != "true" {
		return
	}

	seed := []struct {
		role       string
		name       string
		department string
	}{
		{model.RoleAdmin, "Plant Admin", "Operations"},
		{model.RoleSupervisor, "Shift Supervisor A", "Production"},
		{model.RoleSupervisor, "Shift Supervisor B", "Production"},
		{model.RoleOperator, "Line Operator", "Production"},
	}

	for _, s := range seed {
		id := uuid.NewString()
		if err := db.Create(&model.UserRole{ID: id, Role: s.role}).Error; err != nil {
			log.Fatalf("failed to seed role: %v", err)
		}
		if err := db.Create(&model.Profile{ID: id, Name: s.name, Department: s.department}).Error; err != nil {
			log.Fatalf("failed to seed profile: %v", err)
		}
	}

	log.Printf("seeded %d users", len(seed))
}
