package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smarthourly.com/smarthourly/hourly/model"
)

// openTestDB gives each test its own in-memory database with the real
// schema, unique slot index included.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.ProductionEntry{},
		&model.UserRole{},
		&model.Profile{},
	))
	return db
}

func countEntries(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.ProductionEntry{}).Count(&n).Error)
	return n
}

func validDraft() Draft {
	return Draft{
		Date:           "2024-01-01",
		Shift:          "A",
		Line:           "Line-01",
		TimeSlot:       "07:00-08:00",
		CustomerName:   "Acme Energy",
		MOType:         model.MOTypeFresh,
		MONumber:       "MO-1001",
		MeterFrom:      "100001",
		MeterTo:        "100250",
		OkQty:          240,
		NokQty:         10,
		Downtime:       0,
		DowntimeDetail: "",
		ATL:            "Shift Supervisor A",
	}
}
