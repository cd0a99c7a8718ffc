package database

import (
	"github.com/olawale1rty/productivity-tracker/config"
	"github.com/olawale1rty/productivity-tracker/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() error {
	cfg := config.GetConfig()
	return Open(cfg.DatabasePath)
}

// Open connects to the SQLite database at path and migrates the schema.
// Split out from Connect so tests can point at an in-memory database.
func Open(path string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	// Auto-migrate models
	err = DB.AutoMigrate(
		&models.User{},
		&models.List{},
		&models.ListItem{},
		&models.ListFramework{},
		&models.ItemFrameworkData{},
		&models.Tag{},
		&models.ItemTag{},
		&models.ListShare{},
		&models.ItemComment{},
		&models.ListTemplate{},
		&models.AuditLog{},
	)
	if err != nil {
		return err
	}

	return nil
}

// Ping verifies the store is reachable, for the health probe.
func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
