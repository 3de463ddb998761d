package mock

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db wraps an in-memory SQLite database for integration scenarios.
type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb opens a fresh in-memory database and migrates the given models.
func NewDb(models ...any) *Db {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{
		DbConn: conn,
		models: models,
	}
}

// Reset empties every migrated table.
func (d *Db) Reset() error {
	for _, model := range d.models {
		if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", model, err)
		}
	}
	return nil
}

// Count returns the number of rows for the given model.
func (d *Db) Count(model any) (int64, error) {
	var count int64
	if err := d.DbConn.Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
