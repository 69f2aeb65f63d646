package db

import (
	"fmt"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectAndMigrate connects to Postgres and applies GORM migrations.
// Retries briefly so a cold database container has time to come up.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	var conn *gorm.DB
	var err error

	for i := 0; i < 5; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate applies the schema for every entity. Tests call this against
// in-memory sqlite.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Category{},
		&models.Customer{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Receipt{},
		&models.Notification{},
		&models.LoginToken{},
		&models.AuthToken{},
		&models.InvoiceAccessToken{},
	); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
