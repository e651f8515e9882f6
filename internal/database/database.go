package database

import (
	"espoir-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists")
// behind connection poolers (PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for every model in dependency order.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectTranslation{},
		&models.Campaign{},
		&models.CampaignTranslation{},
		&models.Donation{},
		&models.Transaction{},
		&models.Category{},
		&models.CategoryTranslation{},
		&models.Product{},
		&models.ProductTranslation{},
		&models.Order{},
		&models.OrderItem{},
		&models.Content{},
		&models.ContentTranslation{},
	)
}
