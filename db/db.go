package db

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nroshan/chirper-server/cmd/models"
)

// NewStorage picks the backend from the environment: DB_URL selects
// Postgres, otherwise a local SQLite file (DB_PATH, default chirper.sqlite).
func NewStorage() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	if connString := os.Getenv("DB_URL"); connString != "" {
		return NewPSQLStorage(connString)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "chirper.sqlite"
	}
	return NewSQLiteStorage(dbPath)
}

func NewPSQLStorage(connString string) (*gorm.DB, error) {
	// No TranslateError here: translation would swap *pgconn.PgError for a
	// bare sentinel and lose the constraint name Classify depends on.
	db, err := gorm.Open(postgres.Open(connString), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)

	return db, nil
}

// NewSQLiteStorage opens a file-backed SQLite database with foreign keys
// enforced, which the cascade semantics depend on.
func NewSQLiteStorage(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate creates the schema. One AutoMigrate call so the migrator can
// order table creation ahead of the cross-table foreign key constraints.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tweet{},
		&models.Image{},
		&models.Like{},
		&models.Follow{},
	); err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}
	return nil
}
