package database

import (
	"fmt"
	"os"

	"catalog-service/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared database handle.
var DB *gorm.DB

// Connect opens the Postgres connection from POSTGRES_* environment
// variables. TranslateError is required so uniqueness conflicts surface as
// gorm.ErrDuplicatedKey for the import engine.
func Connect() error {
	dbUser := os.Getenv("POSTGRES_USER")
	dbPassword := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")
	dbHost := os.Getenv("POSTGRES_HOST")
	dbPort := os.Getenv("POSTGRES_PORT")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	return nil
}

// Migrate creates or updates the catalog tables.
func Migrate() error {
	return DB.AutoMigrate(&models.Product{}, &models.UploadHistory{})
}
