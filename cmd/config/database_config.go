package config

import (
	"fmt"
	"foodgram/internal/utils"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultSQLitePath = "foodgram.db"

// ConnectDB opens PostgreSQL by default, or a SQLite file when DB_DRIVER is
// "sqlite".
func ConnectDB() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch utils.GetConfig("DB_DRIVER") {
	case "sqlite":
		path := utils.GetConfig("DB_PATH")
		if path == "" {
			path = defaultSQLitePath
		}
		dialector = sqlite.Open(path)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}
