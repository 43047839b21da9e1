package db

import (
	"log"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/servilink/go-ambassador/internal/migration"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB initializes and returns the database connection
func InitDB(dbFilePath string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	db = Migrate(db)

	return db
}

func Migrate(db *gorm.DB) *gorm.DB {
	if err := migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("**** Database initialised and migrations run successfully ****")
	return db
}

func migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID:       migration.Initialise.ID,
			Migrate:  migration.Initialise.Migrate,
			Rollback: migration.Initialise.Rollback,
		},
	})

	return m.Migrate()
}
