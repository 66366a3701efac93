package database

import (
	"strings"

	"campusgate/internal/domain"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// Connect opens the record store and runs migrations. A postgres DSN gets
// postgres; anything else is treated as a sqlite path for local use.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info("connecting to postgres")
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		log.Info("using sqlite", zap.String("path", dsn))
		db, err = gorm.Open(
			gormsqlite.New(gormsqlite.Config{
				DriverName: "sqlite",
				DSN:        dsn,
			}),
			&gorm.Config{},
		)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&domain.AuthRecord{}, &domain.LostfoundItem{}); err != nil {
		return nil, err
	}
	return db, nil
}
