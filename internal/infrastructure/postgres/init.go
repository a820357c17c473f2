package postgres

import (
	"log"

	"github.com/aegntic/growth-service/internal/config"
	"github.com/aegntic/growth-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.GrowthConfig) *gorm.DB {
	dsn := cfg.GrowthDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.SiteModel{},
		&models.LedgerEventModel{},
		&models.RejectedEventModel{},
		&models.ReferralRelationshipModel{},
		&models.CommissionRecordModel{},
		&models.ShowcaseEntryModel{},
	)

	return db
}
