package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/vms/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250812_create_sessions",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Session{})
			},
		},
		{
			ID: "20250812_create_kv_entries",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.KVEntry{})
			},
		},
		{
			ID: "20250819_seed_request_counter",
			Migrate: func(tx *gorm.DB) error {
				// Counter starts absent; the first generation writes 1.
				// The migration only reserves the key so operators can
				// inspect it.
				return tx.FirstOrCreate(&models.KVEntry{Key: "vehicleRequestCounter", Value: "0"},
					models.KVEntry{Key: "vehicleRequestCounter"}).Error
			},
		},
	})
	return m.Migrate()
}
