package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/videolighter/videolighter/go/models"
)

// Open connects to postgres and migrates the entitlement tables. The handle
// is returned, not held as a package global, so every component takes it as
// an explicit dependency.
func Open(url string) (*gorm.DB, error) {
	res, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := res.AutoMigrate(&models.Profile{}, &models.License{}, &models.LicenseActivation{}); err != nil {
		return nil, err
	}
	return res, nil
}
