package licensing

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/videolighter/videolighter/go/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Profile{}, &models.License{}, &models.LicenseActivation{}))
	return gdb
}

func seedProfile(t *testing.T, gdb *gorm.DB, email string) *models.Profile {
	t.Helper()

	profile := &models.Profile{Email: email}
	require.NoError(t, gdb.Create(profile).Error)
	return profile
}
