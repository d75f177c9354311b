package services

import (
	"testing"
	"time"

	"homigo-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Reservation{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestListing(t *testing.T, db *gorm.DB, ownerID uint, listingType models.ListingType, nightly *float64) models.Listing {
	t.Helper()
	listing := models.Listing{
		OwnerID:       ownerID,
		Type:          listingType,
		Title:         "Test Listing",
		City:          "Mumbai",
		PricePerNight: nightly,
	}
	if listingType == models.ListingCafe {
		listing.OpeningTime = "08:00"
		listing.ClosingTime = "22:00"
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func dateAt(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
