package services

import (
	"testing"

	"homigo-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB, ownerID uint) {
	t.Helper()
	entries := []models.Listing{
		{OwnerID: ownerID, Type: models.ListingRoom, Title: "Bandra Studio", City: "Mumbai",
			PricePerNight: floatPtr(2500), MaxGuests: intPtr(2), Lat: floatPtr(19.0596), Lng: floatPtr(72.8295)},
		{OwnerID: ownerID, Type: models.ListingRentHome, Title: "Powai 3BHK", City: "Mumbai",
			PricePerNight: floatPtr(8000), MaxGuests: intPtr(6), Lat: floatPtr(19.1197), Lng: floatPtr(72.9050)},
		{OwnerID: ownerID, Type: models.ListingRoom, Title: "CP Room", City: "Delhi",
			PricePerNight: floatPtr(3000), MaxGuests: intPtr(2), Lat: floatPtr(28.6315), Lng: floatPtr(77.2167)},
		{OwnerID: ownerID, Type: models.ListingCafe, Title: "Cafe Mocha", City: "Mumbai",
			OpeningTime: "08:00", ClosingTime: "23:00", Lat: floatPtr(19.0600), Lng: floatPtr(72.8300)},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}
}

func TestListListings_Filters(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	seedCatalog(t, db, host.ID)
	svc := NewListingService(db)

	all, err := svc.List(ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	rooms, err := svc.List(ListingFilter{Type: "room"})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	cheap, err := svc.List(ListingFilter{MaxPrice: floatPtr(3000)})
	require.NoError(t, err)
	assert.Len(t, cheap, 2)

	big, err := svc.List(ListingFilter{Guests: intPtr(4)})
	require.NoError(t, err)
	require.Len(t, big, 1)
	assert.Equal(t, "Powai 3BHK", big[0].Title)

	// City matching is case-insensitive substring.
	mum, err := svc.List(ListingFilter{City: "mUmB"})
	require.NoError(t, err)
	assert.Len(t, mum, 3)
}

func TestCities_DistinctSorted(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	seedCatalog(t, db, host.ID)
	svc := NewListingService(db)

	cities, err := svc.Cities()
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhi", "Mumbai"}, cities)
}

func TestCreateListing_Validation(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	svc := NewListingService(db)

	_, err := svc.Create(models.Listing{OwnerID: host.ID, Type: "hotel", Title: "X", City: "Y"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(models.Listing{OwnerID: host.ID, Type: models.ListingRoom, Title: "", City: "Y"})
	assert.ErrorIs(t, err, ErrValidation)

	// Stay types need a nightly rate.
	_, err = svc.Create(models.Listing{OwnerID: host.ID, Type: models.ListingRoom, Title: "X", City: "Y"})
	assert.ErrorIs(t, err, ErrValidation)

	// Cafes need opening hours instead.
	_, err = svc.Create(models.Listing{OwnerID: host.ID, Type: models.ListingCafe, Title: "X", City: "Y"})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(models.Listing{
		OwnerID: host.ID, Type: models.ListingCafe, Title: "X", City: "Y",
		OpeningTime: "08:00", ClosingTime: "20:00",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestUpdateListing_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	other := createTestUser(t, db, "other@example.com", models.RoleHost)
	listing := createTestListing(t, db, host.ID, models.ListingRoom, floatPtr(2500))
	svc := NewListingService(db)

	_, err := svc.Update(other.ID, listing.ID, UpdateListingInput{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(host.ID, listing.ID, UpdateListingInput{
		Title:         strPtr("Renamed"),
		PricePerNight: floatPtr(3200),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.PricePerNight)
	assert.Equal(t, 3200.0, *updated.PricePerNight)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Mumbai", updated.City)
}

func TestDeleteListing_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	other := createTestUser(t, db, "other@example.com", models.RoleHost)
	listing := createTestListing(t, db, host.ID, models.ListingRoom, floatPtr(2500))
	svc := NewListingService(db)

	assert.ErrorIs(t, svc.Delete(other.ID, listing.ID), ErrForbidden)
	require.NoError(t, svc.Delete(host.ID, listing.ID))

	_, err := svc.GetByID(listing.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendByLocation_NearestFirst(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	seedCatalog(t, db, host.ID)
	svc := NewListingService(db)

	// From Bandra: the Bandra studio is nearer than the CP room.
	recs, err := svc.RecommendByLocation(19.0596, 72.8295)
	require.NoError(t, err)
	require.Len(t, recs.Rooms, 2)
	assert.Equal(t, "Bandra Studio", recs.Rooms[0].Title)
	assert.Equal(t, "CP Room", recs.Rooms[1].Title)
	require.NotNil(t, recs.Rooms[0].DistanceKm)
	assert.Less(t, *recs.Rooms[0].DistanceKm, *recs.Rooms[1].DistanceKm)
	assert.Len(t, recs.Cafes, 1)
}

func TestRecommendByLocation_CapsGroupsAtFive(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	svc := NewListingService(db)

	for i := 0; i < 7; i++ {
		lat := 19.0 + float64(i)*0.01
		lng := 72.8
		l := models.Listing{
			OwnerID: host.ID, Type: models.ListingRoom, Title: "Room", City: "Mumbai",
			PricePerNight: floatPtr(2000), Lat: &lat, Lng: &lng,
		}
		require.NoError(t, db.Create(&l).Error)
	}

	recs, err := svc.RecommendByLocation(19.0, 72.8)
	require.NoError(t, err)
	assert.Len(t, recs.Rooms, 5)
	assert.Empty(t, recs.RentHomes)
	assert.Empty(t, recs.Cafes)
}

func TestRecommendByCity_Grouped(t *testing.T) {
	db := newTestDB(t)
	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	seedCatalog(t, db, host.ID)
	svc := NewListingService(db)

	recs, err := svc.RecommendByCity("Mumbai")
	require.NoError(t, err)
	assert.Len(t, recs.Rooms, 1)
	assert.Len(t, recs.RentHomes, 1)
	assert.Len(t, recs.Cafes, 1)

	empty, err := svc.RecommendByCity("Nowhere")
	require.NoError(t, err)
	assert.Empty(t, empty.Rooms)
}

func strPtr(s string) *string { return &s }
