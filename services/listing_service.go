package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"homigo-backend/models"
	"homigo-backend/utils"

	"gorm.io/gorm"
)

// ListingService is a wrapper around *gorm.DB for the listing catalog. The
// reservation engine only reads from it (bookable flag, nightly price).
type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

type ListingFilter struct {
	City     string
	Type     string
	MinPrice *float64
	MaxPrice *float64
	Guests   *int
}

// List returns listings newest-first. Type, price and guest filters run in
// SQL; the city term is a case-insensitive substring match applied after the
// query.
func (s *ListingService) List(filter ListingFilter) ([]models.Listing, error) {
	q := s.DB.Model(&models.Listing{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *filter.MaxPrice)
	}
	if filter.Guests != nil {
		q = q.Where("max_guests >= ?", *filter.Guests)
	}

	var listings []models.Listing
	if err := q.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(filter.City))
	if term == "" {
		return listings, nil
	}
	filtered := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.City), term) {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

// Cities returns the distinct city names, sorted.
func (s *ListingService) Cities() ([]string, error) {
	var cities []string
	err := s.DB.Model(&models.Listing{}).
		Distinct("city").
		Where("city <> ''").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	sort.Strings(cities)
	return cities, nil
}

func (s *ListingService) GetByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load listing %d: %w", id, err)
	}
	return &listing, nil
}

func (s *ListingService) Create(listing models.Listing) (*models.Listing, error) {
	if !listing.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be room, rent_home or cafe", ErrValidation)
	}
	if strings.TrimSpace(listing.Title) == "" || strings.TrimSpace(listing.City) == "" {
		return nil, fmt.Errorf("%w: type, title and city are required", ErrValidation)
	}
	if listing.Type.Bookable() && listing.PricePerNight == nil {
		return nil, fmt.Errorf("%w: pricePerNight is required for room or rent_home", ErrValidation)
	}
	if listing.Type == models.ListingCafe {
		if listing.OpeningTime == "" || listing.ClosingTime == "" {
			return nil, fmt.Errorf("%w: openingTime and closingTime are required for cafe", ErrValidation)
		}
	}

	if err := s.DB.Create(&listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return &listing, nil
}

// UpdateListingInput carries only the fields the caller provided; nil means
// leave as-is.
type UpdateListingInput struct {
	Title         *string
	Description   *string
	City          *string
	Address       *string
	PricePerNight *float64
	MaxGuests     *int
	Amenities     []byte
	Images        []byte
	Lat           *float64
	Lng           *float64
	OpeningTime   *string
	ClosingTime   *string
}

func (s *ListingService) Update(ownerID, listingID uint, in UpdateListingInput) (*models.Listing, error) {
	listing, err := s.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: you do not own this listing", ErrForbidden)
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.PricePerNight != nil {
		updates["price_per_night"] = *in.PricePerNight
	}
	if in.MaxGuests != nil {
		updates["max_guests"] = *in.MaxGuests
	}
	if in.Amenities != nil {
		updates["amenities"] = in.Amenities
	}
	if in.Images != nil {
		updates["images"] = in.Images
	}
	if in.Lat != nil {
		updates["lat"] = *in.Lat
	}
	if in.Lng != nil {
		updates["lng"] = *in.Lng
	}
	if in.OpeningTime != nil {
		updates["opening_time"] = *in.OpeningTime
	}
	if in.ClosingTime != nil {
		updates["closing_time"] = *in.ClosingTime
	}

	if len(updates) > 0 {
		if err := s.DB.Model(listing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update listing %d: %w", listingID, err)
		}
	}
	return s.GetByID(listingID)
}

func (s *ListingService) Delete(ownerID, listingID uint) error {
	listing, err := s.GetByID(listingID)
	if err != nil {
		return err
	}
	if listing.OwnerID != ownerID {
		return fmt.Errorf("%w: you do not own this listing", ErrForbidden)
	}
	if err := s.DB.Delete(listing).Error; err != nil {
		return fmt.Errorf("failed to delete listing %d: %w", listingID, err)
	}
	return nil
}

// RecommendedListing is the slim card shape the recommendations endpoint
// returns per listing.
type RecommendedListing struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	City          string             `json:"city"`
	PricePerNight *float64           `json:"pricePerNight,omitempty"`
	Type          models.ListingType `json:"type"`
	DistanceKm    *float64           `json:"distanceKm,omitempty"`
}

type Recommendations struct {
	Rooms     []RecommendedListing `json:"rooms"`
	RentHomes []RecommendedListing `json:"rentHomes"`
	Cafes     []RecommendedListing `json:"cafes"`
}

const recommendationsPerGroup = 5

// RecommendByLocation groups listings with coordinates by type and keeps the
// five nearest of each, by haversine distance from the caller.
func (s *ListingService) RecommendByLocation(lat, lng float64) (*Recommendations, error) {
	var listings []models.Listing
	err := s.DB.
		Where("lat IS NOT NULL AND lng IS NOT NULL").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load listings for recommendations: %w", err)
	}

	grouped := map[models.ListingType][]RecommendedListing{}
	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		d := utils.DistanceKm(lat, lng, *l.Lat, *l.Lng)
		grouped[l.Type] = append(grouped[l.Type], RecommendedListing{
			ID:            l.ID,
			Title:         l.Title,
			City:          l.City,
			PricePerNight: l.PricePerNight,
			Type:          l.Type,
			DistanceKm:    &d,
		})
	}

	sortAndTake := func(items []RecommendedListing) []RecommendedListing {
		sort.Slice(items, func(i, j int) bool {
			return *items[i].DistanceKm < *items[j].DistanceKm
		})
		if len(items) > recommendationsPerGroup {
			items = items[:recommendationsPerGroup]
		}
		if items == nil {
			items = []RecommendedListing{}
		}
		return items
	}

	return &Recommendations{
		Rooms:     sortAndTake(grouped[models.ListingRoom]),
		RentHomes: sortAndTake(grouped[models.ListingRentHome]),
		Cafes:     sortAndTake(grouped[models.ListingCafe]),
	}, nil
}

// RecommendByCity is the fallback when the caller has no coordinates: newest
// five per group in the given city.
func (s *ListingService) RecommendByCity(city string) (*Recommendations, error) {
	var listings []models.Listing
	err := s.DB.
		Where("city = ?", city).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load listings for city %q: %w", city, err)
	}

	grouped := map[models.ListingType][]RecommendedListing{}
	for _, l := range listings {
		grouped[l.Type] = append(grouped[l.Type], RecommendedListing{
			ID:            l.ID,
			Title:         l.Title,
			City:          l.City,
			PricePerNight: l.PricePerNight,
			Type:          l.Type,
		})
	}

	takeFive := func(items []RecommendedListing) []RecommendedListing {
		if len(items) > recommendationsPerGroup {
			items = items[:recommendationsPerGroup]
		}
		if items == nil {
			items = []RecommendedListing{}
		}
		return items
	}

	return &Recommendations{
		Rooms:     takeFive(grouped[models.ListingRoom]),
		RentHomes: takeFive(grouped[models.ListingRentHome]),
		Cafes:     takeFive(grouped[models.ListingCafe]),
	}, nil
}
