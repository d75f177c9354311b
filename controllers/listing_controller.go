package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"homigo-backend/middleware"
	"homigo-backend/models"
	"homigo-backend/services"
	"homigo-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type LocationPayload struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type CreateListingPayload struct {
	Type          string           `json:"type" binding:"required"`
	Title         string           `json:"title" binding:"required"`
	Description   string           `json:"description"`
	City          string           `json:"city" binding:"required"`
	Address       string           `json:"address"`
	PricePerNight *float64         `json:"pricePerNight"`
	MaxGuests     *int             `json:"maxGuests"`
	Amenities     []string         `json:"amenities"`
	Images        []string         `json:"images"`
	Location      *LocationPayload `json:"location"`
	OpeningTime   string           `json:"openingTime"`
	ClosingTime   string           `json:"closingTime"`
}

type UpdateListingPayload struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	City          *string          `json:"city"`
	Address       *string          `json:"address"`
	PricePerNight *float64         `json:"pricePerNight"`
	MaxGuests     *int             `json:"maxGuests"`
	Amenities     []string         `json:"amenities"`
	Images        []string         `json:"images"`
	Location      *LocationPayload `json:"location"`
	OpeningTime   *string          `json:"openingTime"`
	ClosingTime   *string          `json:"closingTime"`
}

type ListingController struct {
	ListingSvc *services.ListingService
}

func NewListingController(svc *services.ListingService) *ListingController {
	return &ListingController{ListingSvc: svc}
}

func parseListingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid listing id")
		return 0, false
	}
	return uint(id), true
}

func marshalStrings(values []string) datatypes.JSON {
	if values == nil {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func (ctrl *ListingController) List(c *gin.Context) {
	filter := services.ListingFilter{
		City: c.Query("city"),
		Type: c.Query("type"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "minPrice must be a number")
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "maxPrice must be a number")
			return
		}
		filter.MaxPrice = &v
	}
	if raw := c.Query("guests"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "guests must be a number")
			return
		}
		filter.Guests = &v
	}

	listings, err := ctrl.ListingSvc.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (ctrl *ListingController) Cities(c *gin.Context) {
	cities, err := ctrl.ListingSvc.Cities()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (ctrl *ListingController) Recommendations(c *gin.Context) {
	latRaw := c.Query("lat")
	lngRaw := c.Query("lng")

	if latRaw != "" && lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			utils.JSONError(c, http.StatusBadRequest, "lat and lng must be numbers")
			return
		}
		recs, err := ctrl.ListingSvc.RecommendByLocation(lat, lng)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
		return
	}

	if city := c.Query("city"); city != "" {
		recs, err := ctrl.ListingSvc.RecommendByCity(city)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
		return
	}

	utils.JSONError(c, http.StatusBadRequest, "lat and lng query parameters are required unless city is provided")
}

func (ctrl *ListingController) GetByID(c *gin.Context) {
	id, ok := parseListingID(c)
	if !ok {
		return
	}
	listing, err := ctrl.ListingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (ctrl *ListingController) Create(c *gin.Context) {
	var payload CreateListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "type, title and city are required")
		return
	}

	listing := models.Listing{
		OwnerID:       middleware.CurrentUserID(c),
		Type:          models.ListingType(payload.Type),
		Title:         payload.Title,
		Description:   payload.Description,
		City:          payload.City,
		Address:       payload.Address,
		PricePerNight: payload.PricePerNight,
		MaxGuests:     payload.MaxGuests,
		Amenities:     marshalStrings(payload.Amenities),
		Images:        marshalStrings(payload.Images),
		OpeningTime:   payload.OpeningTime,
		ClosingTime:   payload.ClosingTime,
	}
	if payload.Location != nil {
		listing.Lat = payload.Location.Lat
		listing.Lng = payload.Location.Lng
	}

	created, err := ctrl.ListingSvc.Create(listing)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctrl *ListingController) Update(c *gin.Context) {
	id, ok := parseListingID(c)
	if !ok {
		return
	}

	var payload UpdateListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := services.UpdateListingInput{
		Title:         payload.Title,
		Description:   payload.Description,
		City:          payload.City,
		Address:       payload.Address,
		PricePerNight: payload.PricePerNight,
		MaxGuests:     payload.MaxGuests,
		OpeningTime:   payload.OpeningTime,
		ClosingTime:   payload.ClosingTime,
	}
	if payload.Amenities != nil {
		in.Amenities = marshalStrings(payload.Amenities)
	}
	if payload.Images != nil {
		in.Images = marshalStrings(payload.Images)
	}
	if payload.Location != nil {
		in.Lat = payload.Location.Lat
		in.Lng = payload.Location.Lng
	}

	updated, err := ctrl.ListingSvc.Update(middleware.CurrentUserID(c), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ctrl *ListingController) Delete(c *gin.Context) {
	id, ok := parseListingID(c)
	if !ok {
		return
	}
	if err := ctrl.ListingSvc.Delete(middleware.CurrentUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}
