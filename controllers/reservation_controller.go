package controllers

import (
	"net/http"
	"strconv"
	"time"

	"homigo-backend/middleware"
	"homigo-backend/models"
	"homigo-backend/services"
	"homigo-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateReservationPayload struct {
	ListingID    uint   `json:"listingId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	GuestsCount  int    `json:"guestsCount" binding:"required"`
}

// ListingSummary is the read-only slice of the listing joined onto a
// guest's reservation rows.
type ListingSummary struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	City          string             `json:"city"`
	Type          models.ListingType `json:"type"`
	PricePerNight *float64           `json:"pricePerNight,omitempty"`
}

type MyReservationResponse struct {
	ID            uint                     `json:"id"`
	ReferenceCode string                   `json:"referenceCode"`
	CheckInDate   time.Time                `json:"checkInDate"`
	CheckOutDate  time.Time                `json:"checkOutDate"`
	Nights        int                      `json:"nights"`
	GuestsCount   int                      `json:"guestsCount"`
	TotalAmount   float64                  `json:"totalAmount"`
	Status        models.ReservationStatus `json:"status"`
	CreatedAt     time.Time                `json:"createdAt"`
	Listing       ListingSummary           `json:"listing"`
}

type GuestSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ListingReservationResponse struct {
	ID           uint                     `json:"id"`
	CheckInDate  time.Time                `json:"checkInDate"`
	CheckOutDate time.Time                `json:"checkOutDate"`
	Nights       int                      `json:"nights"`
	GuestsCount  int                      `json:"guestsCount"`
	TotalAmount  float64                  `json:"totalAmount"`
	Status       models.ReservationStatus `json:"status"`
	CreatedAt    time.Time                `json:"createdAt"`
	Guest        GuestSummary             `json:"guest"`
}

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

func (ctrl *ReservationController) Create(c *gin.Context) {
	var payload CreateReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "listingId, checkInDate, checkOutDate, guestsCount are required")
		return
	}

	reservation, err := ctrl.ReservationSvc.Create(services.CreateReservationInput{
		GuestID:      middleware.CurrentUserID(c),
		ListingID:    payload.ListingID,
		CheckInDate:  payload.CheckInDate,
		CheckOutDate: payload.CheckOutDate,
		GuestsCount:  payload.GuestsCount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

func (ctrl *ReservationController) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reservation id")
		return
	}

	updated, err := ctrl.ReservationSvc.Cancel(middleware.CurrentUserID(c), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ctrl *ReservationController) Mine(c *gin.Context) {
	reservations, err := ctrl.ReservationSvc.ListByGuest(middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]MyReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, MyReservationResponse{
			ID:            r.ID,
			ReferenceCode: r.ReferenceCode,
			CheckInDate:   r.CheckIn,
			CheckOutDate:  r.CheckOut,
			Nights:        r.Nights,
			GuestsCount:   r.GuestsCount,
			TotalAmount:   r.TotalAmount,
			Status:        r.Status,
			CreatedAt:     r.CreatedAt,
			Listing: ListingSummary{
				ID:            r.Listing.ID,
				Title:         r.Listing.Title,
				City:          r.Listing.City,
				Type:          r.Listing.Type,
				PricePerNight: r.Listing.PricePerNight,
			},
		})
	}
	c.JSON(http.StatusOK, out)
}

func (ctrl *ReservationController) ByListing(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil || listingID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid listingId")
		return
	}

	reservations, err := ctrl.ReservationSvc.ListByListing(middleware.CurrentUserID(c), uint(listingID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]ListingReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, ListingReservationResponse{
			ID:           r.ID,
			CheckInDate:  r.CheckIn,
			CheckOutDate: r.CheckOut,
			Nights:       r.Nights,
			GuestsCount:  r.GuestsCount,
			TotalAmount:  r.TotalAmount,
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
			Guest: GuestSummary{
				ID:    r.Guest.ID,
				Name:  r.Guest.Name,
				Email: r.Guest.Email,
			},
		})
	}
	c.JSON(http.StatusOK, out)
}
