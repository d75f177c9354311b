package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"homigo-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultHoldWindow is how long a PENDING reservation keeps blocking the
// calendar before it is presumed abandoned.
const DefaultHoldWindow = 30 * time.Minute

const dateLayout = "2006-01-02"

// listingLocks hands out one mutex per listing id so the overlap check and
// the insert run as a critical section for that listing. Operations on
// different listings never contend.
type listingLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func (l *listingLocks) forListing(id uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[uint]*sync.Mutex)
	}
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	return lock
}

// ReservationService owns reservation availability and lifecycle. The time
// source and hold window are injected so expiry and cutoff behavior is
// deterministic under test.
type ReservationService struct {
	DB         *gorm.DB
	HoldWindow time.Duration
	Now        func() time.Time

	locks listingLocks
}

func NewReservationService(db *gorm.DB, holdWindow time.Duration) *ReservationService {
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}
	return &ReservationService{
		DB:         db,
		HoldWindow: holdWindow,
		Now:        time.Now,
	}
}

type CreateReservationInput struct {
	GuestID      uint
	ListingID    uint
	CheckInDate  string
	CheckOutDate string
	GuestsCount  int
}

// normalizeDay truncates a timestamp to midnight UTC. All calendar
// comparisons run on normalized days.
func normalizeDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return normalizeDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return normalizeDay(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, value)
}

// FindOverlapping returns every reservation on the listing whose stay
// intersects [checkIn, checkOut), regardless of status. Pure read; the
// blocking/reclaimable split is applied by the caller.
func (s *ReservationService) FindOverlapping(tx *gorm.DB, listingID uint, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	if tx == nil {
		tx = s.DB
	}
	var overlapping []models.Reservation
	err := tx.
		Where("listing_id = ? AND check_in < ? AND check_out > ?", listingID, checkOut, checkIn).
		Find(&overlapping).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	return overlapping, nil
}

// Create validates the request, checks availability over the candidate range
// and persists a new PENDING reservation priced at nights x pricePerNight.
// The overlap check and the insert run inside one transaction under the
// listing's lock, so two concurrent requests for the same range cannot both
// pass the check.
func (s *ReservationService) Create(in CreateReservationInput) (*models.Reservation, error) {
	if in.GuestID == 0 || in.ListingID == 0 || in.CheckInDate == "" || in.CheckOutDate == "" {
		return nil, fmt.Errorf("%w: listingId, checkInDate, checkOutDate and guestsCount are required", ErrValidation)
	}
	if in.GuestsCount <= 0 {
		return nil, fmt.Errorf("%w: guestsCount must be a positive number", ErrValidation)
	}

	var listing models.Listing
	if err := s.DB.First(&listing, in.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load listing %d: %w", in.ListingID, err)
	}
	if !listing.Type.Bookable() {
		return nil, fmt.Errorf("%w: cafes cannot be booked", ErrValidation)
	}
	if listing.PricePerNight == nil {
		return nil, fmt.Errorf("%w: listing is missing pricePerNight", ErrValidation)
	}

	checkIn, err := parseDate(in.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate(in.CheckOutDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	today := normalizeDay(now)
	if checkIn.Before(today) || checkOut.Before(today) {
		return nil, fmt.Errorf("%w: dates must be today or later", ErrValidation)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: checkOutDate must be after checkInDate", ErrValidation)
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return nil, fmt.Errorf("%w: stay must be at least one night", ErrValidation)
	}

	lock := s.locks.forListing(in.ListingID)
	lock.Lock()
	defer lock.Unlock()

	var created models.Reservation
	var stale []uint

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		overlapping, err := s.FindOverlapping(tx, in.ListingID, checkIn, checkOut)
		if err != nil {
			return err
		}

		for i := range overlapping {
			r := &overlapping[i]
			if r.Blocking(now, s.HoldWindow) {
				return fmt.Errorf("%w: listing is not available for the selected dates", ErrConflict)
			}
			if r.Reclaimable(now, s.HoldWindow) {
				stale = append(stale, r.ID)
			}
		}

		created = models.Reservation{
			CreatedAt:     now,
			ReferenceCode: uuid.NewString(),
			GuestID:       in.GuestID,
			ListingID:     in.ListingID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Nights:        nights,
			GuestsCount:   in.GuestsCount,
			TotalAmount:   float64(nights) * (*listing.PricePerNight),
			Status:        models.ReservationPending,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best-effort cleanup of expired holds found during the check. The
	// accept decision above never depended on this.
	if len(stale) > 0 {
		go s.ReclaimStale(stale)
	}

	return &created, nil
}

// ReclaimStale transitions expired PENDING holds to CANCELLED. The status
// guard in the WHERE clause makes a repeat sweep of the same rows a no-op.
func (s *ReservationService) ReclaimStale(ids []uint) {
	if len(ids) == 0 {
		return
	}
	res := s.DB.Model(&models.Reservation{}).
		Where("id IN ? AND status = ?", ids, models.ReservationPending).
		Update("status", models.ReservationCancelled)
	if res.Error != nil {
		log.Printf("warning: failed to reclaim %d stale holds: %v", len(ids), res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("reclaimed %d stale pending reservations", res.RowsAffected)
	}
}

// Cancel performs a guest-initiated cancellation. Only the owning guest may
// cancel, only before the check-in day, and only once; a repeat call is a
// conflict, not a no-op.
func (s *ReservationService) Cancel(guestID, reservationID uint) (*models.Reservation, error) {
	var updated models.Reservation

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation not found", ErrNotFound)
			}
			return fmt.Errorf("failed to load reservation %d: %w", reservationID, err)
		}

		if reservation.GuestID != guestID {
			return fmt.Errorf("%w: you are not allowed to cancel this reservation", ErrForbidden)
		}
		if reservation.Status == models.ReservationCancelled {
			return fmt.Errorf("%w: reservation already cancelled", ErrConflict)
		}

		today := normalizeDay(s.Now())
		if !normalizeDay(reservation.CheckIn).After(today) {
			return fmt.Errorf("%w: cannot cancel on or after the check-in date", ErrConflict)
		}

		if !reservation.Status.CanTransitionTo(models.ReservationCancelled) {
			return fmt.Errorf("%w: reservation cannot be cancelled from status %s", ErrConflict, reservation.Status)
		}

		// Guard on the status we read so a concurrent transition loses cleanly.
		res := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", reservation.ID, reservation.Status).
			Update("status", models.ReservationCancelled)
		if res.Error != nil {
			return fmt.Errorf("failed to cancel reservation %d: %w", reservation.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: reservation changed concurrently", ErrConflict)
		}

		reservation.Status = models.ReservationCancelled
		updated = reservation
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &updated, nil
}

// GetByID loads a single reservation.
func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load reservation %d: %w", id, err)
	}
	return &reservation, nil
}

// ListByGuest returns the guest's reservations newest-first, each with its
// listing preloaded for the summary view.
func (s *ReservationService) ListByGuest(guestID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.
		Preload("Listing").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for guest %d: %w", guestID, err)
	}
	return reservations, nil
}

// ListByListing returns the reservations on a listing the requester owns,
// check-in ascending, each with the guest preloaded.
func (s *ReservationService) ListByListing(requesterID, listingID uint) ([]models.Reservation, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load listing %d: %w", listingID, err)
	}
	if listing.OwnerID != requesterID {
		return nil, fmt.Errorf("%w: you are not allowed to view reservations for this listing", ErrForbidden)
	}

	var reservations []models.Reservation
	err := s.DB.
		Preload("Guest").
		Where("listing_id = ?", listingID).
		Order("check_in ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for listing %d: %w", listingID, err)
	}
	return reservations, nil
}
