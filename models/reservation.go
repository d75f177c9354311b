package models

import (
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// CanTransitionTo is the single place reservation transitions are allowed.
// CANCELLED is terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCancelled
	default:
		return false
	}
}

type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`

	GuestID   uint `gorm:"index;column:guest_id" json:"guestId"`
	ListingID uint `gorm:"index;column:listing_id" json:"listingId"`

	// Calendar dates normalized to midnight; the stay is [check_in, check_out).
	CheckIn  time.Time `gorm:"column:check_in" json:"checkInDate"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOutDate"`

	Nights      int     `gorm:"column:nights" json:"nights"`
	GuestsCount int     `gorm:"column:guests_count" json:"guestsCount"`
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`

	Status ReservationStatus `gorm:"column:status;size:16;index" json:"status"`

	Listing Listing `gorm:"foreignKey:ListingID;references:ID" json:"-"`
	Guest   User    `gorm:"foreignKey:GuestID;references:ID" json:"-"`
}

// Blocking reports whether this reservation keeps its calendar range
// unavailable at the given instant. CONFIRMED always blocks; PENDING blocks
// only while its hold window is open; CANCELLED never blocks.
func (r *Reservation) Blocking(now time.Time, holdWindow time.Duration) bool {
	switch r.Status {
	case ReservationConfirmed:
		return true
	case ReservationPending:
		return !r.CreatedAt.Before(now.Add(-holdWindow))
	default:
		return false
	}
}

// Reclaimable reports whether this is an expired PENDING hold eligible for
// automatic cancellation.
func (r *Reservation) Reclaimable(now time.Time, holdWindow time.Duration) bool {
	return r.Status == ReservationPending && !r.Blocking(now, holdWindow)
}

// Overlaps applies the half-open interval predicate: a checkout on day X and
// a check-in on day X do not conflict.
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn)
}
