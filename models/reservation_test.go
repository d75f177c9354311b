package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ReservationStatus
		allowed  bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationConfirmed, ReservationCancelled, true},
		{ReservationConfirmed, ReservationPending, false},
		{ReservationCancelled, ReservationPending, false},
		{ReservationCancelled, ReservationConfirmed, false},
		{ReservationCancelled, ReservationCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestReservationBlocking(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	window := 30 * time.Minute

	confirmed := Reservation{Status: ReservationConfirmed, CreatedAt: now.Add(-24 * time.Hour)}
	assert.True(t, confirmed.Blocking(now, window))
	assert.False(t, confirmed.Reclaimable(now, window))

	fresh := Reservation{Status: ReservationPending, CreatedAt: now.Add(-29 * time.Minute)}
	assert.True(t, fresh.Blocking(now, window))

	// Exactly at the boundary still blocks: createdAt >= now - window.
	edge := Reservation{Status: ReservationPending, CreatedAt: now.Add(-window)}
	assert.True(t, edge.Blocking(now, window))

	expired := Reservation{Status: ReservationPending, CreatedAt: now.Add(-31 * time.Minute)}
	assert.False(t, expired.Blocking(now, window))
	assert.True(t, expired.Reclaimable(now, window))

	cancelled := Reservation{Status: ReservationCancelled, CreatedAt: now}
	assert.False(t, cancelled.Blocking(now, window))
	assert.False(t, cancelled.Reclaimable(now, window))
}

func TestReservationOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}
	r := Reservation{CheckIn: day(1), CheckOut: day(5)}

	assert.True(t, r.Overlaps(day(3), day(6)))
	assert.True(t, r.Overlaps(day(4), day(5)))

	// Half-open: checkout day equals new check-in day.
	assert.False(t, r.Overlaps(day(5), day(8)))
	assert.False(t, r.Overlaps(day(8), day(10)))
}

func TestListingBookable(t *testing.T) {
	nightly := 2500.0

	room := Listing{Type: ListingRoom, PricePerNight: &nightly}
	assert.True(t, room.Bookable())

	cafe := Listing{Type: ListingCafe, PricePerNight: &nightly}
	assert.False(t, cafe.Bookable())

	unpriced := Listing{Type: ListingRentHome}
	assert.False(t, unpriced.Bookable())
}
