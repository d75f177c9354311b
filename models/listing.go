package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListingType string

const (
	ListingRoom     ListingType = "room"
	ListingRentHome ListingType = "rent_home"
	ListingCafe     ListingType = "cafe"
)

func (t ListingType) Valid() bool {
	switch t {
	case ListingRoom, ListingRentHome, ListingCafe:
		return true
	}
	return false
}

// Stay types take overnight reservations; cafes never do.
func (t ListingType) Bookable() bool {
	return t == ListingRoom || t == ListingRentHome
}

type Listing struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OwnerID uint        `gorm:"index;column:owner_id" json:"ownerId"`
	Type    ListingType `gorm:"size:32" json:"type"`

	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	City        string `gorm:"size:128;index" json:"city"`
	Address     string `gorm:"size:255" json:"address,omitempty"`

	// Nullable: cafes have no nightly rate. Price at booking time is captured
	// on the reservation, so later edits here never rewrite history.
	PricePerNight *float64 `gorm:"column:price_per_night" json:"pricePerNight,omitempty"`
	MaxGuests     *int     `gorm:"column:max_guests" json:"maxGuests,omitempty"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	Lat *float64 `gorm:"column:lat" json:"lat,omitempty"`
	Lng *float64 `gorm:"column:lng" json:"lng,omitempty"`

	// Cafe opening hours, "HH:MM".
	OpeningTime string `gorm:"size:16" json:"openingTime,omitempty"`
	ClosingTime string `gorm:"size:16" json:"closingTime,omitempty"`

	Owner User `gorm:"foreignKey:OwnerID;references:ID" json:"-"`
}

// Bookable reports whether this listing can hold reservations at all:
// a stay type with a nightly rate on record.
func (l *Listing) Bookable() bool {
	return l.Type.Bookable() && l.PricePerNight != nil
}

func (l *Listing) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}
