package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"homigo-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "homigo_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Reservation{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

type seedListing struct {
	listingType   models.ListingType
	title         string
	description   string
	city          string
	address       string
	pricePerNight *float64
	maxGuests     *int
	images        []string
	lat, lng      float64
	openingTime   string
	closingTime   string
}

func price(v float64) *float64 { return &v }
func guests(v int) *int        { return &v }

// SeedDatabase populates a demo host and sample listings when the catalog is
// empty, so a fresh install has something to browse and book.
func SeedDatabase() {
	var listingCount int64
	DB.Model(&models.Listing{}).Count(&listingCount)
	if listingCount > 0 {
		log.Println("Listings already seeded")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("host123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash seed host password: %v", err)
		return
	}
	host := models.User{
		Name:         "Demo Host",
		Email:        "host@homigo.local",
		PasswordHash: string(hash),
		Role:         models.RoleHost,
	}
	if err := DB.Where("email = ?", host.Email).FirstOrCreate(&host).Error; err != nil {
		log.Printf("warning: failed to seed demo host: %v", err)
		return
	}

	seeds := []seedListing{
		{
			listingType: models.ListingRoom,
			title:       "Cozy Studio Apartment in Bandra",
			description: "Beautiful studio apartment in the heart of Bandra, close to restaurants and shopping.",
			city:        "Mumbai", address: "Bandra West, Mumbai 400050",
			pricePerNight: price(2500), maxGuests: guests(2),
			images: []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800&h=600&fit=crop"},
			lat:    19.0596, lng: 72.8295,
		},
		{
			listingType: models.ListingRentHome,
			title:       "Luxury 3BHK Apartment in Powai",
			description: "Spacious 3 bedroom apartment with modern amenities, great views, and premium location.",
			city:        "Mumbai", address: "Powai, Mumbai 400076",
			pricePerNight: price(8000), maxGuests: guests(6),
			images: []string{"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800&h=600&fit=crop"},
			lat:    19.1197, lng: 72.9050,
		},
		{
			listingType: models.ListingCafe,
			title:       "Cafe Mocha - Bandra",
			description: "Trendy coffee shop with great ambiance, perfect for work or relaxation.",
			city:        "Mumbai", address: "Hill Road, Bandra West, Mumbai 400050",
			images: []string{"https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=800&h=600&fit=crop"},
			lat:    19.0596, lng: 72.8295,
			openingTime: "08:00", closingTime: "23:00",
		},
		{
			listingType: models.ListingRoom,
			title:       "Modern Room in Connaught Place",
			description: "Centrally located room in CP, walking distance to metro and shopping.",
			city:        "Delhi", address: "Connaught Place, New Delhi 110001",
			pricePerNight: price(3000), maxGuests: guests(2),
			images: []string{"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&h=600&fit=crop"},
			lat:    28.6315, lng: 77.2167,
		},
		{
			listingType: models.ListingRentHome,
			title:       "Heritage Villa in Hauz Khas",
			description: "Charming villa near Hauz Khas Village with a private garden.",
			city:        "Delhi", address: "Hauz Khas, New Delhi 110016",
			pricePerNight: price(9500), maxGuests: guests(8),
			images: []string{"https://images.unsplash.com/photo-1600607687644-c7171b42498b?w=800&h=600&fit=crop"},
			lat:    28.5494, lng: 77.2001,
		},
		{
			listingType: models.ListingCafe,
			title:       "Indian Coffee House - CP",
			description: "Historic cafe serving filter coffee and snacks since 1957.",
			city:        "Delhi", address: "Connaught Place, New Delhi 110001",
			images: []string{"https://images.unsplash.com/photo-1445116572660-236099ec97a0?w=800&h=600&fit=crop"},
			lat:    28.6330, lng: 77.2190,
			openingTime: "09:00", closingTime: "21:00",
		},
		{
			listingType: models.ListingRoom,
			title:       "Compact Room near MG Road",
			description: "Budget-friendly room next to MG Road metro, ideal for short stays.",
			city:        "Bengaluru", address: "MG Road, Bengaluru 560001",
			pricePerNight: price(1800), maxGuests: guests(2),
			images: []string{"https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?w=800&h=600&fit=crop"},
			lat:    12.9758, lng: 77.6045,
		},
	}

	created := 0
	for _, s := range seeds {
		imagesJSON, _ := json.Marshal(s.images)
		lat := s.lat
		lng := s.lng
		listing := models.Listing{
			OwnerID:       host.ID,
			Type:          s.listingType,
			Title:         s.title,
			Description:   s.description,
			City:          s.city,
			Address:       s.address,
			PricePerNight: s.pricePerNight,
			MaxGuests:     s.maxGuests,
			Images:        datatypes.JSON(imagesJSON),
			Lat:           &lat,
			Lng:           &lng,
			OpeningTime:   s.openingTime,
			ClosingTime:   s.closingTime,
		}
		if err := DB.Create(&listing).Error; err != nil {
			log.Printf("warning: failed to seed listing %q: %v", s.title, err)
			continue
		}
		created++
	}
	log.Printf("Seeded %d sample listings", created)
}
