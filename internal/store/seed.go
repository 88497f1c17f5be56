package store

import (
	"context"
	"time"
)

// Seed resets the store to the fixed demo data set. All records except
// carts are created here; carts appear lazily on the first add.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = seedProducts()
	s.reviews = seedReviews()
	s.users = seedUsers()
	s.carts = nil
	s.reviewSeq = len(s.reviews)
}

// SeedDemoCart puts a few items in the demo user's cart so the cart page
// has something to show on first load.
func (s *Store) SeedDemoCart(userID string) error {
	for _, line := range []struct {
		productID string
		quantity  int
	}{
		{"p_1", 2},
		{"p_3", 1},
		{"p_5", 1},
	} {
		if _, err := s.AddToCart(context.Background(), userID, line.productID, line.quantity); err != nil {
			return err
		}
	}
	return nil
}

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func seedProducts() []Product {
	return []Product{
		{
			ID:         "p_1",
			Title:      "Wireless Bluetooth Headphones",
			PriceCents: 19999,
			Tags:       []string{"electronics", "audio", "wireless"},
			Rating:     4.5,
			Images:     []string{"/storage/products/placeholder.svg", "/storage/products/placeholder.svg"},
			Specs: map[string]string{
				"Battery Life":       "30 hours",
				"Connectivity":       "Bluetooth 5.0",
				"Weight":             "250g",
				"Noise Cancellation": "Active",
			},
			Stock:       25,
			Description: "Premium wireless headphones with active noise cancellation and superior sound quality.",
			CreatedAt:   day("2024-01-15"),
			UpdatedAt:   day("2024-01-15"),
		},
		{
			ID:         "p_2",
			Title:      "Smart Fitness Watch",
			PriceCents: 29999,
			Tags:       []string{"electronics", "fitness", "wearable"},
			Rating:     4.3,
			Images:     []string{"/storage/products/placeholder.svg", "/storage/products/placeholder.svg"},
			Specs: map[string]string{
				"Display":          "1.4\" AMOLED",
				"Battery Life":     "7 days",
				"Water Resistance": "5ATM",
				"Sensors":          "Heart rate, GPS, Accelerometer",
			},
			Stock:       15,
			Description: "Advanced fitness tracking with comprehensive health monitoring and GPS capabilities.",
			CreatedAt:   day("2024-01-20"),
			UpdatedAt:   day("2024-01-20"),
		},
		{
			ID:         "p_3",
			Title:      "Mechanical Gaming Keyboard",
			PriceCents: 14999,
			Tags:       []string{"electronics", "gaming", "keyboard"},
			Rating:     4.7,
			Images:     []string{"/storage/products/placeholder.svg", "/storage/products/placeholder.svg"},
			Specs: map[string]string{
				"Switch Type":  "Cherry MX Red",
				"Backlight":    "RGB",
				"Connectivity": "USB-C",
				"Layout":       "Full-size",
			},
			Stock:       8,
			Description: "Professional mechanical keyboard with RGB backlighting and premium switches.",
			CreatedAt:   day("2024-02-01"),
			UpdatedAt:   day("2024-02-01"),
		},
		{
			ID:         "p_4",
			Title:      "4K Ultra HD Monitor",
			PriceCents: 59999,
			Tags:       []string{"electronics", "display", "monitor"},
			Rating:     4.8,
			Images:     []string{"/storage/products/placeholder.svg", "/storage/products/placeholder.svg"},
			Specs: map[string]string{
				"Resolution":   "3840 x 2160",
				"Panel Type":   "IPS",
				"Refresh Rate": "60Hz",
				"Connectivity": "HDMI, DisplayPort, USB-C",
			},
			Stock:       5,
			Description: "Stunning 4K monitor with wide color gamut and professional-grade color accuracy.",
			CreatedAt:   day("2024-02-10"),
			UpdatedAt:   day("2024-02-10"),
		},
		{
			ID:         "p_5",
			Title:      "Wireless Gaming Mouse",
			PriceCents: 8999,
			Tags:       []string{"electronics", "gaming", "mouse"},
			Rating:     4.4,
			Images:     []string{"/storage/products/placeholder.svg", "/storage/products/placeholder.svg"},
			Specs: map[string]string{
				"DPI":          "16000",
				"Connectivity": "Wireless 2.4GHz",
				"Battery Life": "70 hours",
				"Buttons":      "Programmable",
			},
			Stock:       20,
			Description: "High-precision wireless gaming mouse with customizable RGB lighting.",
			CreatedAt:   day("2024-02-15"),
			UpdatedAt:   day("2024-02-15"),
		},
	}
}

func seedReviews() []Review {
	return []Review{
		{
			ID:        "r_1",
			ProductID: "p_1",
			UserID:    "u_1",
			Body:      "Excellent sound quality and comfortable to wear for long periods.",
			Stars:     5,
			CreatedAt: day("2024-01-20"),
			Helpful:   12,
		},
		{
			ID:        "r_2",
			ProductID: "p_1",
			UserID:    "u_2",
			Body:      "Good headphones but the battery life could be better.",
			Stars:     4,
			CreatedAt: day("2024-01-25"),
			Helpful:   8,
		},
		{
			ID:        "r_3",
			ProductID: "p_2",
			UserID:    "u_3",
			Body:      "Great fitness tracker with accurate heart rate monitoring.",
			Stars:     4,
			CreatedAt: day("2024-01-30"),
			Helpful:   15,
		},
	}
}

func seedUsers() []User {
	return []User{
		{
			ID:        "u_1",
			Name:      "John Doe",
			Email:     "john@example.com",
			AvatarURL: "/storage/avatars/john.jpg",
			Preferences: Preferences{
				FavoriteCategories: []string{"electronics", "gaming"},
				Notifications:      true,
				Theme:              ThemeLight,
			},
			CreatedAt: day("2024-01-01"),
		},
		{
			ID:        "u_2",
			Name:      "Jane Smith",
			Email:     "jane@example.com",
			AvatarURL: "/storage/avatars/jane.jpg",
			Preferences: Preferences{
				FavoriteCategories: []string{"electronics", "audio"},
				Notifications:      false,
				Theme:              ThemeDark,
			},
			CreatedAt: day("2024-01-05"),
		},
		// The user every demo page and form addresses by default.
		{
			ID:        "demo_user",
			Name:      "Demo User",
			Email:     "demo@example.com",
			AvatarURL: "/storage/avatars/demo.jpg",
			Preferences: Preferences{
				FavoriteCategories: []string{"electronics", "gaming"},
				Notifications:      true,
				Theme:              ThemeSystem,
			},
			CreatedAt: day("2024-01-10"),
		},
	}
}
