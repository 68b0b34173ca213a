package main

import (
	"fmt"
	"log"
	"time"

	"tixly/internal/merchant"
	"tixly/internal/notifications"
	"tixly/internal/profile"
	"tixly/internal/shared/config"
	"tixly/internal/shared/database"
	"tixly/internal/tickets"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB

	users     []profile.Profile
	merchants []profile.Profile
	events    []tickets.Event
}

func main() {
	fmt.Println("🌱 Starting Tixly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"notifications",
		"transactions",
		"qr_codes",
		"tickets",
		"events",
		"profiles",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	if err := s.seedProfiles(); err != nil {
		return fmt.Errorf("failed to seed profiles: %w", err)
	}
	if err := s.seedEvents(); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	if err := s.seedTickets(); err != nil {
		return fmt.Errorf("failed to seed tickets: %w", err)
	}
	if err := s.seedNotifications(); err != nil {
		return fmt.Errorf("failed to seed notifications: %w", err)
	}
	if err := s.seedMerchantData(); err != nil {
		return fmt.Errorf("failed to seed merchant data: %w", err)
	}
	return nil
}

func (s *Seeder) seedProfiles() error {
	fmt.Println("  Seeding profiles...")

	names := []string{"Alice Vongsa", "Bounmy Keo", "Chan Dara", "Deng Souk", "Emma Lao"}
	for _, name := range names {
		p := profile.Profile{
			UserID:      uuid.New(),
			DisplayName: name,
			Phone:       "+856201234567",
			Language:    "en",
			Role:        profile.RoleUser,
		}
		if err := s.db.PostgreSQL.Create(&p).Error; err != nil {
			return err
		}
		s.users = append(s.users, p)
	}

	merchantNames := []string{"Riverside Cafe", "Night Market Stall 12"}
	for _, name := range merchantNames {
		p := profile.Profile{
			UserID:      uuid.New(),
			DisplayName: name,
			Phone:       "+856209876543",
			Language:    "lo",
			Role:        profile.RoleMerchant,
		}
		if err := s.db.PostgreSQL.Create(&p).Error; err != nil {
			return err
		}
		s.merchants = append(s.merchants, p)
	}

	fmt.Printf("  Created %d user profiles and %d merchant profiles\n", len(s.users), len(s.merchants))
	return nil
}

func (s *Seeder) seedEvents() error {
	fmt.Println("  Seeding events...")

	seedEvents := []tickets.Event{
		{
			ID:          uuid.New(),
			Title:       "Mekong Riverside Concert",
			Description: "Open-air concert on the riverfront",
			Location:    "Vientiane Riverfront Park",
			StartDate:   time.Now().AddDate(0, 0, 14),
			PriceCents:  150000,
		},
		{
			ID:          uuid.New(),
			Title:       "Lao Food Festival",
			Description: "Street food from every province",
			Location:    "That Luang Esplanade",
			StartDate:   time.Now().AddDate(0, 0, 30),
			PriceCents:  50000,
		},
		{
			ID:          uuid.New(),
			Title:       "Tech Meetup Vientiane",
			Description: "Monthly developer meetup",
			Location:    "ICT Center Hall B",
			StartDate:   time.Now().AddDate(0, 0, -7),
			PriceCents:  0,
		},
	}

	for _, e := range seedEvents {
		if err := s.db.PostgreSQL.Create(&e).Error; err != nil {
			return err
		}
		s.events = append(s.events, e)
	}

	fmt.Printf("  Created %d events\n", len(s.events))
	return nil
}

func (s *Seeder) seedTickets() error {
	fmt.Println("  Seeding tickets...")

	statuses := []tickets.TicketStatus{
		tickets.TicketStatusConfirmed,
		tickets.TicketStatusPending,
		tickets.TicketStatusUsed,
		tickets.TicketStatusCancelled,
	}

	count := 0
	for i, user := range s.users {
		for j, event := range s.events {
			t := tickets.Ticket{
				ID:      uuid.New(),
				UserID:  user.UserID,
				EventID: event.ID,
				Status:  statuses[(i+j)%len(statuses)],
			}
			if err := s.db.PostgreSQL.Create(&t).Error; err != nil {
				return err
			}
			count++
		}
	}

	fmt.Printf("  Created %d tickets\n", count)
	return nil
}

func (s *Seeder) seedNotifications() error {
	fmt.Println("  Seeding notifications...")

	count := 0
	for _, user := range s.users {
		seed := []notifications.Notification{
			{
				UserID:   user.UserID,
				Type:     notifications.NotificationTypePayment,
				Priority: notifications.NotificationPriorityNormal,
				Title:    "Payment received",
				Message:  "Your ticket purchase went through.",
			},
			{
				UserID:    user.UserID,
				Type:      notifications.NotificationTypeTicket,
				Priority:  notifications.NotificationPriorityHigh,
				Title:     "Event starts soon",
				Message:   "Mekong Riverside Concert starts in 2 hours.",
				ActionURL: "/tickets",
			},
			{
				UserID:   user.UserID,
				Type:     notifications.NotificationTypeSecurity,
				Priority: notifications.NotificationPriorityUrgent,
				Title:    "New device sign-in",
				Message:  "A new device signed in to your account.",
			},
			{
				UserID:   user.UserID,
				Type:     notifications.NotificationTypePromo,
				Priority: notifications.NotificationPriorityNormal,
				Title:    "Weekend discount",
				Message:  "20% off food festival tickets this weekend.",
			},
		}
		for i := range seed {
			seed[i].ID = uuid.New()
			if err := s.db.PostgreSQL.Create(&seed[i]).Error; err != nil {
				return err
			}
			count++
		}
	}

	fmt.Printf("  Created %d notifications\n", count)
	return nil
}

func (s *Seeder) seedMerchantData() error {
	fmt.Println("  Seeding merchant transactions and QR codes...")

	now := time.Now()
	// Spread across the daily/weekly/monthly windows plus one outside
	offsets := []time.Duration{
		0,
		-2 * time.Hour,
		-3 * 24 * time.Hour,
		-10 * 24 * time.Hour,
		-45 * 24 * time.Hour,
	}

	txCount := 0
	for _, m := range s.merchants {
		for i, offset := range offsets {
			payer := s.users[i%len(s.users)]
			tx := merchant.Transaction{
				ID:           uuid.New(),
				RecipientID:  m.UserID,
				SourceUserID: payer.UserID,
				AmountCents:  int64(25000 * (i + 1)),
				Type:         merchant.TransactionTypeEarning,
				Reference:    fmt.Sprintf("SEED-%d", i),
				CreatedAt:    now.Add(offset),
			}
			if err := s.db.PostgreSQL.Create(&tx).Error; err != nil {
				return err
			}
			txCount++
		}

		codes := []merchant.QRCode{
			{ID: uuid.New(), OwnerID: m.UserID, Label: "Counter", Active: true},
			{ID: uuid.New(), OwnerID: m.UserID, Label: "Delivery", Active: true},
			{ID: uuid.New(), OwnerID: m.UserID, Label: "Old counter", Active: false},
		}
		for _, code := range codes {
			if err := s.db.PostgreSQL.Create(&code).Error; err != nil {
				return err
			}
		}
	}

	fmt.Printf("  Created %d transactions and %d QR codes\n", txCount, len(s.merchants)*3)
	return nil
}
