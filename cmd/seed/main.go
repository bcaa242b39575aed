package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"premam/internal/config"
	"premam/internal/db"
	"premam/internal/model"
	"premam/internal/repository"
)

const (
	demoDisplayName = "Romeo"
	demoSlug        = "demo"
	demoPasscode    = "1234"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Creator{},
		&model.Message{},
		&model.Vote{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	creatorRepo := repository.NewCreatorRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	creator, created, err := seedDemoCreator(ctx, creatorRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo creator: %v", err)
	}
	if !created {
		log.Printf("Demo creator %q already exists, skipping message seed", creator.Slug)
		log.Println("Seed completed successfully!")
		return
	}
	log.Printf("Created demo creator %q (slug %q, passcode %q)", creator.DisplayName, creator.Slug, demoPasscode)

	seeded, err := seedDemoMessages(ctx, messageRepo, creator)
	if err != nil {
		log.Fatalf("Failed to seed demo messages: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Demo messages created: %d", seeded)
	log.Printf("  - Inbox available at: /to/%s", creator.Slug)
}

// seedDemoCreator creates the demo inbox if it does not exist yet. The bool
// reports whether a new row was created on this run.
func seedDemoCreator(ctx context.Context, creators repository.CreatorRepository) (*model.Creator, bool, error) {
	existing, err := creators.FindBySlug(ctx, demoSlug)
	if err == nil {
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPasscode), 10)
	if err != nil {
		return nil, false, err
	}

	creator := &model.Creator{
		DisplayName:  demoDisplayName,
		Slug:         demoSlug,
		PasscodeHash: string(hash),
	}
	if err := creators.Create(ctx, creator); err != nil {
		return nil, false, err
	}
	return creator, true, nil
}

// seedDemoMessages drops a couple of sample submissions into the demo inbox
// so a fresh deployment has something to show in the dashboard and feed.
func seedDemoMessages(ctx context.Context, messages repository.MessageRepository, creator *model.Creator) (int, error) {
	now := time.Now()
	samples := []model.Message{
		{
			CreatorID:        creator.ID,
			Type:             model.MessageTypeConfession,
			Vibe:             "nervous",
			Content:          "I've been meaning to say this since the first semester. Your laugh in the back row made every boring lecture worth attending.",
			SenderDevice:     "seed-script",
			SenderLocation:   "Unknown",
			SenderIP:         "Unknown",
			SenderTimestamp:  now.Add(-2 * time.Hour),
			DatePreference:   model.DatePreferenceRandom,
			GenderPreference: model.GenderPreferenceAny,
			IsPublic:         true,
		},
		{
			CreatorID:       creator.ID,
			Type:            model.MessageTypeBouquet,
			BouquetID:       "sunflower",
			Note:            "For always saving me a seat.",
			SenderDevice:    "seed-script",
			SenderLocation:  "Unknown",
			SenderIP:        "Unknown",
			SenderTimestamp: now.Add(-30 * time.Minute),
			DatePreference:  model.DatePreferenceSpecific,
			RecipientName:   "Romeo",
		},
	}

	seeded := 0
	for i := range samples {
		if err := messages.Create(ctx, &samples[i]); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
