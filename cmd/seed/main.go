package main

import (
	"fmt"
	"time"

	"gatherly/internal/model"
	"gatherly/pkg/config"
	"gatherly/pkg/database"
	"gatherly/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email      string
		firstName  string
		secondName string
		password   string
		isAdmin    bool
	}{
		{"admin@test.com", "Ada", "Admin", "password123", true},
		{"alice@test.com", "Alice", "Anderson", "password123", false},
		{"bob@test.com", "Bob", "Brown", "password123", false},
		{"charlie@test.com", "Charlie", "Clark", "password123", false},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		var existing model.UserModel
		result := db.Where("email = ?", userData.email).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", userData.email)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		user := model.UserModel{
			Email:         userData.email,
			PasswordHash:  string(hashedPassword),
			FirstName:     userData.firstName,
			SecondName:    userData.secondName,
			EmailVerified: true,
			IsAdmin:       userData.isAdmin,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Error("Failed to create user %s: %v", userData.email, err)
			continue
		}

		log.Info("Created user: %s", userData.email)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) < 3 {
		return fmt.Errorf("not enough users to seed events")
	}

	maxParticipants := 50
	event := model.EventModel{
		Title:                "Gatherly Launch Meetup",
		Description:          "Meet the people behind the platform.",
		DateTime:             time.Now().Add(14 * 24 * time.Hour),
		OrganizerID:          userIDs[1],
		Categories:           []string{"community", "tech"},
		Status:               "PLANNING",
		IsFree:               true,
		MaxParticipantsCount: &maxParticipants,
	}

	var existingEvent model.EventModel
	if err := db.Where("title = ?", event.Title).First(&existingEvent).Error; err == nil {
		log.Info("Seed event already exists, skipping")
		return nil
	}

	if err := db.Create(&event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	log.Info("Created event: %s", event.Title)

	registration := model.RegistrationModel{
		EventID: event.ID,
		UserID:  userIDs[2],
		Status:  "registered",
	}
	if err := db.Create(&registration).Error; err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	if err := db.Model(&event).UpdateColumn("participants_count", gorm.Expr("participants_count + ?", 1)).Error; err != nil {
		return fmt.Errorf("failed to bump participant count: %w", err)
	}
	log.Info("Registered seed participant for %s", event.Title)

	return nil
}
