package main

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	"github.com/praveenchdev/followup-agent/internal/infrastructure/database"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

func main() {
	log.Println("Starting directory seed...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("Database connected successfully")

	seed := []struct {
		Username   string
		FullName   string
		Email      string
		Department string
		EmployeeID string
		Aliases    []string
	}{
		{Username: "sarika", FullName: "Sarika Menon", Email: "sarika@test.local", Department: "Legal", EmployeeID: "E1001", Aliases: []string{"sarika m"}},
		{Username: "sunil", FullName: "Sunil Rao", Email: "sunil@test.local", Department: "Finance", EmployeeID: "E1002"},
		{Username: "ajay", FullName: "Ajay Kumar", Email: "ajay@test.local", Department: "Finance", EmployeeID: "E1003", Aliases: []string{"ajay k", "ak"}},
		{Username: "priya", FullName: "Priya Sharma", Email: "priya@test.local", Department: "Operations", EmployeeID: "E1004"},
	}

	log.Println("Cleaning up existing seed users...")
	db.Where("email LIKE ?", "%@test.local").Delete(&entities.User{})

	for _, s := range seed {
		var aliases datatypes.JSON
		if len(s.Aliases) > 0 {
			raw, _ := json.Marshal(s.Aliases)
			aliases = datatypes.JSON(raw)
		}

		user := &entities.User{
			ID:         uuid.New(),
			Username:   s.Username,
			FullName:   s.FullName,
			Email:      s.Email,
			Department: s.Department,
			EmployeeID: s.EmployeeID,
			Aliases:    aliases,
			IsActive:   true,
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", s.Username, err)
		}
		log.Printf("Created %s (%s)", s.FullName, s.Email)
	}

	log.Println("Directory seed complete")
}
