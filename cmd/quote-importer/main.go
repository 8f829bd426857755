package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"reactcheckin/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JSONQuote struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

func main() {
	jsonPath := "./quotes.json"
	if len(os.Args) > 1 {
		jsonPath = os.Args[1]
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.Quote{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var entries []JSONQuote
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}

	fmt.Printf("Found %d quotes in %s\n\n", len(entries), jsonPath)

	quotes := make([]models.Quote, 0, len(entries))
	for i, entry := range entries {
		index := entry.Index
		if index == 0 && i > 0 {
			index = i
		}
		if index < 0 || index >= models.QuoteCount {
			log.Fatalf("quote %d: index %d out of range [0, %d)", i, index, models.QuoteCount)
		}
		if entry.Text == "" {
			log.Fatalf("quote %d: empty text", i)
		}
		quotes = append(quotes, models.Quote{
			Index:  index,
			Text:   entry.Text,
			Author: entry.Author,
		})
	}

	// Replace existing rows at the same index so the importer can be re-run
	// after editing the JSON file.
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "index"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "author"}),
	}).Create(&quotes).Error
	if err != nil {
		log.Fatal("Failed to import quotes:", err)
	}

	var count int64
	db.Model(&models.Quote{}).Count(&count)
	fmt.Printf("✓ Imported %d quotes (total in database: %d)\n", len(quotes), count)
}
