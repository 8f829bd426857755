// database/seed.go - Initial data: quotes, default settings, bootstrap director
package database

import (
	"log"
	"os"
	"time"

	"reactcheckin/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedQuote struct {
	Text   string
	Author string
}

// The fixed 50-quote rotation revealed by tile flips. Index order matters:
// the per-user cursor walks this list and wraps at 50.
var seedQuotes = []seedQuote{
	{"The best way to predict the future is to create it.", "Peter Drucker"},
	{"It always seems impossible until it's done.", "Nelson Mandela"},
	{"Kindness is a language which the deaf can hear and the blind can see.", "Mark Twain"},
	{"You miss 100% of the shots you don't take.", "Wayne Gretzky"},
	{"Whether you think you can or you think you can't, you're right.", "Henry Ford"},
	{"Fall seven times, stand up eight.", "Japanese proverb"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"In the middle of difficulty lies opportunity.", "Albert Einstein"},
	{"Happiness is not something ready made. It comes from your own actions.", "Dalai Lama"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"Every day may not be good, but there's something good in every day.", "Alice Morse Earle"},
	{"No act of kindness, no matter how small, is ever wasted.", "Aesop"},
	{"Courage doesn't always roar. Sometimes it's the quiet voice saying 'I will try again tomorrow'.", "Mary Anne Radmacher"},
	{"What you do today can improve all your tomorrows.", "Ralph Marston"},
	{"A journey of a thousand miles begins with a single step.", "Lao Tzu"},
	{"Be yourself; everyone else is already taken.", "Oscar Wilde"},
	{"You are braver than you believe, stronger than you seem, and smarter than you think.", "A. A. Milne"},
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Do what you can, with what you have, where you are.", "Theodore Roosevelt"},
	{"Mistakes are proof that you are trying.", ""},
	{"If you can dream it, you can do it.", "Walt Disney"},
	{"Success is not final, failure is not fatal: it is the courage to continue that counts.", "Winston Churchill"},
	{"He waka eke noa — we are all in this together.", "Māori proverb"},
	{"Nothing is impossible. The word itself says 'I'm possible'.", "Audrey Hepburn"},
	{"You don't have to be great to start, but you have to start to be great.", "Zig Ziglar"},
	{"A little progress each day adds up to big results.", ""},
	{"The more that you read, the more things you will know.", "Dr. Seuss"},
	{"When you feel like quitting, remember why you started.", ""},
	{"Your attitude determines your direction.", ""},
	{"Difficult roads often lead to beautiful destinations.", ""},
	{"Try to be a rainbow in someone's cloud.", "Maya Angelou"},
	{"Learning never exhausts the mind.", "Leonardo da Vinci"},
	{"We rise by lifting others.", "Robert Ingersoll"},
	{"Strive for progress, not perfection.", ""},
	{"It's not what happens to you, but how you react to it that matters.", "Epictetus"},
	{"The expert in anything was once a beginner.", "Helen Hayes"},
	{"Don't count the days, make the days count.", "Muhammad Ali"},
	{"Dream big and dare to fail.", "Norman Vaughan"},
	{"Act as if what you do makes a difference. It does.", "William James"},
	{"Turn your face to the sun and the shadows fall behind you.", "Māori proverb"},
	{"Small deeds done are better than great deeds planned.", "Peter Marshall"},
	{"The harder you work for something, the greater you'll feel when you achieve it.", ""},
	{"Worry less, smile more.", ""},
	{"Start where you are. Use what you have. Do what you can.", "Arthur Ashe"},
	{"If opportunity doesn't knock, build a door.", "Milton Berle"},
	{"Well done is better than well said.", "Benjamin Franklin"},
	{"A person who never made a mistake never tried anything new.", "Albert Einstein"},
	{"Light tomorrow with today.", "Elizabeth Barrett Browning"},
	{"Alone we can do so little; together we can do so much.", "Helen Keller"},
	{"However long the night, the dawn will break.", "African proverb"},
}

// Default settings written on first boot. Directors can change them later
// through the admin API.
var defaultSettings = map[string]string{
	"max_checkins_per_day":        "1",
	"max_journal_entries_per_day": "1",
	"checkins_enabled":            "true",
	"journal_enabled":             "true",
	"tiles_enabled":               "true",
	"messages_enabled":            "true",
}

// SeedDatabase inserts the quote rotation, default settings and a bootstrap
// director account if they are missing. Safe to call on every boot.
func SeedDatabase() {
	db := GetDB()

	var quoteCount int64
	db.Model(&models.Quote{}).Count(&quoteCount)
	if quoteCount == 0 {
		quotes := make([]models.Quote, 0, len(seedQuotes))
		for i, q := range seedQuotes {
			quotes = append(quotes, models.Quote{
				Index:  i,
				Text:   q.Text,
				Author: q.Author,
			})
		}
		if err := db.Create(&quotes).Error; err != nil {
			log.Printf("Error seeding quotes: %v", err)
		} else {
			log.Printf("✅ Seeded %d quotes", len(quotes))
		}
	}

	for key, value := range defaultSettings {
		var existing models.Setting
		if err := db.Where("key = ?", key).First(&existing).Error; err != nil {
			db.Create(&models.Setting{Key: key, Value: value})
		}
	}

	seedDirector(os.Getenv("DIRECTOR_STUDENT_ID"))
}

// seedDirector creates the bootstrap director account. The password comes
// from DIRECTOR_PASSWORD or is generated and printed once.
func seedDirector(studentID string) {
	db := GetDB()

	if studentID == "" {
		studentID = "director"
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleDirector).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("DIRECTOR_PASSWORD")
	generated := false
	if password == "" {
		password = uuid.New().String()[:12]
		generated = true
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing director password: %v", err)
		return
	}

	director := models.User{
		StudentID:   studentID,
		Password:    string(hashed),
		DisplayName: "Director",
		Role:        models.RoleDirector,
		CreatedAt:   time.Now(),
	}

	if err := db.Create(&director).Error; err != nil {
		log.Printf("Error creating director account: %v", err)
		return
	}

	if generated {
		log.Printf("✅ Created director account %q with password %q (change it after first login)", studentID, password)
	} else {
		log.Printf("✅ Created director account %q", studentID)
	}
}
