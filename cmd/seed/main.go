// Command seed creates a database pre-loaded with a sample catalog, an
// administrator account and a couple of member accounts.
// Usage: go run cmd/seed/main.go [-db path/to/librarium.db]
package main

import (
	"flag"
	"log"
	"time"

	"librarium/internal/auth"
	"librarium/internal/config"
	"librarium/internal/database"
	"librarium/internal/entities"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Seeding database at %s...", *dbPath)

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	categories := createCategories(db)
	publishers := createPublishers(db)
	authors := createAuthors(db)
	createBooks(db, categories, publishers, authors)
	createUsers(db)

	log.Printf("Done. Log in as admin/admin12345 (change the password before exposing this anywhere).")
}

func createCategories(db *database.Database) map[string]*entities.Category {
	names := []string{"Science Fiction", "History", "Mathematics", "Literature", "Philosophy"}

	categories := make(map[string]*entities.Category, len(names))
	for _, name := range names {
		category := &entities.Category{Name: name}
		if err := db.DB.Where(entities.Category{Name: name}).FirstOrCreate(category).Error; err != nil {
			log.Fatalf("Failed to create category %s: %v", name, err)
		}
		categories[name] = category
	}
	return categories
}

func createPublishers(db *database.Database) map[string]*entities.Publisher {
	seed := []entities.Publisher{
		{FirstName: "Victor", LastName: "Gollancz"},
		{FirstName: "Allen", LastName: "Lane"},
		{FirstName: "Kurt", LastName: "Wolff"},
	}

	publishers := make(map[string]*entities.Publisher, len(seed))
	for i := range seed {
		publisher := &seed[i]
		if err := db.DB.Where(*publisher).FirstOrCreate(publisher).Error; err != nil {
			log.Fatalf("Failed to create publisher %s: %v", publisher.FullName(), err)
		}
		publishers[publisher.LastName] = publisher
	}
	return publishers
}

func createAuthors(db *database.Database) map[string]*entities.Author {
	seed := []entities.Author{
		{FirstName: "Frank", LastName: "Herbert"},
		{FirstName: "Ursula", LastName: "Le Guin"},
		{FirstName: "Edward", LastName: "Gibbon"},
		{FirstName: "Leonhard", LastName: "Euler"},
		{FirstName: "Franz", LastName: "Kafka"},
	}

	authors := make(map[string]*entities.Author, len(seed))
	for i := range seed {
		author := &seed[i]
		if err := db.DB.Where(*author).FirstOrCreate(author).Error; err != nil {
			log.Fatalf("Failed to create author %s: %v", author.FullName(), err)
		}
		authors[author.LastName] = author
	}
	return authors
}

type bookSeed struct {
	title       string
	description string
	category    string
	publisher   string
	authors     []string
	edition     *entities.Edition
}

func createBooks(
	db *database.Database,
	categories map[string]*entities.Category,
	publishers map[string]*entities.Publisher,
	authors map[string]*entities.Author,
) {
	seed := []bookSeed{
		{
			title:       "Dune",
			description: "Politics, religion and ecology on a desert planet.",
			category:    "Science Fiction",
			publisher:   "Gollancz",
			authors:     []string{"Herbert"},
			edition: &entities.Edition{
				EditionNumber: 1,
				ReleaseDate:   time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
				Pages:         412,
			},
		},
		{
			title:       "The Dispossessed",
			description: "An ambiguous utopia across two worlds.",
			category:    "Science Fiction",
			publisher:   "Gollancz",
			authors:     []string{"Le Guin"},
		},
		{
			title:       "The History of the Decline and Fall of the Roman Empire",
			description: "Thirteen centuries of Roman history.",
			category:    "History",
			publisher:   "Lane",
			authors:     []string{"Gibbon"},
		},
		{
			title:       "Introductio in analysin infinitorum",
			description: "Foundations of mathematical analysis.",
			category:    "Mathematics",
			publisher:   "Lane",
			authors:     []string{"Euler"},
		},
		{
			title:       "The Trial",
			description: "Josef K. is arrested without being told his crime.",
			category:    "Literature",
			publisher:   "Wolff",
			authors:     []string{"Kafka"},
			edition: &entities.Edition{
				EditionNumber: 1,
				ReleaseDate:   time.Date(1925, 4, 26, 0, 0, 0, 0, time.UTC),
				Pages:         255,
			},
		},
	}

	for _, s := range seed {
		book := entities.Book{
			Title:       s.title,
			Description: s.description,
			PublisherID: publishers[s.publisher].ID,
			IsAvailable: true,
		}
		if category, ok := categories[s.category]; ok {
			book.CategoryID = &category.ID
		}
		for _, lastName := range s.authors {
			book.Authors = append(book.Authors, *authors[lastName])
		}

		var existing entities.Book
		if err := db.DB.Where("title = ?", s.title).First(&existing).Error; err == nil {
			log.Printf("Skipping existing book: %s", s.title)
			continue
		}
		if err := db.DB.Create(&book).Error; err != nil {
			log.Fatalf("Failed to create book %s: %v", s.title, err)
		}
		if s.edition != nil {
			s.edition.BookID = book.ID
			if err := db.DB.Create(s.edition).Error; err != nil {
				log.Fatalf("Failed to create edition for %s: %v", s.title, err)
			}
		}
		log.Printf("Saved: %s", s.title)
	}
}

type userSeed struct {
	username   string
	email      string
	firstName  string
	lastName   string
	password   string
	isAdmin    bool
	memberType entities.MemberType
}

func createUsers(db *database.Database) {
	seed := []userSeed{
		{
			username:  "admin",
			email:     "admin@librarium.local",
			firstName: "Site",
			lastName:  "Admin",
			password:  "admin12345",
			isAdmin:   true,
		},
		{
			username:   "alice",
			email:      "alice@librarium.local",
			firstName:  "Alice",
			lastName:   "Reader",
			password:   "reading4fun",
			memberType: entities.MemberTypeStudent,
		},
		{
			username:   "bob",
			email:      "bob@librarium.local",
			firstName:  "Bob",
			lastName:   "Porter",
			password:   "grading4ever",
			memberType: entities.MemberTypeEmployee,
		},
	}

	for _, s := range seed {
		var existing entities.User
		if err := db.DB.Where("username = ?", s.username).First(&existing).Error; err == nil {
			log.Printf("Skipping existing user: %s", s.username)
			continue
		}

		hash, err := auth.HashPassword(s.password, 0)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", s.username, err)
		}

		user := entities.User{
			Username:     s.username,
			Email:        s.email,
			FirstName:    s.firstName,
			LastName:     s.lastName,
			PasswordHash: hash,
			IsAdmin:      s.isAdmin,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", s.username, err)
		}

		if s.memberType != "" {
			member := entities.Member{UserID: user.ID, MemberType: s.memberType}
			if err := db.DB.Create(&member).Error; err != nil {
				log.Fatalf("Failed to create member for %s: %v", s.username, err)
			}
		}
		log.Printf("Created user: %s", s.username)
	}
}
