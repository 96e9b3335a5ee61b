// Package catalog provides read access to the browsable catalog:
// categories, authors, publishers, books and editions.
package catalog

import (
	"gorm.io/gorm"

	"librarium/internal/entities"
)

// Repository handles catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AllCategories returns every category ordered by name.
func (r *Repository) AllCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// CategoryByID retrieves a single category.
func (r *Repository) CategoryByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// SearchCategories returns categories whose name matches the query or that
// contain one of the given books.
func (r *Repository) SearchCategories(query string, bookIDs []uint) ([]entities.Category, error) {
	pattern := "%" + query + "%"
	q := r.db.Distinct().Order("name ASC")
	if len(bookIDs) > 0 {
		q = q.Where("LOWER(name) LIKE LOWER(?) OR id IN (SELECT category_id FROM books WHERE id IN ? AND category_id IS NOT NULL)", pattern, bookIDs)
	} else {
		q = q.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}
	var categories []entities.Category
	err := q.Find(&categories).Error
	return categories, err
}

// SearchAvailableBooks finds available books matched case-insensitively by
// title, author first/last name or category name substring.
func (r *Repository) SearchAvailableBooks(query string) ([]entities.Book, error) {
	pattern := "%" + query + "%"
	var books []entities.Book
	err := r.db.
		Preload("Authors").Preload("Category").Preload("Publisher").
		Distinct("books.*").
		Joins("LEFT JOIN book_authors ON book_authors.book_id = books.id").
		Joins("LEFT JOIN authors ON authors.id = book_authors.author_id").
		Joins("LEFT JOIN categories ON categories.id = books.category_id").
		Where("books.is_available = ?", true).
		Where(
			"LOWER(books.title) LIKE LOWER(?) OR LOWER(authors.first_name) LIKE LOWER(?) OR LOWER(authors.last_name) LIKE LOWER(?) OR LOWER(categories.name) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		).
		Find(&books).Error
	return books, err
}

// AvailableBooksByCategory lists available books within a category.
func (r *Repository) AvailableBooksByCategory(categoryID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Preload("Authors").Preload("Category").Preload("Publisher").
		Where("category_id = ? AND is_available = ?", categoryID, true).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// RecentAvailableBooks returns the newest available books, for the
// anonymous landing page.
func (r *Repository) RecentAvailableBooks(limit int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Preload("Authors").Preload("Category").Preload("Publisher").
		Where("is_available = ?", true).
		Order("id DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// BookByID retrieves a book with its edition and relations.
func (r *Repository) BookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.
		Preload("Authors").Preload("Category").Preload("Publisher").Preload("Edition").
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// BookFilter narrows the admin book listing.
type BookFilter struct {
	Query      string // substring on title, author names or category name
	CategoryID uint
	Available  *bool
}

// ListBooks returns books for the admin list view, newest first.
func (r *Repository) ListBooks(filter BookFilter) ([]entities.Book, error) {
	q := r.db.
		Preload("Authors").Preload("Category").Preload("Publisher").
		Distinct("books.*").
		Joins("LEFT JOIN book_authors ON book_authors.book_id = books.id").
		Joins("LEFT JOIN authors ON authors.id = book_authors.author_id").
		Joins("LEFT JOIN categories ON categories.id = books.category_id").
		Order("books.id DESC")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where(
			"LOWER(books.title) LIKE LOWER(?) OR LOWER(authors.first_name) LIKE LOWER(?) OR LOWER(authors.last_name) LIKE LOWER(?) OR LOWER(categories.name) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.CategoryID != 0 {
		q = q.Where("books.category_id = ?", filter.CategoryID)
	}
	if filter.Available != nil {
		q = q.Where("books.is_available = ?", *filter.Available)
	}

	var books []entities.Book
	err := q.Find(&books).Error
	return books, err
}

// SearchAuthors lists authors matching the query by first or last name.
// An empty query returns everyone.
func (r *Repository) SearchAuthors(query string) ([]entities.Author, error) {
	q := r.db.Order("last_name ASC, first_name ASC")
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)", pattern, pattern)
	}
	var authors []entities.Author
	err := q.Find(&authors).Error
	return authors, err
}

// SearchPublishers lists publishers matching the query by first or last name.
func (r *Repository) SearchPublishers(query string) ([]entities.Publisher, error) {
	q := r.db.Order("last_name ASC, first_name ASC")
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)", pattern, pattern)
	}
	var publishers []entities.Publisher
	err := q.Find(&publishers).Error
	return publishers, err
}

// SearchEditions lists editions matching the query by book title.
func (r *Repository) SearchEditions(query string) ([]entities.Edition, error) {
	q := r.db.Preload("Book").
		Joins("JOIN books ON books.id = editions.book_id").
		Order("books.title ASC")
	if query != "" {
		q = q.Where("LOWER(books.title) LIKE LOWER(?)", "%"+query+"%")
	}
	var editions []entities.Edition
	err := q.Find(&editions).Error
	return editions, err
}
