package entities

import (
	"fmt"
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Books     []Book    `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	Books     []Book    `gorm:"many2many:book_authors;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the author's display name.
func (a Author) FullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

type Publisher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	Books     []Book    `gorm:"foreignKey:PublisherID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (p Publisher) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;size:200" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	PublisherID uint      `gorm:"index" json:"publisher_id"`
	Publisher   Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"publisher,omitempty"`
	Authors     []Author  `gorm:"many2many:book_authors;" json:"authors,omitempty"`
	CoverURL    string    `gorm:"size:2048" json:"cover_url,omitempty"`

	// IsAvailable is derived state: true iff no issued_books row for this
	// book has status ISSUED. Maintained by the circulation service.
	IsAvailable bool `gorm:"default:true;index" json:"is_available"`

	Edition   *Edition  `gorm:"foreignKey:BookID" json:"edition,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Edition holds descriptive print-run details for a book. It carries no
// circulation state.
type Edition struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookID        uint      `gorm:"uniqueIndex" json:"book_id"`
	Book          *Book     `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	EditionNumber uint      `json:"edition_number"`
	ReleaseDate   time.Time `json:"release_date"`
	Pages         uint      `json:"pages"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (Author) TableName() string {
	return "authors"
}

func (Publisher) TableName() string {
	return "publishers"
}

func (Book) TableName() string {
	return "books"
}

func (Edition) TableName() string {
	return "editions"
}
