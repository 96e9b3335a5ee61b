// Package members provides database operations for member profiles.
package members

import (
	"gorm.io/gorm"

	"librarium/internal/entities"
)

// Repository handles member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// MemberByUserID retrieves the member profile attached to a user identity.
// Returns gorm.ErrRecordNotFound when the user has no profile.
func (r *Repository) MemberByUserID(userID uint) (*entities.Member, error) {
	var member entities.Member
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// MemberByID retrieves a member by primary key.
func (r *Repository) MemberByID(id uint) (*entities.Member, error) {
	var member entities.Member
	err := r.db.Preload("User").First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Filter narrows the admin member listing.
type Filter struct {
	Query      string // substring on username or email
	MemberType entities.MemberType
}

// List returns members for the admin list view.
func (r *Repository) List(filter Filter) ([]entities.Member, error) {
	q := r.db.Preload("User").
		Joins("JOIN users ON users.id = members.user_id").
		Order("users.username ASC")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where("LOWER(users.username) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.MemberType != "" {
		q = q.Where("members.member_type = ?", filter.MemberType)
	}

	var members []entities.Member
	err := q.Find(&members).Error
	return members, err
}
