// Package issues provides read access to issued-book records. Status
// transitions are the circulation service's job; this package only
// queries.
package issues

import (
	"gorm.io/gorm"

	"librarium/internal/entities"
)

// Repository handles issued-book queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new issues repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ByID retrieves an issued-book record with its relations.
func (r *Repository) ByID(id uint) (*entities.IssuedBook, error) {
	var record entities.IssuedBook
	err := r.db.
		Preload("Book").Preload("Edition").Preload("Member").Preload("Member.User").
		First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByMember returns a member's full request history, newest first.
func (r *Repository) ListByMember(memberID uint) ([]entities.IssuedBook, error) {
	var records []entities.IssuedBook
	err := r.db.
		Preload("Book").Preload("Edition").
		Where("member_id = ?", memberID).
		Order("issue_date DESC").
		Find(&records).Error
	return records, err
}

// HasActiveForBook reports whether the member already holds a REQUESTED or
// ISSUED record for the book.
func (r *Repository) HasActiveForBook(memberID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.IssuedBook{}).
		Where("member_id = ? AND book_id = ? AND status IN ?",
			memberID, bookID, []entities.IssueStatus{entities.StatusRequested, entities.StatusIssued}).
		Count(&count).Error
	return count > 0, err
}

// CountIssuedForBook returns how many records for the book are currently
// ISSUED. Zero means the book should be available.
func (r *Repository) CountIssuedForBook(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.IssuedBook{}).
		Where("book_id = ? AND status = ?", bookID, entities.StatusIssued).
		Count(&count).Error
	return count, err
}

// Filter narrows the admin issued-book listing.
type Filter struct {
	Query      string // substring on book title or member username
	Status     entities.IssueStatus
	MemberType entities.MemberType
}

// List returns issued-book records for the admin list view, newest first.
func (r *Repository) List(filter Filter) ([]entities.IssuedBook, error) {
	q := r.db.
		Preload("Book").Preload("Edition").Preload("Member").Preload("Member.User").
		Joins("JOIN books ON books.id = issued_books.book_id").
		Joins("JOIN members ON members.id = issued_books.member_id").
		Joins("JOIN users ON users.id = members.user_id").
		Order("issued_books.issue_date DESC")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where("LOWER(books.title) LIKE LOWER(?) OR LOWER(users.username) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.Status != "" {
		q = q.Where("issued_books.status = ?", filter.Status)
	}
	if filter.MemberType != "" {
		q = q.Where("members.member_type = ?", filter.MemberType)
	}

	var records []entities.IssuedBook
	err := q.Find(&records).Error
	return records, err
}

// CountByStatus returns how many records hold each status, for the admin
// dashboard.
func (r *Repository) CountByStatus() (map[entities.IssueStatus]int64, error) {
	type row struct {
		Status entities.IssueStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&entities.IssuedBook{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[entities.IssueStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
