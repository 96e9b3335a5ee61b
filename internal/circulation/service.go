// Package circulation implements the book lifecycle: request, approve,
// reject, return, and the availability accounting derived from it.
//
// Every mutating operation runs inside a single database transaction so
// the guard check and the status write cannot interleave with a concurrent
// approval of the same book. Book.IsAvailable is recomputed from the set
// of ISSUED records before the transaction commits, which keeps the
// invariant "available iff nothing ISSUED" true at every commit point.
package circulation

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"librarium/internal/entities"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrRecordNotFound    = errors.New("issued book record not found")
	ErrBookUnavailable   = errors.New("book is not available")
	ErrDuplicateRequest  = errors.New("member already has an active request for this book")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service owns all IssuedBook mutations.
type Service struct {
	db       *gorm.DB
	loanDays int
}

// NewService creates a circulation service. loanDays is the default loan
// period applied to new requests.
func NewService(db *gorm.DB, loanDays int) *Service {
	return &Service{db: db, loanDays: loanDays}
}

// Request creates a REQUESTED record for the member and book. Guards:
// the book must be available and the member must not already hold a
// REQUESTED or ISSUED record for it.
func (s *Service) Request(memberID, bookID uint) (*entities.IssuedBook, error) {
	var record *entities.IssuedBook

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return fmt.Errorf("failed to load book: %w", err)
		}
		if !book.IsAvailable {
			return ErrBookUnavailable
		}

		var active int64
		err := tx.Model(&entities.IssuedBook{}).
			Where("member_id = ? AND book_id = ? AND status IN ?",
				memberID, bookID, []entities.IssueStatus{entities.StatusRequested, entities.StatusIssued}).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to check active requests: %w", err)
		}
		if active > 0 {
			return ErrDuplicateRequest
		}

		// Snapshot the edition if the book has one.
		var editionID *uint
		var edition entities.Edition
		if err := tx.Where("book_id = ?", bookID).First(&edition).Error; err == nil {
			editionID = &edition.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load edition: %w", err)
		}

		now := time.Now()
		record = &entities.IssuedBook{
			MemberID:   memberID,
			BookID:     bookID,
			EditionID:  editionID,
			IssueDate:  now,
			ReturnDate: now.AddDate(0, 0, s.loanDays),
			Status:     entities.StatusRequested,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Approve moves a REQUESTED record to ISSUED. Availability is re-checked
// inside the transaction because it may have changed since the request
// was made; a book that is no longer available leaves the record
// untouched.
func (s *Service) Approve(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.lockRecord(tx, id)
		if err != nil {
			return err
		}
		if record.Status != entities.StatusRequested {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, record.Status, entities.StatusIssued)
		}

		var book entities.Book
		if err := tx.First(&book, record.BookID).Error; err != nil {
			return fmt.Errorf("failed to load book: %w", err)
		}
		if !book.IsAvailable {
			return ErrBookUnavailable
		}

		return s.apply(tx, record, entities.StatusIssued)
	})
}

// Reject moves a REQUESTED record to REJECTED. It never changes book
// availability.
func (s *Service) Reject(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.lockRecord(tx, id)
		if err != nil {
			return err
		}
		return s.apply(tx, record, entities.StatusRejected)
	})
}

// Return moves an ISSUED or OVERDUE record to RETURNED, stamps the actual
// return date and re-derives the book's availability.
func (s *Service) Return(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.lockRecord(tx, id)
		if err != nil {
			return err
		}
		return s.apply(tx, record, entities.StatusReturned)
	})
}

// MarkOverdue flips ISSUED records whose due date has passed to OVERDUE
// and returns how many were affected. The books stay checked out, so
// availability is untouched.
func (s *Service) MarkOverdue(asOf time.Time) (int64, error) {
	result := s.db.Model(&entities.IssuedBook{}).
		Where("status = ? AND return_date < ?", entities.StatusIssued, asOf).
		Update("status", entities.StatusOverdue)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark overdue records: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// lockRecord loads an issued-book record for update within tx.
func (s *Service) lockRecord(tx *gorm.DB, id uint) (*entities.IssuedBook, error) {
	var record entities.IssuedBook
	if err := tx.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return &record, nil
}

// apply performs the transition, persists the record and executes the
// availability side effect, all within tx.
func (s *Service) apply(tx *gorm.DB, record *entities.IssuedBook, to entities.IssueStatus) error {
	effect, err := transition(record, to, time.Now(), s.loanDays)
	if err != nil {
		return err
	}

	if err := tx.Save(record).Error; err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	switch effect {
	case effectMarkUnavailable:
		err = tx.Model(&entities.Book{}).Where("id = ?", record.BookID).
			Update("is_available", false).Error
	case effectRecompute:
		err = s.recomputeAvailability(tx, record.BookID)
	}
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	return nil
}

// recomputeAvailability persists the derived flag: a book is available
// iff no ISSUED record for it exists.
func (s *Service) recomputeAvailability(tx *gorm.DB, bookID uint) error {
	var issued int64
	err := tx.Model(&entities.IssuedBook{}).
		Where("book_id = ? AND status = ?", bookID, entities.StatusIssued).
		Count(&issued).Error
	if err != nil {
		return err
	}
	return tx.Model(&entities.Book{}).Where("id = ?", bookID).
		Update("is_available", issued == 0).Error
}
