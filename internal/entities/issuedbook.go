package entities

import (
	"time"
)

type IssueStatus string

const (
	StatusRequested IssueStatus = "REQUESTED"
	StatusIssued    IssueStatus = "ISSUED"
	StatusReturned  IssueStatus = "RETURNED"
	StatusOverdue   IssueStatus = "OVERDUE"
	StatusRejected  IssueStatus = "REJECTED"
)

// IssueStatuses lists all statuses in lifecycle order, for filter dropdowns.
var IssueStatuses = []IssueStatus{
	StatusRequested,
	StatusIssued,
	StatusOverdue,
	StatusReturned,
	StatusRejected,
}

// allowedTransitions is the lifecycle graph. RETURNED and REJECTED are
// terminal; OVERDUE books can still be handed back.
var allowedTransitions = map[IssueStatus][]IssueStatus{
	StatusRequested: {StatusIssued, StatusRejected},
	StatusIssued:    {StatusReturned, StatusOverdue},
	StatusOverdue:   {StatusReturned},
}

// Valid reports whether the value is one of the known statuses.
func (s IssueStatus) Valid() bool {
	for _, known := range IssueStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another.
func CanTransition(from, to IssueStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s IssueStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Active reports whether the record still counts against the member's
// one-request-per-book limit.
func (s IssueStatus) Active() bool {
	return s == StatusRequested || s == StatusIssued
}

// IssuedBook represents one request/issue/return cycle for a book by a
// member. It is the only entity the circulation service mutates directly;
// Book.IsAvailable is derived from the set of ISSUED records.
type IssuedBook struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MemberID uint   `gorm:"index" json:"member_id"`
	Member   Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	BookID   uint   `gorm:"index" json:"book_id"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`

	// Edition is a snapshot of the edition at request time, if the book
	// had one. Deleting the edition clears the reference.
	EditionID *uint    `gorm:"index" json:"edition_id,omitempty"`
	Edition   *Edition `gorm:"foreignKey:EditionID;constraint:OnDelete:SET NULL" json:"edition,omitempty"`

	IssueDate        time.Time   `gorm:"index" json:"issue_date"`
	ReturnDate       time.Time   `json:"return_date"` // due date
	ActualReturnDate *time.Time  `json:"actual_return_date,omitempty"`
	Status           IssueStatus `gorm:"size:20;default:'REQUESTED';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IssuedBook) TableName() string {
	return "issued_books"
}
