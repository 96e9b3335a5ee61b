package circulation

import (
	"fmt"
	"time"

	"librarium/internal/entities"
)

// sideEffect names the availability work a status change requires. The
// caller applies it inside the same transaction as the status write.
type sideEffect int

const (
	// effectNone leaves book availability untouched.
	effectNone sideEffect = iota
	// effectMarkUnavailable flips the book unavailable (entering ISSUED).
	effectMarkUnavailable
	// effectRecompute re-derives availability from the remaining ISSUED
	// records (leaving ISSUED).
	effectRecompute
)

// transition applies a status change to the record in memory and reports
// the availability side effect. The effect is decided explicitly from the
// (from, to) pair rather than inferred from row diffs. loanDays fills in
// a missing due date when a record enters ISSUED.
func transition(record *entities.IssuedBook, to entities.IssueStatus, now time.Time, loanDays int) (sideEffect, error) {
	from := record.Status
	if !entities.CanTransition(from, to) {
		return effectNone, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	record.Status = to

	switch {
	case to == entities.StatusIssued:
		if record.ReturnDate.IsZero() {
			record.ReturnDate = now.AddDate(0, 0, loanDays)
		}
		return effectMarkUnavailable, nil
	case to == entities.StatusReturned:
		returnedAt := now
		record.ActualReturnDate = &returnedAt
		return effectRecompute, nil
	default:
		// REJECTED only leaves REQUESTED and OVERDUE only leaves ISSUED;
		// neither changes which books are out.
		return effectNone, nil
	}
}
