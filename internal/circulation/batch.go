package circulation

import (
	"errors"
	"fmt"

	"librarium/internal/entities"
)

// BatchResult reports the outcome of a bulk admin action. Partial success
// is the normal case: records that fail a guard are skipped with a
// warning, never aborting the rest of the batch.
type BatchResult struct {
	Affected int
	Warnings []string
}

// ApproveBatch approves each REQUESTED record in the selection. A record
// whose book is no longer available is skipped with a warning naming the
// book and the member; records not in REQUESTED are skipped silently,
// matching a selection filtered by status.
func (s *Service) ApproveBatch(ids []uint) (BatchResult, error) {
	var result BatchResult
	for _, id := range ids {
		err := s.Approve(id)
		switch {
		case err == nil:
			result.Affected++
		case errors.Is(err, ErrBookUnavailable):
			result.Warnings = append(result.Warnings, s.describeSkip(id))
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrRecordNotFound):
			// Skip records the selection should not have included.
		default:
			return result, err
		}
	}
	return result, nil
}

// RejectBatch rejects each REQUESTED record in the selection.
func (s *Service) RejectBatch(ids []uint) (BatchResult, error) {
	return s.batch(ids, s.Reject)
}

// ReturnBatch marks each ISSUED or OVERDUE record in the selection as
// returned.
func (s *Service) ReturnBatch(ids []uint) (BatchResult, error) {
	return s.batch(ids, s.Return)
}

func (s *Service) batch(ids []uint, op func(uint) error) (BatchResult, error) {
	var result BatchResult
	for _, id := range ids {
		err := op(id)
		switch {
		case err == nil:
			result.Affected++
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrRecordNotFound):
			// Skip records the selection should not have included.
		default:
			return result, err
		}
	}
	return result, nil
}

// describeSkip builds the warning for a request that could not be
// approved because its book went unavailable.
func (s *Service) describeSkip(id uint) string {
	var record entities.IssuedBook
	err := s.db.Preload("Book").Preload("Member").Preload("Member.User").First(&record, id).Error
	if err != nil {
		return fmt.Sprintf("request #%d could not be approved: book is no longer available", id)
	}
	return fmt.Sprintf("book %q is no longer available to issue for the request by %s",
		record.Book.Title, record.Member.User.Username)
}
