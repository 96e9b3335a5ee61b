package circulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/entities"
)

func TestTransition(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("REQUESTED to ISSUED marks the book unavailable", func(t *testing.T) {
		record := &entities.IssuedBook{
			Status:     entities.StatusRequested,
			ReturnDate: now.AddDate(0, 0, 14),
		}

		effect, err := transition(record, entities.StatusIssued, now, 14)
		require.NoError(t, err)
		assert.Equal(t, effectMarkUnavailable, effect)
		assert.Equal(t, entities.StatusIssued, record.Status)
	})

	t.Run("ISSUED defaults a missing due date", func(t *testing.T) {
		record := &entities.IssuedBook{Status: entities.StatusRequested}

		_, err := transition(record, entities.StatusIssued, now, 14)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 14), record.ReturnDate)
	})

	t.Run("ISSUED keeps an existing due date", func(t *testing.T) {
		due := now.AddDate(0, 0, 7)
		record := &entities.IssuedBook{Status: entities.StatusRequested, ReturnDate: due}

		_, err := transition(record, entities.StatusIssued, now, 14)
		require.NoError(t, err)
		assert.Equal(t, due, record.ReturnDate)
	})

	t.Run("RETURNED stamps the actual return date and recomputes", func(t *testing.T) {
		record := &entities.IssuedBook{Status: entities.StatusIssued}

		effect, err := transition(record, entities.StatusReturned, now, 14)
		require.NoError(t, err)
		assert.Equal(t, effectRecompute, effect)
		require.NotNil(t, record.ActualReturnDate)
		assert.Equal(t, now, *record.ActualReturnDate)
	})

	t.Run("REJECTED has no availability side effect", func(t *testing.T) {
		record := &entities.IssuedBook{Status: entities.StatusRequested}

		effect, err := transition(record, entities.StatusRejected, now, 14)
		require.NoError(t, err)
		assert.Equal(t, effectNone, effect)
	})

	t.Run("terminal states never revert", func(t *testing.T) {
		for _, from := range []entities.IssueStatus{entities.StatusReturned, entities.StatusRejected} {
			for _, to := range entities.IssueStatuses {
				record := &entities.IssuedBook{Status: from}
				_, err := transition(record, to, now, 14)
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s must be rejected", from, to)
				assert.Equal(t, from, record.Status)
			}
		}
	})

	t.Run("lifecycle graph", func(t *testing.T) {
		assert.True(t, entities.CanTransition(entities.StatusRequested, entities.StatusIssued))
		assert.True(t, entities.CanTransition(entities.StatusRequested, entities.StatusRejected))
		assert.True(t, entities.CanTransition(entities.StatusIssued, entities.StatusReturned))
		assert.True(t, entities.CanTransition(entities.StatusIssued, entities.StatusOverdue))
		assert.True(t, entities.CanTransition(entities.StatusOverdue, entities.StatusReturned))

		assert.False(t, entities.CanTransition(entities.StatusRequested, entities.StatusOverdue))
		assert.False(t, entities.CanTransition(entities.StatusIssued, entities.StatusRequested))
		assert.False(t, entities.CanTransition(entities.StatusOverdue, entities.StatusIssued))
	})
}
