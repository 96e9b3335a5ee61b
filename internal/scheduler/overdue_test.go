package scheduler

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/circulation"
	"librarium/internal/config"
	"librarium/internal/database"
	"librarium/internal/entities"
)

func setupSweepTest(t *testing.T) (*database.Database, *circulation.Service, func()) {
	t.Helper()

	dbPath := "./test_sweep_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, circulation.NewService(db.DB, 14), cleanup
}

func createIssuedRecord(t *testing.T, db *database.Database, circ *circulation.Service, dueOffset time.Duration) *entities.IssuedBook {
	t.Helper()

	user := entities.User{Username: "alice_" + t.Name(), Email: t.Name() + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.DB.Create(&user).Error)
	member := entities.Member{UserID: user.ID, MemberType: entities.MemberTypeStudent}
	require.NoError(t, db.DB.Create(&member).Error)

	publisher := entities.Publisher{FirstName: "Test", LastName: "Press"}
	require.NoError(t, db.DB.Create(&publisher).Error)
	book := entities.Book{Title: "Dune", PublisherID: publisher.ID, IsAvailable: true}
	require.NoError(t, db.DB.Create(&book).Error)

	record, err := circ.Request(member.ID, book.ID)
	require.NoError(t, err)
	require.NoError(t, circ.Approve(record.ID))
	require.NoError(t, db.DB.Model(record).
		Update("return_date", time.Now().Add(dueOffset)).Error)

	require.NoError(t, db.DB.First(record, record.ID).Error)
	return record
}

func TestOverdueSweeper_Disabled(t *testing.T) {
	_, circ, cleanup := setupSweepTest(t)
	defer cleanup()

	sweeper := NewOverdueSweeper(circ, config.OverdueSweep{Enabled: false})
	require.NoError(t, sweeper.Start(context.Background()))
	assert.False(t, sweeper.IsRunning())
}

func TestOverdueSweeper_InvalidSchedule(t *testing.T) {
	_, circ, cleanup := setupSweepTest(t)
	defer cleanup()

	sweeper := NewOverdueSweeper(circ, config.OverdueSweep{
		Enabled:  true,
		Schedule: "not a schedule",
	})
	err := sweeper.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid overdue sweep schedule")
}

func TestOverdueSweeper_StartStop(t *testing.T) {
	_, circ, cleanup := setupSweepTest(t)
	defer cleanup()

	sweeper := NewOverdueSweeper(circ, config.OverdueSweep{
		Enabled:  true,
		Schedule: "0 1 * * *",
	})
	require.NoError(t, sweeper.Start(context.Background()))
	assert.True(t, sweeper.IsRunning())

	// Starting twice is a no-op
	require.NoError(t, sweeper.Start(context.Background()))

	sweeper.Stop()
	assert.False(t, sweeper.IsRunning())

	// Stopping twice is a no-op
	sweeper.Stop()
}

func TestOverdueSweeper_RunNow(t *testing.T) {
	db, circ, cleanup := setupSweepTest(t)
	defer cleanup()

	record := createIssuedRecord(t, db, circ, -24*time.Hour)

	sweeper := NewOverdueSweeper(circ, config.OverdueSweep{Enabled: false})
	affected, err := sweeper.RunNow()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	require.NoError(t, db.DB.First(record, record.ID).Error)
	assert.Equal(t, entities.StatusOverdue, record.Status)

	// Availability stays false: the book is still out
	var book entities.Book
	require.NoError(t, db.DB.First(&book, record.BookID).Error)
	assert.False(t, book.IsAvailable)
}

func TestOverdueSweeper_RunNowSkipsFutureDueDates(t *testing.T) {
	db, circ, cleanup := setupSweepTest(t)
	defer cleanup()

	record := createIssuedRecord(t, db, circ, 24*time.Hour)

	sweeper := NewOverdueSweeper(circ, config.OverdueSweep{Enabled: false})
	affected, err := sweeper.RunNow()
	require.NoError(t, err)
	assert.Zero(t, affected)

	require.NoError(t, db.DB.First(record, record.ID).Error)
	assert.Equal(t, entities.StatusIssued, record.Status)
}
