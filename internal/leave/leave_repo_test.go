package leave_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shkhalid/maxerp/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The overlap rule lives in this query: rejected rows are filtered out and
// two closed day intervals overlap unless one ends before the other starts.
const overlapQuery = `SELECT count(*) FROM "leave_requests" WHERE user_id = $1 AND status <> $2 AND (NOT (end_date < $3 OR start_date > $4))`

func setupLeaveRepoTest(t *testing.T) (leave.Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return leave.NewRepository(gormDB), mock, func() { db.Close() }
}

func TestLeaveRepository_HasOverlappingPeriod(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("rejected requests are excluded by the status filter", func(t *testing.T) {
		repo, mock, cleanup := setupLeaveRepoTest(t)
		defer cleanup()

		// A rejected request over the identical range must not match: the
		// query only counts rows with status <> 'rejected'.
		start := day(2027, 3, 3)
		end := day(2027, 3, 5)
		mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
			WithArgs(userID, leave.StatusRejected, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		overlap, err := repo.HasOverlappingPeriod(ctx, userID, start, end)

		assert.NoError(t, err)
		assert.False(t, overlap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single shared day reports an overlap", func(t *testing.T) {
		repo, mock, cleanup := setupLeaveRepoTest(t)
		defer cleanup()

		// Both interval ends are inclusive, so a candidate range whose
		// start equals an existing end still matches the predicate.
		start := day(2027, 3, 5)
		end := day(2027, 3, 5)
		mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
			WithArgs(userID, leave.StatusRejected, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		overlap, err := repo.HasOverlappingPeriod(ctx, userID, start, end)

		assert.NoError(t, err)
		assert.True(t, overlap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("adjacent range passes its own bounds, not widened ones", func(t *testing.T) {
		repo, mock, cleanup := setupLeaveRepoTest(t)
		defer cleanup()

		// A range starting the day after an existing one ends only fails
		// the end_date < start comparison; the bounds must reach the query
		// unmodified for that to hold.
		start := day(2027, 3, 6)
		end := day(2027, 3, 8)
		mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
			WithArgs(userID, leave.StatusRejected, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		overlap, err := repo.HasOverlappingPeriod(ctx, userID, start, end)

		assert.NoError(t, err)
		assert.False(t, overlap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative query error is surfaced", func(t *testing.T) {
		repo, mock, cleanup := setupLeaveRepoTest(t)
		defer cleanup()

		start := day(2027, 3, 3)
		end := day(2027, 3, 5)
		mock.ExpectQuery(regexp.QuoteMeta(overlapQuery)).
			WithArgs(userID, leave.StatusRejected, start, end).
			WillReturnError(assert.AnError)

		_, err := repo.HasOverlappingPeriod(ctx, userID, start, end)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
