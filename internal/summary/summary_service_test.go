package summary_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shkhalid/maxerp/internal/leave"
	"github.com/shkhalid/maxerp/internal/shared/apperror"
	"github.com/shkhalid/maxerp/internal/summary"
	"github.com/shkhalid/maxerp/internal/user"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	findIntersectingFn func(ctx context.Context, rangeStart, rangeEnd time.Time) ([]leave.LeaveRequest, error)
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error { return nil }

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) FindByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error { return nil }

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRepository) CountApprovedOnDay(ctx context.Context, day time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeLeaveRepository) FindIntersectingRange(ctx context.Context, rangeStart, rangeEnd time.Time) ([]leave.LeaveRequest, error) {
	if f.findIntersectingFn != nil {
		return f.findIntersectingFn(ctx, rangeStart, rangeEnd)
	}
	return nil, nil
}

type fakeUserRepository struct {
	findNamesByIDsFn func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	countAllFn       func(ctx context.Context) (int64, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if f.findNamesByIDsFn != nil {
		return f.findNamesByIDsFn(ctx, ids)
	}
	return map[uuid.UUID]string{}, nil
}

func (f *fakeUserRepository) CountAll(ctx context.Context) (int64, error) {
	if f.countAllFn != nil {
		return f.countAllFn(ctx)
	}
	return 0, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummaryService_Monthly(t *testing.T) {
	ctx := context.Background()

	aliceID := uuid.New()
	bobID := uuid.New()

	t.Run("success aggregates a month", func(t *testing.T) {
		leaves := &fakeLeaveRepository{}
		users := &fakeUserRepository{}
		svc := summary.NewService(leaves, users, nil)

		leaves.findIntersectingFn = func(ctx context.Context, rangeStart, rangeEnd time.Time) ([]leave.LeaveRequest, error) {
			assert.Equal(t, "2027-03-01", rangeStart.Format("2006-01-02"))
			assert.Equal(t, "2027-03-31", rangeEnd.Format("2006-01-02"))
			return []leave.LeaveRequest{
				{
					ID: uuid.New(), UserID: aliceID, LeaveType: leave.TypeVacation,
					StartDate: day(2027, 3, 1), EndDate: day(2027, 3, 3),
					DaysRequested: 3, Status: leave.StatusApproved,
				},
				{
					ID: uuid.New(), UserID: bobID, LeaveType: leave.TypeVacation,
					StartDate: day(2027, 3, 10), EndDate: day(2027, 3, 11),
					DaysRequested: 2, Status: leave.StatusPending,
				},
				{
					ID: uuid.New(), UserID: aliceID, LeaveType: leave.TypeSick,
					StartDate: day(2027, 3, 20), EndDate: day(2027, 3, 20),
					DaysRequested: 1, Status: leave.StatusRejected,
				},
			}, nil
		}
		users.findNamesByIDsFn = func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
			assert.Len(t, ids, 1)
			assert.Equal(t, aliceID, ids[0])
			return map[uuid.UUID]string{aliceID: "Alice Manager"}, nil
		}
		users.countAllFn = func(ctx context.Context) (int64, error) { return 10, nil }

		data, err := svc.Monthly(ctx, "2027-03")

		assert.NoError(t, err)
		assert.Equal(t, "2027-03", data.Month)
		assert.Equal(t, 3, data.TotalRequests)
		assert.Equal(t, 6, data.TotalDaysRequested)

		assert.Equal(t, 1, data.StatusSummary[leave.StatusApproved].Count)
		assert.Equal(t, 3, data.StatusSummary[leave.StatusApproved].TotalDays)
		assert.Equal(t, 1, data.StatusSummary[leave.StatusPending].Count)
		assert.Equal(t, 1, data.StatusSummary[leave.StatusRejected].Count)

		assert.Equal(t, 2, data.TypeSummary[leave.TypeVacation].Count)
		assert.Equal(t, 5, data.TypeSummary[leave.TypeVacation].TotalDays)
		assert.Equal(t, 1, data.TypeSummary[leave.TypeSick].Count)

		assert.Len(t, data.DailyBreakdown, 31)
		first := data.DailyBreakdown[0]
		assert.Equal(t, "2027-03-01", first.Date)
		assert.Equal(t, "Monday", first.DayName)
		assert.Equal(t, 1, first.OnLeaveCount)
		assert.Equal(t, []string{"Alice Manager"}, first.OnLeaveEmployees)

		// Pending and rejected requests never appear in the breakdown.
		assert.Equal(t, 0, data.DailyBreakdown[9].OnLeaveCount)
		assert.Equal(t, 0, data.DailyBreakdown[19].OnLeaveCount)
		assert.Equal(t, 0, data.DailyBreakdown[3].OnLeaveCount)

		assert.Equal(t, int64(10), data.TeamStats.TotalEmployees)
		assert.Equal(t, 2, data.TeamStats.EmployeesWithLeave)
		assert.Equal(t, leave.TypeVacation, data.TeamStats.MostCommonLeaveType)
		assert.Equal(t, 2.0, data.TeamStats.AverageDaysPerRequest)
	})

	t.Run("success empty month has zero average", func(t *testing.T) {
		leaves := &fakeLeaveRepository{}
		users := &fakeUserRepository{
			countAllFn: func(ctx context.Context) (int64, error) { return 4, nil },
		}
		svc := summary.NewService(leaves, users, nil)

		data, err := svc.Monthly(ctx, "2027-02")

		assert.NoError(t, err)
		assert.Equal(t, 0, data.TotalRequests)
		assert.Equal(t, 0, data.TotalDaysRequested)
		assert.Empty(t, data.StatusSummary)
		assert.Empty(t, data.TypeSummary)
		assert.Len(t, data.DailyBreakdown, 28)
		assert.Equal(t, int64(4), data.TeamStats.TotalEmployees)
		assert.Equal(t, 0, data.TeamStats.EmployeesWithLeave)
		assert.Empty(t, data.TeamStats.MostCommonLeaveType)
		assert.Equal(t, 0.0, data.TeamStats.AverageDaysPerRequest)
	})

	t.Run("success cache hit skips the database", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		leaves := &fakeLeaveRepository{
			findIntersectingFn: func(ctx context.Context, rangeStart, rangeEnd time.Time) ([]leave.LeaveRequest, error) {
				t.Fatal("repository must not be called on cache hit")
				return nil, nil
			},
		}
		svc := summary.NewService(leaves, &fakeUserRepository{}, rdb)

		cached := summary.MonthlySummaryData{Month: "2027-04", TotalRequests: 7}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		redisMock.ExpectGet("summary:monthly:2027-04").SetVal(string(payload))

		data, err := svc.Monthly(ctx, "2027-04")

		assert.NoError(t, err)
		assert.Equal(t, 7, data.TotalRequests)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success cache miss computes and stores", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		leaves := &fakeLeaveRepository{}
		users := &fakeUserRepository{
			countAllFn: func(ctx context.Context) (int64, error) { return 1, nil },
		}
		svc := summary.NewService(leaves, users, rdb)

		redisMock.ExpectGet("summary:monthly:2027-05").RedisNil()
		// The Set value is the computed payload; a mismatch only disables
		// the cache write, which the service tolerates.

		data, err := svc.Monthly(ctx, "2027-05")

		assert.NoError(t, err)
		assert.Equal(t, "2027-05", data.Month)
		assert.Len(t, data.DailyBreakdown, 31)
	})

	t.Run("negative invalid month format", func(t *testing.T) {
		svc := summary.NewService(&fakeLeaveRepository{}, &fakeUserRepository{}, nil)

		_, err := svc.Monthly(ctx, "03-2027")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("negative repository error", func(t *testing.T) {
		leaves := &fakeLeaveRepository{
			findIntersectingFn: func(ctx context.Context, rangeStart, rangeEnd time.Time) ([]leave.LeaveRequest, error) {
				return nil, errors.New("db error")
			},
		}
		svc := summary.NewService(leaves, &fakeUserRepository{}, nil)

		_, err := svc.Monthly(ctx, "2027-06")

		assert.Error(t, err)
	})

	t.Run("success defaults to current month", func(t *testing.T) {
		currentMonth := time.Now().Format("2006-01")
		leaves := &fakeLeaveRepository{
			findIntersectingFn: func(ctx context.Context, rangeStart, rangeEnd time.Time) ([]leave.LeaveRequest, error) {
				assert.Equal(t, currentMonth, rangeStart.Format("2006-01"))
				return nil, nil
			},
		}
		svc := summary.NewService(leaves, &fakeUserRepository{}, nil)

		data, err := svc.Monthly(ctx, "")

		assert.NoError(t, err)
		assert.Equal(t, currentMonth, data.Month)
	})
}
