package summary

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shkhalid/maxerp/internal/leave"
	summaryerrors "github.com/shkhalid/maxerp/internal/summary/errors"
	"github.com/shkhalid/maxerp/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	monthLayout    = "2006-01"
	dateLayout     = "2006-01-02"
	cacheKeyPrefix = "summary:monthly:"
	cacheTTL       = 5 * time.Minute
)

type Service interface {
	// Monthly aggregates every request intersecting the given YYYY-MM
	// month; empty month means the current one.
	Monthly(ctx context.Context, month string) (MonthlySummaryData, error)
}

type service struct {
	leaves leave.Repository
	users  user.Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(leaves leave.Repository, users user.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("summary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.service")
	}
	return &service{
		leaves: leaves,
		users:  users,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Monthly(ctx context.Context, month string) (MonthlySummaryData, error) {
	if month == "" {
		month = s.now().Format(monthLayout)
	}
	monthStart, err := time.Parse(monthLayout, month)
	if err != nil {
		return MonthlySummaryData{}, summaryerrors.ErrInvalidMonth
	}

	cacheKey := cacheKeyPrefix + month
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var data MonthlySummaryData
			if json.Unmarshal([]byte(cached), &data) == nil {
				return data, nil
			}
		}
	}

	// Collapse concurrent recomputations of the same month.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		data, err := s.compute(ctx, month, monthStart)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(data); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, cacheTTL)
			}
		}

		return data, nil
	})

	if err != nil {
		return MonthlySummaryData{}, err
	}

	return v.(MonthlySummaryData), nil
}

func (s *service) compute(ctx context.Context, month string, monthStart time.Time) (MonthlySummaryData, error) {
	monthEnd := monthStart.AddDate(0, 1, -1)

	requests, err := s.leaves.FindIntersectingRange(ctx, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("monthly summary scan failed",
			zap.String("month", month),
			zap.Error(err),
		)
		return MonthlySummaryData{}, err
	}

	data := MonthlySummaryData{
		Month:         month,
		StatusSummary: make(map[string]StatusSummary),
		TypeSummary:   make(map[string]TypeSummary),
	}

	requesters := make(map[uuid.UUID]struct{})
	totalDays := 0
	for _, r := range requests {
		st := data.StatusSummary[r.Status]
		st.Count++
		st.TotalDays += r.DaysRequested
		data.StatusSummary[r.Status] = st

		ts := data.TypeSummary[r.LeaveType]
		ts.Count++
		ts.TotalDays += r.DaysRequested
		data.TypeSummary[r.LeaveType] = ts

		requesters[r.UserID] = struct{}{}
		totalDays += r.DaysRequested
	}

	data.TotalRequests = len(requests)
	data.TotalDaysRequested = totalDays

	names, err := s.resolveNames(ctx, requests)
	if err != nil {
		return MonthlySummaryData{}, err
	}
	data.DailyBreakdown = buildDailyBreakdown(monthStart, monthEnd, requests, names)

	totalEmployees, err := s.users.CountAll(ctx)
	if err != nil {
		s.logger.Error("monthly summary user count failed", zap.Error(err))
		return MonthlySummaryData{}, err
	}

	data.TeamStats = TeamStats{
		TotalEmployees:      totalEmployees,
		EmployeesWithLeave:  len(requesters),
		MostCommonLeaveType: mostCommonType(data.TypeSummary),
	}
	if len(requests) > 0 {
		data.TeamStats.AverageDaysPerRequest = float64(totalDays) / float64(len(requests))
	}

	return data, nil
}

func (s *service) resolveNames(ctx context.Context, requests []leave.LeaveRequest) (map[uuid.UUID]string, error) {
	idSet := make(map[uuid.UUID]struct{})
	for _, r := range requests {
		if r.Status == leave.StatusApproved {
			idSet[r.UserID] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names, err := s.users.FindNamesByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("monthly summary name lookup failed", zap.Error(err))
		return nil, err
	}
	return names, nil
}

func buildDailyBreakdown(monthStart, monthEnd time.Time, requests []leave.LeaveRequest, names map[uuid.UUID]string) []DailyBreakdown {
	days := make([]DailyBreakdown, 0, monthEnd.Day())

	for day := monthStart; !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		entry := DailyBreakdown{
			Date:             day.Format(dateLayout),
			DayName:          day.Weekday().String(),
			OnLeaveEmployees: []string{},
		}

		for _, r := range requests {
			if r.Status != leave.StatusApproved {
				continue
			}
			if r.StartDate.After(day) || r.EndDate.Before(day) {
				continue
			}
			entry.OnLeaveCount++
			if name, ok := names[r.UserID]; ok {
				entry.OnLeaveEmployees = append(entry.OnLeaveEmployees, name)
			}
		}

		days = append(days, entry)
	}

	return days
}

// mostCommonType picks the type with the highest count. Exact ties follow
// map iteration order, which callers accept as non-deterministic.
func mostCommonType(types map[string]TypeSummary) string {
	best := ""
	bestCount := 0
	for leaveType, summary := range types {
		if summary.Count > bestCount {
			best = leaveType
			bestCount = summary.Count
		}
	}
	return best
}
