package leave

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shkhalid/maxerp/internal/balance"
	"github.com/shkhalid/maxerp/internal/domain"
	"github.com/shkhalid/maxerp/internal/events"
	leaveerrors "github.com/shkhalid/maxerp/internal/leave/errors"
	"github.com/shkhalid/maxerp/internal/messaging/kafka"
	"github.com/shkhalid/maxerp/internal/shared/apperror"
	"github.com/shkhalid/maxerp/internal/shared/contextutil"
	"github.com/shkhalid/maxerp/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)
	Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
	OnLeaveCount(ctx context.Context, date string) (OnLeaveTodayResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	balances   balance.Repository
	users      user.Repository
	outbox     kafka.OutboxRepository
	yearPolicy BalanceYearPolicy
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, balances balance.Repository, users user.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, balances, users, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	balances balance.Repository,
	users user.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		balances:   balances,
		users:      users,
		outbox:     outboxRepo,
		yearPolicy: CurrentYearPolicy,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	if !ValidateDateRange(startDate, endDate, s.now()) {
		s.logger.Warn("apply leave past date",
			zap.String("user_id", userID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrPastDate
	}

	daysRequested := InclusiveDayCount(startDate, endDate)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(tx.Error))
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, userID, startDate, endDate)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("apply leave overlap detected",
			zap.String("user_id", userID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	year := s.yearPolicy(s.now(), startDate)
	bal, err := s.balances.WithTx(tx).FindByUserTypeYear(ctx, userID, req.LeaveType, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No balance row means no entitlement at all.
			return LeaveResponse{}, leaveerrors.InsufficientBalance(0)
		}
		s.logger.Error("apply leave balance lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !bal.CanCover(daysRequested) {
		return LeaveResponse{}, leaveerrors.InsufficientBalance(bal.RemainingDays)
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		UserID:        userUUID,
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		DaysRequested: daysRequested,
		Reason:        req.Reason,
		Status:        StatusPending,
		CreatedAt:     s.now().UTC(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueEvent(ctx, tx, events.EventLeaveRequested, l, nil); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
		zap.Int("days_requested", daysRequested),
	)

	return s.attachNames(ctx, mapToResponse(*l)), nil
}

func (s *service) ListPending(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachNamesList(ctx, mapToListResponse(requests)), nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leaveerrors.ErrInvalidUserID
	}

	requests, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachNamesList(ctx, mapToListResponse(requests)), nil
}

func (s *service) Decide(ctx context.Context, approverID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("action", req.Action),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	approver, err := s.users.GetByID(ctx, approverUUID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	if !approver.Role.Can(domain.CapReviewLeaveRequests) {
		s.logger.Warn("decide leave forbidden",
			zap.String("approver_id", approverID),
			zap.String("role", string(approver.Role)),
		)
		return LeaveResponse{}, apperror.ErrForbidden
	}

	// A malformed id cannot name an existing request; report not found.
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrRequestNotFound
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(tx.Error))
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Lock the request row: the pending guard must hold inside the
	// transaction, or two concurrent decisions could both go through.
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrRequestNotFound
		}
		s.logger.Error("decide leave fetch failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("decide leave already processed",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	now := s.now().UTC()
	eventType := events.EventLeaveRejected

	if req.Action == ActionApprove {
		year := s.yearPolicy(s.now(), l.StartDate)
		bal, err := s.balances.WithTx(tx).FindByUserTypeYearForUpdate(ctx, l.UserID.String(), l.LeaveType, year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Missing balance row fails closed, same as insufficient.
				return LeaveResponse{}, leaveerrors.InsufficientBalance(0)
			}
			s.logger.Error("decide leave balance lookup failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if !bal.CanCover(l.DaysRequested) {
			return LeaveResponse{}, leaveerrors.InsufficientBalance(bal.RemainingDays)
		}

		bal.Debit(l.DaysRequested)
		if err := s.balances.WithTx(tx).Update(ctx, bal); err != nil {
			s.logger.Error("decide leave balance debit failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		l.Status = StatusApproved
		eventType = events.EventLeaveApproved
	} else {
		l.Status = StatusRejected
	}

	l.ApproverID = &approverUUID
	l.ApprovedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.queueEvent(ctx, tx, eventType, l, &approverUUID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	return s.attachNames(ctx, mapToResponse(*l)), nil
}

func (s *service) OnLeaveCount(ctx context.Context, date string) (OnLeaveTodayResponse, error) {
	day := truncateToDay(s.now())
	if date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return OnLeaveTodayResponse{}, err
		}
		day = parsed
	}

	count, err := s.repo.CountApprovedOnDay(ctx, day)
	if err != nil {
		return OnLeaveTodayResponse{}, err
	}

	return OnLeaveTodayResponse{
		Date:  day.Format(dateLayout),
		Count: count,
	}, nil
}

func (s *service) queueEvent(ctx context.Context, tx *gorm.DB, eventType string, l *LeaveRequest, approverID *uuid.UUID) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveLifecycleEvent{
		EventType:     eventType,
		RequestID:     contextutil.GetRequestID(ctx),
		LeaveID:       l.ID.String(),
		UserID:        l.UserID.String(),
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		DaysRequested: l.DaysRequested,
		OccurredAt:    s.now().UTC(),
	}
	if approverID != nil {
		event.ApproverID = approverID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue leave event failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// attachNames resolves requester/approver display names after the fact,
// instead of eager-loading relations inside the store.
func (s *service) attachNames(ctx context.Context, resp LeaveResponse) LeaveResponse {
	out := s.attachNamesList(ctx, []LeaveResponse{resp})
	return out[0]
}

func (s *service) attachNamesList(ctx context.Context, resps []LeaveResponse) []LeaveResponse {
	if s.users == nil || len(resps) == 0 {
		return resps
	}

	idSet := make(map[uuid.UUID]struct{}, len(resps))
	for _, r := range resps {
		if id, err := uuid.Parse(r.UserID); err == nil {
			idSet[id] = struct{}{}
		}
		if r.ApproverID != nil {
			if id, err := uuid.Parse(*r.ApproverID); err == nil {
				idSet[id] = struct{}{}
			}
		}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names, err := s.users.FindNamesByIDs(ctx, ids)
	if err != nil {
		// Names are display-only; the response is still usable.
		s.logger.Warn("resolve user names failed", zap.Error(err))
		return resps
	}

	for i := range resps {
		if id, err := uuid.Parse(resps[i].UserID); err == nil {
			resps[i].UserName = names[id]
		}
		if resps[i].ApproverID != nil {
			if id, err := uuid.Parse(*resps[i].ApproverID); err == nil {
				if name, ok := names[id]; ok {
					resps[i].ApproverName = &name
				}
			}
		}
	}
	return resps
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		UserID:        l.UserID.String(),
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		DaysRequested: l.DaysRequested,
		Reason:        l.Reason,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
