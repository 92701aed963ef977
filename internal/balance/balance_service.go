package balance

import (
	"context"
	"errors"
	"strings"
	"time"

	balanceerrors "github.com/shkhalid/maxerp/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// ListForUser returns the caller's balances for the current year.
	ListForUser(ctx context.Context, userID string) ([]BalanceResponse, error)
	// Provision creates a fresh entitlement row (seed/admin path).
	Provision(ctx context.Context, req ProvisionBalanceRequest) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, balanceerrors.ErrInvalidUserID
	}

	year := s.now().Year()
	balances, err := s.repo.FindByUserAndYear(ctx, userID, year)
	if err != nil {
		s.logger.Error("list balances failed",
			zap.String("user_id", userID),
			zap.Int("year", year),
			zap.Error(err),
		)
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Provision(ctx context.Context, req ProvisionBalanceRequest) (BalanceResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidUserID
	}

	b := &LeaveBalance{
		ID:            uuid.New(),
		UserID:        userID,
		LeaveType:     req.LeaveType,
		Year:          req.Year,
		TotalDays:     req.TotalDays,
		UsedDays:      0,
		RemainingDays: req.TotalDays,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("balance provisioned",
		zap.String("user_id", req.UserID),
		zap.String("leave_type", req.LeaveType),
		zap.Int("year", req.Year),
		zap.Int("total_days", req.TotalDays),
	)
	return mapToResponse(*b), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return balanceerrors.ErrBalanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return balanceerrors.ErrBalanceAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return balanceerrors.ErrBalanceAlreadyExists
	}

	return err
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		LeaveType:     b.LeaveType,
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.RemainingDays,
	}
}
