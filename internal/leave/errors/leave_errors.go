package leaveerrors

import (
	"fmt"
	"net/http"

	"github.com/shkhalid/maxerp/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after start_date",
		http.StatusUnprocessableEntity,
	)
	ErrPastDate = apperror.New(
		apperror.CodePastDate,
		"Cannot select past dates",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeOverlap,
		"Leave request overlaps with existing request",
		http.StatusUnprocessableEntity,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeAlreadyProcessed,
		"Request has already been processed",
		http.StatusUnprocessableEntity,
	)
)

// InsufficientBalance carries the remaining entitlement so the caller can
// show how many days are actually left.
func InsufficientBalance(remainingDays int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInsufficientBalance,
		fmt.Sprintf("Insufficient leave balance: %d day(s) remaining", remainingDays),
		http.StatusUnprocessableEntity,
	)
}
