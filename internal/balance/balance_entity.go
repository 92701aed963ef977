package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one annual entitlement row. RemainingDays is stored, not
// derived: every mutation must keep remaining = total - used.
type LeaveBalance struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balances_user_type_year"`

	LeaveType     string `gorm:"type:varchar(20);not null;uniqueIndex:uq_balances_user_type_year"`
	Year          int    `gorm:"type:int;not null;uniqueIndex:uq_balances_user_type_year"`
	TotalDays     int    `gorm:"type:int;not null;default:0"`
	UsedDays      int    `gorm:"type:int;not null;default:0"`
	RemainingDays int    `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Debit consumes days from the entitlement and recomputes RemainingDays
// so the remaining = total - used invariant holds after the mutation.
func (b *LeaveBalance) Debit(days int) {
	b.UsedDays += days
	b.RemainingDays = b.TotalDays - b.UsedDays
}

// CanCover reports whether the remaining entitlement covers the request.
func (b *LeaveBalance) CanCover(days int) bool {
	return b.RemainingDays >= days
}
