package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeVacation = "vacation"
	TypeSick     = "sick"
	TypePersonal = "personal"
)

// LeaveRequest rows are created by Apply and mutated exactly once by a
// decision; they are never deleted.
type LeaveRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user_dates"`

	LeaveType     string    `gorm:"type:varchar(20);not null"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	DaysRequested int       `gorm:"type:int;not null;default:1"`
	Reason        string    `gorm:"type:varchar(500);not null"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status"`
	ApproverID *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
