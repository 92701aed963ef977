package events

import "time"

const LeaveLifecycleTopic = "leave.request.lifecycle.v1"

const (
	EventLeaveRequested = "leave_requested"
	EventLeaveApproved  = "leave_approved"
	EventLeaveRejected  = "leave_rejected"
)

type LeaveLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	UserID        string    `json:"user_id"`
	LeaveType     string    `json:"leave_type"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	DaysRequested int       `json:"days_requested"`
	ApproverID    string    `json:"approver_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
