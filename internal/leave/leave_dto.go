package leave

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=vacation sick personal"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type DecideLeaveRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name,omitempty"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DaysRequested int     `json:"days_requested"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ApproverID    *string `json:"approver_id,omitempty"`
	ApproverName  *string `json:"approver_name,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type OnLeaveTodayResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
