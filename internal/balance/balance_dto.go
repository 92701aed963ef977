package balance

type BalanceResponse struct {
	LeaveType     string `json:"leave_type"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

type ProvisionBalanceRequest struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	LeaveType string `json:"leave_type" binding:"required,oneof=vacation sick personal"`
	Year      int    `json:"year" binding:"required,min=2000"`
	TotalDays int    `json:"total_days" binding:"required,min=0"`
}
