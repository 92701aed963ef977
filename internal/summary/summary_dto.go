package summary

// Wire shapes of the monthly report.

type StatusSummary struct {
	Count     int `json:"count"`
	TotalDays int `json:"total_days"`
}

type TypeSummary struct {
	Count     int `json:"count"`
	TotalDays int `json:"total_days"`
}

type DailyBreakdown struct {
	Date             string   `json:"date"`
	DayName          string   `json:"day_name"`
	OnLeaveCount     int      `json:"on_leave_count"`
	OnLeaveEmployees []string `json:"on_leave_employees"`
}

type TeamStats struct {
	TotalEmployees       int64   `json:"total_employees"`
	EmployeesWithLeave   int     `json:"employees_with_leave"`
	MostCommonLeaveType  string  `json:"most_common_leave_type,omitempty"`
	AverageDaysPerRequest float64 `json:"average_days_per_request"`
}

type MonthlySummaryData struct {
	Month              string                   `json:"month"`
	StatusSummary      map[string]StatusSummary `json:"status_summary"`
	TypeSummary        map[string]TypeSummary   `json:"type_summary"`
	DailyBreakdown     []DailyBreakdown         `json:"daily_breakdown"`
	TeamStats          TeamStats                `json:"team_stats"`
	TotalRequests      int                      `json:"total_requests"`
	TotalDaysRequested int                      `json:"total_days_requested"`
}
