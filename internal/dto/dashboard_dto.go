package dto

// ChartData is a label/value series ready for charting.
type ChartData struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// DashboardResponse aggregates everything staff see on the dashboard.
type DashboardResponse struct {
	Feedback        []FeedbackResponse         `json:"feedback"`
	Attendance      []AttendanceRecordResponse `json:"attendance"`
	Users           []UserResponse             `json:"users"`
	ActivityNames   map[int]string             `json:"activity_names"`
	AttendanceChart ChartData                  `json:"attendance_chart"`
}
