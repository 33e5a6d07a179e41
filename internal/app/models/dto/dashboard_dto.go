package dto

// GradeStats summarizes vaccination coverage for a single grade
type GradeStats struct {
	Grade              string  `json:"grade"`
	TotalStudents      int     `json:"totalStudents"`
	VaccinatedStudents int     `json:"vaccinatedStudents"`
	VaccinationRate    float64 `json:"vaccinationRate"`
}

// StatusSummary breaks down records by lifecycle status
type StatusSummary struct {
	TotalRecords     int `json:"totalRecords"`
	CompletedRecords int `json:"completedRecords"`
	OverdueRecords   int `json:"overdueRecords"`
	PendingRecords   int `json:"pendingRecords"`
	DueSoonRecords   int `json:"dueSoonRecords"`
}

// UpcomingDrivesSummary covers active drives in the next 30 days
type UpcomingDrivesSummary struct {
	TotalDrives int                        `json:"totalDrives"`
	TotalDoses  int                        `json:"totalDoses"`
	Drives      []VaccinationDriveResponse `json:"drives"`
}

// DashboardStatsResponse is the aggregate dashboard payload
type DashboardStatsResponse struct {
	TotalStudents          int                   `json:"totalStudents"`
	VaccinatedStudents     int                   `json:"vaccinatedStudents"`
	OverallVaccinationRate float64               `json:"overallVaccinationRate"`
	GradeStats             []GradeStats          `json:"gradeStats"`
	StatusSummary          StatusSummary         `json:"statusSummary"`
	UpcomingDrives         UpcomingDrivesSummary `json:"upcomingDrives"`
}
