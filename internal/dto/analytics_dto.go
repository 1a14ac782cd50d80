package dto

// StudentStatsResponse holds the on-demand category distributions over the
// full record set.
type StudentStatsResponse struct {
	TotalStudents         int            `json:"totalStudents"`
	YearLevelDistribution map[string]int `json:"yearLevelDistribution"`
	CourseDistribution    map[string]int `json:"courseDistribution"`
}
