package transport

import "github.com/google/uuid"

// GlobalStats is the super-admin dashboard payload.
type GlobalStats struct {
	TotalSchools  int `json:"totalSchools"`
	ActiveSchools int `json:"activeSchools"`
	TotalUsers    int `json:"totalUsers"`
	TotalTeachers int `json:"totalTeachers"`
	TotalStudents int `json:"totalStudents"`
}

// SchoolStats is the school-scoped dashboard payload.
type SchoolStats struct {
	TotalTeachers         int `json:"totalTeachers"`
	TotalStudents         int `json:"totalStudents"`
	TotalClassrooms       int `json:"totalClassrooms"`
	AttendanceMarkedToday int `json:"attendanceMarkedToday"`
}

type StatsResponse struct {
	Role     string      `json:"role"`
	SchoolID *uuid.UUID  `json:"schoolId,omitempty"`
	Stats    interface{} `json:"stats"`
}
