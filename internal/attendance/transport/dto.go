package transport

import (
	"time"

	"github.com/google/uuid"
)

type MarkAttendanceRequest struct {
	StudentID string  `json:"studentId" validate:"required,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string  `json:"status" validate:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Remarks   *string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

type BulkMarkAttendanceRequest struct {
	Attendances []MarkAttendanceRequest `json:"attendances" validate:"required,min=1,max=500,dive"`
}

type UpdateAttendanceRequest struct {
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=PRESENT ABSENT LATE EXCUSED"`
	Remarks *string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

type ListAttendanceRequest struct {
	Page        int    `form:"page" validate:"omitempty,min=1"`
	Limit       int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Date        string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	StudentID   string `form:"studentId" validate:"omitempty,uuid"`
	ClassroomID string `form:"classroomId" validate:"omitempty,uuid"`
}

type StatsRequest struct {
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

type StudentSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	RollNumber string    `json:"rollNumber"`
	Classroom  struct {
		ID      uuid.UUID `json:"id"`
		Name    string    `json:"name"`
		Section string    `json:"section"`
	} `json:"classroom"`
}

type MarkedBySummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AttendanceResponse struct {
	ID        uuid.UUID       `json:"id"`
	Date      string          `json:"date"`
	Status    string          `json:"status"`
	Remarks   *string         `json:"remarks"`
	SchoolID  uuid.UUID       `json:"schoolId"`
	Student   StudentSummary  `json:"student"`
	MarkedBy  MarkedBySummary `json:"markedBy"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type BulkResult struct {
	Success bool               `json:"success"`
	Data    AttendanceResponse `json:"data"`
}

type BulkError struct {
	Success   bool   `json:"success"`
	StudentID string `json:"studentId"`
	Error     string `json:"error"`
}

type BulkMarkResponse struct {
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Results    []BulkResult `json:"results"`
	Errors     []BulkError  `json:"errors"`
}

type StatsResponse struct {
	Total                int     `json:"total"`
	Present              int     `json:"present"`
	Absent               int     `json:"absent"`
	Late                 int     `json:"late"`
	TotalStudents        int     `json:"totalStudents"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}
