package dto

import (
	"time"

	"github.com/yigit/teamreg/internal/app/models"
)

// APIResponse is the envelope of every successful JSON response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-10-19T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// TeamResponse is a team with its activity name resolved
type TeamResponse struct {
	models.Team
	ActivityName string `json:"activityName"`
}

// ReportResponse is one row of the summary report
type ReportResponse struct {
	ActivityName string `json:"activityName" example:"แข่งขันทักษะคณิตศาสตร์"`
	Teams        int    `json:"teams" example:"2"`
	Teachers     int    `json:"teachers" example:"2"`
	Students     int    `json:"students" example:"3"`
	Total        int    `json:"total" example:"5"`
}

// PaginationInfo describes one page of a list
type PaginationInfo struct {
	CurrentPage int `json:"currentPage" example:"1"`
	TotalPages  int `json:"totalPages" example:"1"`
	PageSize    int `json:"pageSize" example:"10"`
	TotalItems  int `json:"totalItems" example:"3"`
}

// TeamListResponse is one page of registered teams
type TeamListResponse struct {
	Teams      []TeamResponse `json:"teams"`
	Pagination PaginationInfo `json:"pagination"`
}
