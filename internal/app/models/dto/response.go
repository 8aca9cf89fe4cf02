package dto

import (
	"time"

	"github.com/yigit/schooladmin/internal/pkg/helpers"
)

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// APIResponse is the envelope every JSON endpoint answers with
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Student created successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a successful envelope
func NewAPIResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes the page returned by a list endpoint
type PaginationInfo struct {
	CurrentPage int  `json:"currentPage" example:"1"`
	TotalPages  int  `json:"totalPages" example:"3"`
	PageSize    int  `json:"pageSize" example:"10"`
	TotalItems  int  `json:"totalItems" example:"24"`
	ShowingFrom int  `json:"showingFrom" example:"1"`
	ShowingTo   int  `json:"showingTo" example:"10"`
	HasPrev     bool `json:"hasPrev" example:"false"`
	HasNext     bool `json:"hasNext" example:"true"`
}

// NewPaginationInfo converts a page window to its wire form
func NewPaginationInfo(w helpers.PageWindow) PaginationInfo {
	return PaginationInfo{
		CurrentPage: w.Page,
		TotalPages:  w.TotalPages,
		PageSize:    w.PageSize,
		TotalItems:  w.Total,
		ShowingFrom: w.ShowingFrom,
		ShowingTo:   w.ShowingTo,
		HasPrev:     w.HasPrev(),
		HasNext:     w.HasNext(),
	}
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
