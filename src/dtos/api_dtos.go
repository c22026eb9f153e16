package dtos

import "time"

// ApiResponse is the envelope returned by every route.
type ApiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func Success(message string, data interface{}) ApiResponse {
	return ApiResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func Error(message string) ApiResponse {
	return ApiResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Page wraps a list result with its pagination window.
type Page struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int         `json:"totalPages"`
}

func NewPage(items interface{}, page, size int, total int64) Page {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page{Items: items, Page: page, Size: size, TotalItems: total, TotalPages: pages}
}
