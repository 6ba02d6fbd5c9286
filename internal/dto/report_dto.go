package dto

import (
	"time"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
)

// CreateReportRequest is the payload for creating an expense report.
type CreateReportRequest struct {
	Title string `json:"title" binding:"required"`
	Month int    `json:"month" binding:"required,min=1,max=12"`
	Year  int    `json:"year" binding:"required,min=2000"`
}

// ReportResponse is the API representation of an expense report.
type ReportResponse struct {
	ReportID  string    `json:"reportId"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToReportResponse maps a domain report to its API representation.
func ToReportResponse(r *domain.ExpenseReport) ReportResponse {
	return ReportResponse{
		ReportID:  r.ReportID,
		UserID:    r.UserID,
		Title:     r.Title,
		Month:     r.Month,
		Year:      r.Year,
		CreatedAt: r.CreatedAt,
	}
}

// ToReportResponses maps a slice of domain reports.
func ToReportResponses(reports []domain.ExpenseReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, ToReportResponse(&reports[i]))
	}
	return out
}
