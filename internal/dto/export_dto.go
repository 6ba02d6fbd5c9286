package dto

// ExportRequest selects the reports and target currency of an export call.
type ExportRequest struct {
	ReportIDs      []string `json:"reportIds" binding:"required,min=1,dive,required"`
	TargetCurrency string   `json:"targetCurrency" binding:"required,iso4217"`
}
