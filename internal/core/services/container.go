package services

import (
	"time"

	portsrepo "github.com/NotaSpese/expense_report_app/internal/core/ports/repositories"
	portssvc "github.com/NotaSpese/expense_report_app/internal/core/ports/services"
)

// NewServiceContainer wires the concrete services behind their facades.
// companyName fills the Company column of exports; fetchTimeout and
// parallelism bound receipt fetching during archive exports.
func NewServiceContainer(
	reportRepo portsrepo.ReportRepository,
	rateRepo portsrepo.RateRepository,
	receiptFetcher portsrepo.ReceiptFetcher,
	companyName string,
	fetchTimeout time.Duration,
	parallelism int,
) *portssvc.ServiceContainer {
	rateSvc := NewRateService(rateRepo)
	builder := NewSpreadsheetBuilder(companyName)
	assembler := NewArchiveAssembler(builder, receiptFetcher, fetchTimeout, parallelism)

	return &portssvc.ServiceContainer{
		Report: NewReportService(reportRepo),
		Rate:   rateSvc,
		Export: NewExportService(reportRepo, rateSvc, builder, assembler),
	}
}
