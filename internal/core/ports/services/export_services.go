package services

import "context"

// ExportSvcFacade exposes the report export pipeline.
type ExportSvcFacade interface {
	// ExportSpreadsheet renders the expense lines of the given reports into
	// a single xlsx document with amounts converted to targetCurrency.
	// It returns the document bytes and the suggested download filename.
	ExportSpreadsheet(ctx context.Context, reportIDs []string, targetCurrency string) ([]byte, string, error)

	// ExportArchive renders the spreadsheet and bundles it with the
	// fetchable receipt images of the exported lines into a zip archive.
	ExportArchive(ctx context.Context, reportIDs []string, targetCurrency string) ([]byte, string, error)
}
