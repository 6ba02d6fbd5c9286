package repositories

import "context"

// ReceiptFetcher retrieves a stored receipt's binary content by its opaque
// reference. Implementations must honor context cancellation so a slow
// fetch can be bounded by the caller.
type ReceiptFetcher interface {
	// Fetch returns the receipt bytes and their content type.
	Fetch(ctx context.Context, receiptID string) ([]byte, string, error)
}
