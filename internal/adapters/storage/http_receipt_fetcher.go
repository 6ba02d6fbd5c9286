package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	portsrepo "github.com/NotaSpese/expense_report_app/internal/core/ports/repositories"
)

// maxReceiptSize bounds how much of a receipt body is read, guarding
// against a misbehaving blob endpoint.
const maxReceiptSize = 20 << 20 // 20 MiB

// HTTPReceiptFetcher retrieves receipt binaries over HTTP. Receipt ids are
// expected to be absolute URLs into the blob store.
type HTTPReceiptFetcher struct {
	client *http.Client
}

// NewHTTPReceiptFetcher creates an HTTPReceiptFetcher. A nil client falls
// back to http.DefaultClient; per-fetch deadlines come from the caller's
// context.
func NewHTTPReceiptFetcher(client *http.Client) *HTTPReceiptFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPReceiptFetcher{client: client}
}

// Ensure HTTPReceiptFetcher implements the ReceiptFetcher interface
var _ portsrepo.ReceiptFetcher = (*HTTPReceiptFetcher)(nil)

// Fetch downloads the receipt content and returns it with its content type.
func (f *HTTPReceiptFetcher) Fetch(ctx context.Context, receiptID string) ([]byte, string, error) {
	if _, err := url.ParseRequestURI(receiptID); err != nil {
		return nil, "", fmt.Errorf("invalid receipt reference '%s': %w", receiptID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, receiptID, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build receipt request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch receipt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("receipt fetch returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxReceiptSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read receipt body: %w", err)
	}
	return content, resp.Header.Get("Content-Type"), nil
}
