package ports

import (
	"context"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// DocumentProcessor drives one document through the filing state machine.
type DocumentProcessor interface {
	ProcessFile(ctx context.Context, path string) domain.Result
}

// InboxScanner enumerates the inbound folder once and processes every PDF
// found, strictly sequentially.
type InboxScanner interface {
	ScanAndProcess(ctx context.Context) ([]domain.Result, error)
}

// ErrorRetrier moves failed documents from the errors folder back to the
// inbound root for another attempt.
type ErrorRetrier interface {
	RetryErrors(ctx context.Context) (int, error)
}
