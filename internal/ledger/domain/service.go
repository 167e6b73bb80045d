package domain

import (
	"context"

	"github.com/smallbiznis/invoicesmith/internal/record"
)

// AppendRequest carries one submission to persist.
type AppendRequest struct {
	Record record.Record
	// Form is the raw submitted key/value form, kept as entry metadata.
	Form map[string]string
}

// Service is the append-only invoice ledger.
type Service interface {
	Append(ctx context.Context, req AppendRequest) (Entry, error)
}
