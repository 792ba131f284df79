// Package export defines the outbound port for mirroring ledger entries
// to an external spreadsheet.
package export

import (
	"context"

	"fintrack/internal/core"
)

// LedgerWriter mirrors one transaction to the export target and returns
// an opaque reference to where it landed.
type LedgerWriter interface {
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
