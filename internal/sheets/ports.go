package sheets

import (
	"context"

	"farmbook/internal/core"
)

// LedgerMirror writes a read-only copy of the books to an external sheet.
// The mirror is an export, never a source of truth: every call rewrites
// the full ledger for the identity.
type LedgerMirror interface {
	Mirror(ctx context.Context, identity string, data *core.FarmData) error
}
