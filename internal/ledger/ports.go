// Package ledger defines the ports between the operation layer and the
// persistence adapters, plus the row codec every adapter shares.
package ledger

import (
	"context"

	"contas/internal/core"
)

type (
	// Store persists the current record set as one flat table.
	Store interface {
		// Load returns the current set, empty when no table exists yet.
		Load(ctx context.Context) ([]core.Bill, error)

		// Save overwrites the table wholesale with the given set.
		Save(ctx context.Context, bills []core.Bill) error

		// Purge discards the current set without saving a snapshot,
		// leaving any history untouched.
		Purge(ctx context.Context) error
	}

	// Archiver appends a snapshot of the current set to a permanent
	// historical log. Implementations deduplicate exact repeats but
	// never prune: the history only grows.
	Archiver interface {
		Archive(ctx context.Context, snapshot []core.Bill) error
	}
)
