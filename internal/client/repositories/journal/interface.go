package journal

import (
	"context"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
)

type Repository interface {
	// Record appends e and keeps only the newest keep rows. keep <= 0
	// disables pruning.
	Record(ctx context.Context, e models.JournalEntry, keep int) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]models.JournalEntry, error)
	Count(ctx context.Context) (int, error)
}
