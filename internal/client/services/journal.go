package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/client/repositories/journal"
	"github.com/dmitrijs2005/snackkiosk/internal/clock"
)

// JournalService appends kiosk events to the local journal.
type JournalService interface {
	Record(ctx context.Context, e models.JournalEntry) error
	Recent(ctx context.Context, limit int) ([]models.JournalEntry, error)
}

type journalService struct {
	repo  journal.Repository
	keep  int
	clock clock.Clock
}

// NewJournalService keeps at most keep entries (keep <= 0 keeps all).
func NewJournalService(repo journal.Repository, keep int, clk clock.Clock) JournalService {
	return &journalService{repo: repo, keep: keep, clock: clk}
}

// Record fills in ID and At when they are empty.
func (j *journalService) Record(ctx context.Context, e models.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = j.clock.Now()
	}
	return j.repo.Record(ctx, e, j.keep)
}

func (j *journalService) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	return j.repo.Recent(ctx, limit)
}

type nopJournal struct{}

// NopJournal is used when the journal is disabled.
func NopJournal() JournalService { return nopJournal{} }

func (nopJournal) Record(context.Context, models.JournalEntry) error { return nil }

func (nopJournal) Recent(context.Context, int) ([]models.JournalEntry, error) { return nil, nil }
