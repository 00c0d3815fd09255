// Package journal persists the kiosk's local activity journal.
//
// The journal is append-only and bounded: every Record prunes the table to the
// newest keep rows inside the same transaction. It exists for troubleshooting a
// kiosk on site; balances and stock stay with the backend.
//
//	repo := journal.NewSQLiteRepository(db)
//	_ = repo.Record(ctx, entry, 10000)
//	last, _ := repo.Recent(ctx, 20)
package journal
