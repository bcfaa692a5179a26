// Package store provides the SQLite-backed run ledger.
//
// Every emission run can be recorded: the resolved output path, the
// artifact text and its content hash, the interned symbol list, and any
// diagnostics. Failed runs record diagnostics with no artifact row, so the
// ledger mirrors the stage's no-partial-output guarantee.
package store
