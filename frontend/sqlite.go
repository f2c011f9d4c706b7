// Package frontend implements the RF front-end filter switch module.
package frontend

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/viam-modules/rf-frontend/filterbank"

	// github.com/mattn/go-sqlite3 is for sqlite.
	_ "github.com/mattn/go-sqlite3"
)

var (
	errNoChannelInDB = errors.New("error no stored channel found")
	errNoDB          = errors.New("error channel database not open")
)

// storedChannel is the persisted form of a channel request, enough to re-run
// the selection after a restart.
type storedChannel struct {
	freqKHz      uint32
	bandwidthKHz uint32
	lteBand      int
	direction    filterbank.Direction
}

// Create or open a sqlite db file used to save the tuned channel across restarts.
func (fs *filterSwitch) setupSqlite(ctx context.Context) error {
	moduleDataDir := os.Getenv("VIAM_MODULE_DATA")

	filePathDB := filepath.Join(moduleDataDir, "channels.db")
	db, err := sql.Open("sqlite3", filePathDB)
	if err != nil {
		return err
	}
	// create the table if it does not exist
	sqlStmt := `
	create table if not exists channels(name STRING NOT NULL PRIMARY KEY, freqKHz INTEGER, bandwidthKHz INTEGER, lteBand INTEGER, direction INTEGER);
	`
	if _, err = db.ExecContext(ctx, sqlStmt); err != nil {
		return err
	}
	fs.db = db

	return nil
}

// saveChannel records the request that produced a selection, keyed by the
// resource name so several front-ends can share one module data dir.
func (fs *filterSwitch) saveChannel(ctx context.Context, sel *selection) error {
	if fs.db == nil {
		return errNoDB
	}
	// the request is stored rather than the resolved site, so a changed
	// fitted-filter configuration re-resolves honestly on restart. matched
	// equals the originally requested direction for band-qualified requests.
	dir := sel.matched
	_, err := fs.db.ExecContext(ctx, "insert or replace into channels (name, freqKHz, bandwidthKHz, lteBand, direction) VALUES(?, ?, ?, ?, ?);",
		fs.Name().Name,
		sel.freqKHz,
		sel.bandwidthKHz,
		sel.lteBand,
		int(dir))
	return err
}

func (fs *filterSwitch) loadChannel(ctx context.Context) (*storedChannel, error) {
	if fs.db == nil {
		return nil, errNoDB
	}
	stored := storedChannel{}
	var dir int
	if err := fs.db.QueryRowContext(ctx, "select freqKHz, bandwidthKHz, lteBand, direction from channels where name = ?",
		fs.Name().Name).Scan(&stored.freqKHz, &stored.bandwidthKHz, &stored.lteBand, &dir); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNoChannelInDB
		}
		return nil, err
	}
	stored.direction = filterbank.Direction(dir)
	return &stored, nil
}
