// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores collected benchmark results in a SQL database.
//
// Every export is a Run. Each result of the run becomes one row of the
// Results table, keyed by (RunID, ResultID).
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/sparsebench/critreport/benchfmt"
)

// DB is a high-level interface to a result database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun    *sql.Stmt
	insertResult *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Source VARCHAR(1024),
	Mode VARCHAR(16),
	Created VARCHAR(64)
);
CREATE TABLE IF NOT EXISTS Results (
	RunID BIGINT UNSIGNED,
	ResultID BIGINT UNSIGNED,
	GroupID VARCHAR(255),
	FunctionID VARCHAR(255),
	Parameter VARCHAR(255),
	Kind VARCHAR(32),
	Op VARCHAR(32),
	CaseName VARCHAR(255),
	Dims VARCHAR(64),
	NNZ BIGINT,
	Threads INT,
	Algorithm VARCHAR(64),
	MedianNS DOUBLE,
	LowerNS DOUBLE,
	UpperNS DOUBLE,
	PRIMARY KEY (RunID, ResultID),
{{if not .sqlite3}}
	Index (CaseName(100)),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ResultsCaseName ON Results(CaseName);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Source, Mode, Created) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertResult, err = db.sql.Prepare(`INSERT INTO Results(RunID, ResultID, GroupID, FunctionID, Parameter,
		Kind, Op, CaseName, Dims, NNZ, Threads, Algorithm, MedianNS, LowerNS, UpperNS)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// A Run is an export of the results of one report.
type Run struct {
	// ID is the primary key of the run.
	ID int64

	// next is the ResultID of the next result to insert.
	next int64
	// tx is the transaction holding every row of this run.
	tx *sql.Tx
	// db is the underlying database that this run is going to.
	db *DB
}

// NewRun starts a run for the results collected from source in the
// given mode. Nothing is visible to readers until Commit is called.
func (db *DB) NewRun(ctx context.Context, source string, mode benchfmt.Mode) (*Run, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, source, mode.String(), now().UTC().Format(time.RFC3339))
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Run{ID: id, tx: tx, db: db}, nil
}

// Insert adds a single result to the run.
func (r *Run) Insert(ctx context.Context, res *benchfmt.Result) error {
	_, err := r.tx.StmtContext(ctx, r.db.insertResult).ExecContext(ctx,
		r.ID, r.next, res.GroupID, res.FunctionID, res.Parameter,
		res.Kind.String(), res.Op, res.Case, res.Dims, res.NNZ, res.Threads, res.Algorithm,
		res.Median, res.Lower, res.Upper)
	if err != nil {
		return fmt.Errorf("insert %s: %w", res.FullID(), err)
	}
	r.next++
	return nil
}

// Commit makes the run visible.
func (r *Run) Commit() error {
	return r.tx.Commit()
}

// Abort discards the run.
func (r *Run) Abort() error {
	return r.tx.Rollback()
}

// Export stores results as a new run and returns its ID. Either every
// result is stored or none is.
func (db *DB) Export(ctx context.Context, source string, mode benchfmt.Mode, results []*benchfmt.Result) (int64, error) {
	run, err := db.NewRun(ctx, source, mode)
	if err != nil {
		return 0, err
	}
	for _, res := range results {
		if err := run.Insert(ctx, res); err != nil {
			run.Abort()
			return 0, err
		}
	}
	if err := run.Commit(); err != nil {
		return 0, err
	}
	return run.ID, nil
}

// CountRuns returns the number of committed runs.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

var kinds = map[string]benchfmt.Kind{}

func init() {
	for _, k := range []benchfmt.Kind{benchfmt.Unknown, benchfmt.Sequential, benchfmt.ThreadScaling} {
		kinds[k.String()] = k
	}
}

// Results returns the results of run id in insertion order.
func (db *DB) Results(ctx context.Context, id int64) ([]*benchfmt.Result, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT GroupID, FunctionID, Parameter, Kind, Op, CaseName,
		Dims, NNZ, Threads, Algorithm, MedianNS, LowerNS, UpperNS
		FROM Results WHERE RunID = ? ORDER BY ResultID`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*benchfmt.Result
	for rows.Next() {
		var r benchfmt.Result
		var kind string
		if err := rows.Scan(&r.GroupID, &r.FunctionID, &r.Parameter, &kind, &r.Op, &r.Case,
			&r.Dims, &r.NNZ, &r.Threads, &r.Algorithm, &r.Median, &r.Lower, &r.Upper); err != nil {
			return nil, err
		}
		r.Kind = kinds[kind]
		out = append(out, &r)
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertResult.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
