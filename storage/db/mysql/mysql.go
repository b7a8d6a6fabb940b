// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mysql provides the mysql driver for
// github.com/sparsebench/critreport/storage/db, including the
// "cloudsql" network for Cloud SQL instances, as in
// "user:password@cloudsql(project:region:instance)/dbname".
package mysql

import (
	"database/sql"
	"time"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/sparsebench/critreport/storage/db"
)

func init() {
	db.RegisterOpenHook("mysql", func(db *sql.DB) error {
		// Servers drop idle connections after wait_timeout.
		db.SetConnMaxLifetime(5 * time.Minute)
		return db.Ping()
	})
}
