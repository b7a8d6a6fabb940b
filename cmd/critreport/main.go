// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Critreport summarizes sparse matrix-vector multiplication benchmark
// results recorded by Criterion as a Markdown report.
//
// Usage:
//
//	critreport [flags] [artifact_root]
//
// artifact_root defaults to target/criterion. If it is a directory, it
// is walked as a Criterion output tree, reading
// <group>/<function>/<parameter>/new/estimates.json for every
// benchmark. If it is a regular file, it is read as the text log of a
// Criterion run.
//
// The report has a comparison table and a performance analysis per
// sequential operation, a thread scaling table per parallel
// algorithm, and, for trees, a gallery of thread scaling charts
// written to the -figures directory.
//
// Results can optionally be exported to a SQL database with -db, and
// the report and its figures copied to Google Cloud Storage with
// -gcs. For -gcs, a static OAuth2 access token may be supplied in the
// GCS_ACCESS_TOKEN environment variable; otherwise -gcs-credentials or
// the application default credentials are used.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sparsebench/critreport/benchfmt"
	"github.com/sparsebench/critreport/chart"
	"github.com/sparsebench/critreport/report"
	"github.com/sparsebench/critreport/storage/db"
	_ "github.com/sparsebench/critreport/storage/db/mysql"
	_ "github.com/sparsebench/critreport/storage/db/sqlite3"
	"github.com/sparsebench/critreport/storage/gcs"
)

var exit = os.Exit // replaced during testing

func main() {
	log.SetPrefix("critreport: ")
	log.SetFlags(0)

	if err := critreport(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			exit(2)
		}
		log.Print(err)
		exit(1)
	}
}

// config is the parsed command line.
type config struct {
	root    string
	out     string
	figures string
	sysinfo bool
	verbose bool

	dbDriver, dbDSN string

	gcs            *gcs.Location
	gcsCredentials string
	gcsToken       string
}

func parseFlags(stderr io.Writer, args []string) (*config, error) {
	fs := flag.NewFlagSet("critreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: critreport [flags] [artifact_root]

critreport writes a Markdown report of the Criterion benchmark results
under artifact_root (default target/criterion), which is either a
Criterion output directory or the text log of a run.

`)
		fs.PrintDefaults()
	}

	var cfg config
	fs.StringVar(&cfg.out, "o", "BENCHMARK_RESULTS.md", "write the report to `file`")
	fs.StringVar(&cfg.figures, "figures", "figures", "write thread scaling charts to `dir`; empty disables charts")
	fs.BoolVar(&cfg.sysinfo, "sysinfo", true, "include CPU information in the report")
	fs.BoolVar(&cfg.verbose, "v", false, "report skipped benchmark directories")
	flagDB := fs.String("db", "", "export results to the database `driver:dsn`, such as sqlite3:results.db")
	flagGCS := fs.String("gcs", "", "upload the report and charts to `gs://bucket/prefix`")
	fs.StringVar(&cfg.gcsCredentials, "gcs-credentials", "", "read Cloud Storage credentials from `file`")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
		cfg.root = filepath.Join("target", "criterion")
	case 1:
		cfg.root = fs.Arg(0)
	default:
		fs.Usage()
		return nil, fmt.Errorf("expected at most one artifact root, got %d", fs.NArg())
	}

	if *flagDB != "" {
		driver, dsn, ok := strings.Cut(*flagDB, ":")
		if !ok || driver == "" {
			return nil, fmt.Errorf("-db: want driver:dsn, got %q", *flagDB)
		}
		cfg.dbDriver, cfg.dbDSN = driver, dsn
	}
	if *flagGCS != "" {
		loc, err := gcs.ParseURL(*flagGCS)
		if err != nil {
			return nil, fmt.Errorf("-gcs: %w", err)
		}
		cfg.gcs = &loc
		cfg.gcsToken = os.Getenv("GCS_ACCESS_TOKEN")
	}
	return &cfg, nil
}

func critreport(stdout, stderr io.Writer, args []string) error {
	cfg, err := parseFlags(stderr, args)
	if err != nil {
		return err
	}
	warnf := func(format string, args ...interface{}) {
		fmt.Fprintf(stderr, "critreport: "+format+"\n", args...)
	}
	return run(context.Background(), cfg, stdout, warnf)
}

func run(ctx context.Context, cfg *config, stdout io.Writer, warnf func(string, ...interface{})) error {
	c := benchfmt.Collector{
		Warn: func(err error) { warnf("warning: %v", err) },
		Skip: func(err error) {
			if cfg.verbose {
				warnf("skipping %v", err)
			}
		},
	}
	results, mode, err := c.Collect(cfg.root)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Found %d benchmark results in %s (%s mode)\n", len(results), cfg.root, mode)

	var opts report.Options
	if mode == benchfmt.TreeMode && cfg.figures != "" {
		g := chart.Generator{
			Dir:  cfg.figures,
			Warn: func(err error) { warnf("warning: %v", err) },
		}
		figs, err := g.Generate(results)
		if err != nil {
			return err
		}
		opts.Gallery = true
		opts.Figures = figs
		opts.FigureDir = figureLink(cfg.out, cfg.figures)
		fmt.Fprintf(stdout, "Generated %d charts in %s\n", len(figs), cfg.figures)
	}
	if cfg.sysinfo {
		opts.SysInfo = report.CPUInfo()
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, results, opts); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.out, buf.Bytes(), 0666); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", cfg.out)

	if cfg.dbDriver != "" {
		if err := export(ctx, cfg, mode, results, stdout); err != nil {
			return err
		}
	}
	if cfg.gcs != nil {
		if err := upload(ctx, cfg, opts, stdout); err != nil {
			return err
		}
	}
	return nil
}

// figureLink returns the path of the figures directory as seen from
// the directory containing the report.
func figureLink(out, figures string) string {
	rel, err := filepath.Rel(filepath.Dir(out), figures)
	if err != nil {
		return filepath.ToSlash(figures)
	}
	return filepath.ToSlash(rel)
}

func export(ctx context.Context, cfg *config, mode benchfmt.Mode, results []*benchfmt.Result, stdout io.Writer) error {
	d, err := db.OpenSQL(cfg.dbDriver, cfg.dbDSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer d.Close()
	id, err := d.Export(ctx, cfg.root, mode, results)
	if err != nil {
		return fmt.Errorf("exporting results: %w", err)
	}
	fmt.Fprintf(stdout, "Exported %d results as run %d\n", len(results), id)
	return nil
}

func upload(ctx context.Context, cfg *config, opts report.Options, stdout io.Writer) error {
	u, err := gcs.NewUploader(ctx, *cfg.gcs, gcs.ClientOptions(cfg.gcsCredentials, cfg.gcsToken)...)
	if err != nil {
		return err
	}
	defer u.Close()

	url, err := u.Upload(ctx, cfg.out, filepath.Base(cfg.out))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Uploaded %s\n", url)

	dir := figureObjectDir(opts.FigureDir, cfg.figures)
	for _, f := range opts.Figures {
		url, err := u.Upload(ctx, filepath.Join(cfg.figures, f.File), path.Join(dir, f.File))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Uploaded %s\n", url)
	}
	return nil
}

// figureObjectDir returns the object directory for figures, keeping
// the report's relative links valid where the local layout allows it.
func figureObjectDir(link, figures string) string {
	if link == "" || link == ".." || strings.HasPrefix(link, "../") || path.IsAbs(link) {
		return filepath.Base(figures)
	}
	return link
}
