package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/auszug-dev/auszug/internal/grouping"
	"github.com/auszug-dev/auszug/internal/model"
	"github.com/auszug-dev/auszug/internal/pdftext"
	"github.com/auszug-dev/auszug/internal/runlog"
	"github.com/auszug-dev/auszug/internal/statements"
)

// TransactionSource turns statement text into transactions. Satisfied
// by llm.Client; tests substitute a fake.
type TransactionSource interface {
	ExtractTransactions(ctx context.Context, text string) ([]model.Transaction, error)
}

// Group is one destination CSV and the files feeding it, in discovery
// order.
type Group struct {
	Name  string
	Files []string
}

// GroupStats tallies one group's files within a run.
type GroupStats struct {
	Name      string
	Processed int
	Total     int
}

// RunStats accumulates counters across one batch run.
type RunStats struct {
	TotalFiles    int
	Processed     int
	Failed        []string     // paths of files and group CSVs that errored
	Groups        []GroupStats // per-group tallies, in discovery order
	GroupsWritten int
	RowsWritten   int
	Log           []runlog.Entry // one entry per scanned file
}

// Driver runs the scan → extract → merge → write pipeline, one file at
// a time.
type Driver struct {
	root         string
	defaultGroup string
	store        *statements.Store
	text         pdftext.Extractor
	source       TransactionSource
	dryRun       bool
	log          *log.Logger
}

// NewDriver creates a Driver over a scan root.
func NewDriver(root, defaultGroup string, store *statements.Store, text pdftext.Extractor, source TransactionSource, dryRun bool, logger *log.Logger) *Driver {
	return &Driver{
		root:         root,
		defaultGroup: defaultGroup,
		store:        store,
		text:         text,
		source:       source,
		dryRun:       dryRun,
		log:          logger,
	}
}

// Scan returns all PDF files under root recursively, in walk order.
// A missing or unreadable root is fatal.
func Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}

// GroupFiles partitions files into groups, preserving discovery order
// across groups and within each group.
func GroupFiles(root string, files []string, defaultName string) []Group {
	byName := make(map[string]int)
	var groups []Group
	for _, f := range files {
		name := grouping.FileGroup(root, f, defaultName)
		idx, ok := byName[name]
		if !ok {
			idx = len(groups)
			byName[name] = idx
			groups = append(groups, Group{Name: name})
		}
		groups[idx].Files = append(groups[idx].Files, f)
	}
	return groups
}

// Run executes the batch. Per-file failures are recorded in the stats
// and processing continues; only a missing scan root aborts the run.
func (d *Driver) Run(ctx context.Context) (*RunStats, error) {
	files, err := Scan(d.root)
	if err != nil {
		return nil, err
	}

	stats := &RunStats{TotalFiles: len(files)}
	if len(files) == 0 {
		d.log.Info("no PDF files found", "root", d.root)
		return stats, nil
	}

	groups := GroupFiles(d.root, files, d.defaultGroup)
	d.log.Info("starting conversion", "files", len(files), "groups", len(groups))

	for _, group := range groups {
		d.runGroup(ctx, group, stats)
	}
	return stats, nil
}

// runGroup processes one group's files and flushes the merged result.
func (d *Driver) runGroup(ctx context.Context, group Group, stats *RunStats) {
	tally := GroupStats{Name: group.Name, Total: len(group.Files)}
	defer func() { stats.Groups = append(stats.Groups, tally) }()

	var fresh []model.Transaction
	for i, path := range group.Files {
		entry := runlog.Entry{Timestamp: time.Now().UTC(), File: path, Group: group.Name}

		txns, err := d.processFile(ctx, path)
		if err != nil {
			d.log.Error("extraction failed", "file", path, "err", err)
			stats.Failed = append(stats.Failed, path)
			entry.Status = runlog.StatusFailed
			stats.Log = append(stats.Log, entry)
			continue
		}
		stats.Processed++
		tally.Processed++
		d.log.Info("processed", "file", path, "group", group.Name,
			"transactions", len(txns), "progress", fmt.Sprintf("%d/%d", i+1, len(group.Files)))
		entry.Status = runlog.StatusOK
		entry.Transactions = len(txns)
		stats.Log = append(stats.Log, entry)
		fresh = append(fresh, txns...)
	}

	// Groups with no new transactions keep their existing CSV as is.
	if len(fresh) == 0 {
		d.log.Info("no new transactions", "group", group.Name)
		return
	}

	existing, err := d.store.Load(group.Name)
	if err != nil {
		d.log.Error("loading existing CSV failed", "group", group.Name, "err", err)
		stats.Failed = append(stats.Failed, d.store.Path(group.Name))
		return
	}

	merged := statements.Merge(existing, fresh)

	if d.dryRun {
		d.log.Info("dry run, skipping write", "group", group.Name, "rows", len(merged))
		return
	}

	if err := d.store.Write(group.Name, merged); err != nil {
		d.log.Error("writing CSV failed", "group", group.Name, "err", err)
		stats.Failed = append(stats.Failed, d.store.Path(group.Name))
		return
	}

	stats.GroupsWritten++
	stats.RowsWritten += len(merged)
	d.log.Info("wrote group", "file", d.store.Path(group.Name), "rows", len(merged))
}

func (d *Driver) processFile(ctx context.Context, path string) ([]model.Transaction, error) {
	text, err := d.text.Extract(path)
	if err != nil {
		return nil, err
	}
	return d.source.ExtractTransactions(ctx, text)
}
