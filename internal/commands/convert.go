package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/auszug-dev/auszug/internal/batch"
	"github.com/auszug-dev/auszug/internal/config"
	"github.com/auszug-dev/auszug/internal/llm"
	"github.com/auszug-dev/auszug/internal/pdftext"
	"github.com/auszug-dev/auszug/internal/runlog"
	"github.com/auszug-dev/auszug/internal/statements"
)

func newConvertCommand() *cobra.Command {
	var configPath string
	var outDir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert [directory]",
		Short: "Scan a directory for PDF statements and write per-account CSVs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runConvert(cmd.Context(), absDir, configPath, outDir, dryRun)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultFileName, "path to auszug.yaml")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the pipeline without writing CSV files")

	return cmd
}

func runConvert(ctx context.Context, root, configPath, outDir string, dryRun bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}

	apiKey, err := config.APIKey()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, apiKey, cfg.Model.Name, cfg.Model.Temperature)
	if err != nil {
		return err
	}
	defer client.Close()

	logger := log.New(os.Stderr)
	store := statements.NewStore(cfg.Output.Dir)
	driver := batch.NewDriver(root, cfg.Output.DefaultName, store, pdftext.PDFExtractor{}, client, dryRun, logger)

	stats, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	if !dryRun && len(stats.Log) > 0 {
		if err := runlog.Append(cfg.Output.Dir, stats.Log); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write run log: %v\n", err)
		}
	}

	printSummary(stats)
	return nil
}

// loadConfig reads the config file, falling back to defaults when the
// default file is simply absent. An explicitly named file must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == config.DefaultFileName {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func printSummary(stats *batch.RunStats) {
	fmt.Println()
	color.New(color.FgGreen).Printf("✓ %d/%d files processed", stats.Processed, stats.TotalFiles)
	fmt.Printf(", %d group file(s) written, %d rows total\n", stats.GroupsWritten, stats.RowsWritten)

	if len(stats.Failed) > 0 {
		color.New(color.FgRed).Printf("✗ %d failure(s):\n", len(stats.Failed))
		for _, path := range stats.Failed {
			fmt.Printf("    %s\n", path)
		}
	}
}
