package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/adrg/xdg"
	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/tablerecon"
)

// defaultScorerConfigName is the scorer config looked up under the
// user's XDG config directory when --config is not given.
const defaultScorerConfigName = "tablerecon/pdftable.json"

func main() {
	cmd := &cli.Command{
		Name:  "tablerecon",
		Usage: "Reconcile table structure between two document extractions",
		Commands: []*cli.Command{
			alignCommand(),
			mergeCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func alignCommand() *cli.Command {
	return &cli.Command{
		Name:  "align",
		Usage: "Align table sequences from two annotated-text documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Source annotated-text file (authoritative extraction)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"t"},
				Usage:    "Target annotated-text file (degraded extraction)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "CSV report output path (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "mapping",
				Aliases: []string{"m"},
				Usage:   "JSON mapping output path (MATCH rows only)",
			},
			&cli.FloatFlag{
				Name:  "gap",
				Usage: "Gap penalty for skipping a table during alignment",
				Value: tablerecon.DefaultConfig().GapPenalty,
			},
			&cli.FloatFlag{
				Name:  "position-weight",
				Usage: "Weight of the positional prior",
				Value: tablerecon.DefaultConfig().PositionWeight,
			},
			&cli.FloatFlag{
				Name:  "threshold",
				Usage: "Minimum raw similarity for a MATCH classification",
				Value: tablerecon.DefaultConfig().MatchThreshold,
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Log phase timing and table counts",
			},
			verboseFlag(),
		},
		Action: runAlign,
	}
}

func runAlign(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("verbose"))

	config := tablerecon.DefaultConfig()
	config.GapPenalty = cmd.Float("gap")
	config.PositionWeight = cmd.Float("position-weight")
	config.MatchThreshold = cmd.Float("threshold")
	config.EnableMetricsLogging = cmd.Bool("metrics")

	aligner := tablerecon.NewAlignerWithConfig(config)
	result, err := aligner.AlignFiles(cmd.String("source"), cmd.String("target"))
	if err != nil {
		return err
	}

	if err := writeReport(result, cmd.String("report")); err != nil {
		return err
	}

	if mappingPath := cmd.String("mapping"); mappingPath != "" {
		data, err := result.MarshalMapping()
		if err != nil {
			return err
		}
		if err := os.WriteFile(mappingPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write mapping file: %w", err)
		}
		slog.Debug("mapping written", "path", mappingPath)
	}

	printSummary(result)
	return nil
}

// writeReport writes the CSV report to the given path, or stdout when
// no path is set.
func writeReport(result *tablerecon.Alignment, path string) error {
	if path == "" {
		return result.WriteReport(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	return result.WriteReport(f)
}

// printSummary prints per-status row counts on stderr.
func printSummary(result *tablerecon.Alignment) {
	counts := result.StatusCounts()

	fmt.Fprintf(os.Stderr, "%s %d  %s %d  %s %d  %s %d\n",
		color.GreenString("match:"), counts[tablerecon.StatusMatch],
		color.YellowString("weak:"), counts[tablerecon.StatusWeakMatch],
		color.RedString("missing:"), counts[tablerecon.StatusMissingInTarget],
		color.RedString("extra:"), counts[tablerecon.StatusExtraInTarget])
}

func mergeCommand() *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: "Score cell-merge candidates from a page-geometry file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "cells",
				Aliases:  []string{"c"},
				Usage:    "Page-geometry JSON file (cells and ruling edges)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Scorer config JSON file (default: XDG config lookup)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Candidate list output path (default: stdout)",
			},
			verboseFlag(),
		},
		Action: runMerge,
	}
}

func runMerge(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("verbose"))

	config := loadScorerConfig(cmd.String("config"))

	data, err := os.ReadFile(cmd.String("cells"))
	if err != nil {
		return fmt.Errorf("failed to read page-geometry file: %w", err)
	}

	var page tablerecon.PageContext
	if err := sonic.Unmarshal(data, &page); err != nil {
		return fmt.Errorf("failed to parse page-geometry file: %w", err)
	}

	scorer := tablerecon.NewMergeScorer(config)
	candidates := scorer.Candidates(page.Cells, &page)
	slog.Debug("candidates scored", "cells", len(page.Cells), "merges", len(candidates))

	if candidates == nil {
		candidates = []tablerecon.MergeCandidate{}
	}
	out, err := sonic.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal candidates: %w", err)
	}

	if outputPath := cmd.String("output"); outputPath != "" {
		return os.WriteFile(outputPath, out, 0644)
	}
	fmt.Println(string(out))
	return nil
}

// loadScorerConfig resolves and loads the scorer configuration.
// A missing or malformed document never aborts the run: the scorer
// falls back to its built-in defaults and the failure is logged.
func loadScorerConfig(path string) tablerecon.PdfTableConfig {
	if path == "" {
		found, err := xdg.SearchConfigFile(defaultScorerConfigName)
		if err != nil {
			return tablerecon.DefaultPdfTableConfig()
		}
		path = found
	}

	config, err := tablerecon.LoadPdfTableConfig(path)
	if err != nil {
		slog.Warn("scorer config fallback", "error", err)
	}
	return config
}

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging",
	}
}

// setupLogging installs a text slog handler on stderr.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
