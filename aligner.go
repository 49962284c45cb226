package tablerecon

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config controls alignment behavior.
type Config struct {
	// NGramSize is the fingerprint substring length (default: 3)
	NGramSize int

	// PositionWeight scales the positional prior subtracted from the
	// similarity score (default: 0.15)
	PositionWeight float64

	// GapPenalty is the uniform cost of skipping a table on either
	// side during alignment (default: 0.08)
	GapPenalty float64

	// MatchThreshold is the minimum raw similarity for a matched pair
	// to classify as MATCH rather than WEAK_MATCH (default: 0.2)
	MatchThreshold float64

	// EnableMetricsLogging enables phase timing and statistics logging (default: false)
	EnableMetricsLogging bool
}

// DefaultConfig returns the default alignment configuration.
func DefaultConfig() Config {
	return Config{
		NGramSize:      DefaultNGramSize,
		PositionWeight: 0.15,
		GapPenalty:     0.08,
		MatchThreshold: 0.2,
	}
}

// AlignmentMetrics contains timing and statistics for one alignment run.
type AlignmentMetrics struct {
	TotalTime    time.Duration
	ParseTime    time.Duration
	ScoreTime    time.Duration
	AlignTime    time.Duration
	SourceTables int
	TargetTables int
}

// Alignment is the result of reconciling two table lists.
type Alignment struct {
	Rows    []MappingRow
	Metrics AlignmentMetrics
}

// MatchMap returns the minimal source→target ID map (MATCH rows only).
func (a *Alignment) MatchMap() map[string]string {
	return MatchMap(a.Rows)
}

// WriteReport writes the CSV mapping report to w.
func (a *Alignment) WriteReport(w io.Writer) error {
	return WriteReport(w, a.Rows)
}

// MarshalMapping serializes the MATCH-only ID map as JSON.
func (a *Alignment) MarshalMapping() ([]byte, error) {
	return MarshalMapping(a.MatchMap())
}

// StatusCounts returns the number of rows per classification.
func (a *Alignment) StatusCounts() map[MatchStatus]int {
	counts := make(map[MatchStatus]int)
	for _, row := range a.Rows {
		counts[row.Status]++
	}
	return counts
}

// Aligner reconciles table sequences from two renderings of the same
// document.
type Aligner struct {
	config Config
}

// NewAligner creates an aligner with default configuration.
func NewAligner() *Aligner {
	return &Aligner{config: DefaultConfig()}
}

// NewAlignerWithConfig creates an aligner with custom configuration.
func NewAlignerWithConfig(config Config) *Aligner {
	return &Aligner{config: config}
}

// AlignTexts aligns the tables of two annotated-text documents.
// Each invocation is synchronous and deterministic; the aligner holds
// no state across calls, so concurrent use needs no coordination.
func (a *Aligner) AlignTexts(source, target string) *Alignment {
	startTime := time.Now()

	parseStart := time.Now()
	sourceTables := ParseTablesN(source, a.config.NGramSize)
	targetTables := ParseTablesN(target, a.config.NGramSize)
	parseTime := time.Since(parseStart)

	scoreStart := time.Now()
	similarity := SimilarityMatrix(sourceTables, targetTables)
	score := applyPositionalPrior(similarity, a.config.PositionWeight)
	scoreTime := time.Since(scoreStart)

	alignStart := time.Now()
	pairs := AlignSequences(len(sourceTables), len(targetTables), score, a.config.GapPenalty)
	rows := ClassifyPairs(sourceTables, targetTables, pairs, similarity, a.config.MatchThreshold)
	alignTime := time.Since(alignStart)

	metrics := AlignmentMetrics{
		TotalTime:    time.Since(startTime),
		ParseTime:    parseTime,
		ScoreTime:    scoreTime,
		AlignTime:    alignTime,
		SourceTables: len(sourceTables),
		TargetTables: len(targetTables),
	}

	if a.config.EnableMetricsLogging {
		logAlignmentMetrics(metrics)
	}

	return &Alignment{Rows: rows, Metrics: metrics}
}

// AlignReaders aligns the tables of two annotated-text streams.
func (a *Aligner) AlignReaders(source, target io.Reader) (*Alignment, error) {
	sourceText, err := io.ReadAll(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read source document")
	}
	targetText, err := io.ReadAll(target)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read target document")
	}
	return a.AlignTexts(string(sourceText), string(targetText)), nil
}

// AlignFiles aligns the tables of two annotated-text files. A missing
// file is treated as an empty document: nothing to align is a valid
// terminal state. Any other read failure propagates wrapped.
func (a *Aligner) AlignFiles(sourcePath, targetPath string) (*Alignment, error) {
	sourceText, err := readDocument(sourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read source document %s", sourcePath)
	}
	targetText, err := readDocument(targetPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read target document %s", targetPath)
	}
	return a.AlignTexts(sourceText, targetText), nil
}

// readDocument reads an annotated-text file, mapping a missing file to
// an empty document.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// logAlignmentMetrics logs the run metrics in a readable format
func logAlignmentMetrics(metrics AlignmentMetrics) {
	log.Printf("Alignment completed in %v", metrics.TotalTime.Round(time.Microsecond))
	log.Printf("  Parse: %v (%d source / %d target tables)",
		metrics.ParseTime.Round(time.Microsecond), metrics.SourceTables, metrics.TargetTables)
	log.Printf("  Score: %v", metrics.ScoreTime.Round(time.Microsecond))
	log.Printf("  Align: %v", metrics.AlignTime.Round(time.Microsecond))
}
