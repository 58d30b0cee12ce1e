// Package session tracks the most recent run result per pipeline and
// handles exporting results to disk: individual report files, plain
// text variants, and the zipped launch package.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/advisor/internal/filelock"
	"github.com/harrison/advisor/internal/models"
)

const stampLayout = "20060102_150405"

// Store keeps one result slot per pipeline kind and owns the output
// directory reports are exported into. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	results   map[models.Kind]*models.RunResult
	outputDir string
}

func New(outputDir string) *Store {
	return &Store{
		results:   make(map[models.Kind]*models.RunResult),
		outputDir: outputDir,
	}
}

func (s *Store) OutputDir() string { return s.outputDir }

// Set records res as the latest result for its pipeline kind,
// replacing any previous one.
func (s *Store) Set(res *models.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.Kind] = res
}

// Latest returns the most recent result for kind, or nil if no run of
// that pipeline has completed this session.
func (s *Store) Latest(kind models.Kind) *models.RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[kind]
}

// Clear drops the stored result for kind.
func (s *Store) Clear(kind models.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, kind)
}

// SaveReport writes content to filename inside the output directory,
// creating the directory if needed. Writes are atomic so a crash never
// leaves a half-written report. Failures come back as a
// *models.PersistenceError; callers downgrade (skip the save, keep the
// in-memory result) rather than failing the run.
func (s *Store) SaveReport(filename, content string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", &models.PersistenceError{Path: s.outputDir, Err: err}
	}
	path := filepath.Join(s.outputDir, filename)
	if err := filelock.AtomicWrite(path, []byte(content)); err != nil {
		return "", &models.PersistenceError{Path: path, Err: err}
	}
	return path, nil
}

// SanitizeFilename reduces name to characters safe in a filename:
// letters, digits, underscore, and dash, capped at 50 bytes.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

// FinancialReportName builds the export filename for a financial
// analysis, keyed by income so reruns with different inputs do not
// collide within the same second.
func FinancialReportName(income float64, now time.Time) string {
	return fmt.Sprintf("financial_analysis_income_%.0f_%s.md", income, now.Format(stampLayout))
}

// ResearchReportName builds the export filename for a research report.
func ResearchReportName(topic string, now time.Time) string {
	safe := SanitizeFilename(topic)
	if safe == "" {
		safe = "research"
	}
	return fmt.Sprintf("research_%s_%s.md", safe, now.Format(stampLayout))
}

// LaunchSummaryName builds the export filename for a product launch
// summary.
func LaunchSummaryName(productName string, now time.Time) string {
	return fmt.Sprintf("launch_summary_%s_%s.md", safeProductName(productName), now.Format(stampLayout))
}

// LaunchPackageName builds the zip archive filename for a product
// launch package.
func LaunchPackageName(productName string, now time.Time) string {
	return fmt.Sprintf("launch_package_%s_%s.zip", safeProductName(productName), now.Format(stampLayout))
}

func safeProductName(name string) string {
	safe := SanitizeFilename(name)
	if safe == "" {
		safe = "product"
	}
	return safe
}

// TextVariantName maps a markdown export name to its plain-text
// counterpart.
func TextVariantName(mdName string) string {
	return strings.TrimSuffix(mdName, ".md") + ".txt"
}
