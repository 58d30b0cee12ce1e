package session

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harrison/advisor/internal/models"
)

// LaunchPackage bundles a product run's outputs into a zip archive
// under the output directory: the launch summary, every non-empty side
// output, and a generated README manifest. Files whose content is
// empty or whitespace-only are omitted. Returns the archive path, or a
// *models.PersistenceError; on error the caller falls back to
// CombinedText so the result is never lost.
func (s *Store) LaunchPackage(res *models.RunResult, productName string, now time.Time) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", &models.PersistenceError{Path: s.outputDir, Err: err}
	}

	safe := safeProductName(productName)
	path := filepath.Join(s.outputDir, LaunchPackageName(productName, now))

	f, err := os.Create(path)
	if err != nil {
		return "", &models.PersistenceError{Path: path, Err: err}
	}

	zw := zip.NewWriter(f)
	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	err = write(fmt.Sprintf("launch_summary_%s.md", safe), res.Raw)
	if err == nil {
		for _, name := range sortedFileNames(res) {
			content := res.Files[name]
			if strings.TrimSpace(content) == "" {
				continue
			}
			if err = write(name, content); err != nil {
				break
			}
		}
	}
	if err == nil {
		err = write("README.md", launchManifest(safe, now))
	}
	if err == nil {
		err = zw.Close()
	} else {
		zw.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", &models.PersistenceError{Path: path, Err: err}
	}
	return path, nil
}

func sortedFileNames(res *models.RunResult) []string {
	names := make([]string, 0, len(res.Files))
	for name := range res.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func launchManifest(safe string, now time.Time) string {
	return fmt.Sprintf(`# Product Launch Package: %s

Generated: %s

## Contents:
- launch_summary_%s.md: Complete launch strategy overview
- market_research.json: Market analysis and competitor research
- content_plan.txt: Content marketing strategy
- outreach_report.md: PR and influencer outreach plan

This package was created by the advisor suite.
`, safe, now.Format("2006-01-02 15:04:05"), safe)
}

// CombinedText flattens a product run into a single text document,
// used when the zip archive cannot be written.
func CombinedText(res *models.RunResult, productName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Product Launch Package: %s\n\n## Launch Summary\n%s\n\n## Additional Files\n", safeProductName(productName), res.Raw)
	for _, name := range sortedFileNames(res) {
		content := res.Files[name]
		if content == "" {
			continue
		}
		fmt.Fprintf(&b, "\n\n### %s\n%s", name, content)
	}
	return b.String()
}
