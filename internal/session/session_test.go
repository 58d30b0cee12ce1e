package session

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/advisor/internal/models"
)

var exportNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestStoreLatestPerKind(t *testing.T) {
	s := New(t.TempDir())

	assert.Nil(t, s.Latest(models.KindFinancial))

	first := &models.RunResult{RunID: "a", Kind: models.KindFinancial, Raw: "v1"}
	second := &models.RunResult{RunID: "b", Kind: models.KindFinancial, Raw: "v2"}
	research := &models.RunResult{RunID: "c", Kind: models.KindResearch, Raw: "r"}

	s.Set(first)
	s.Set(research)
	s.Set(second)

	assert.Equal(t, "v2", s.Latest(models.KindFinancial).Raw)
	assert.Equal(t, "r", s.Latest(models.KindResearch).Raw)
	assert.Nil(t, s.Latest(models.KindProduct))

	s.Clear(models.KindFinancial)
	assert.Nil(t, s.Latest(models.KindFinancial))
}

func TestSaveReportCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	s := New(dir)

	path, err := s.SaveReport("report.md", "# hello\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(data))
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestSaveReportFailureIsPersistenceError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind as root")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	s := New(filepath.Join(dir, "blocked"))
	_, err := s.SaveReport("report.md", "content")

	var perr *models.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Path)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Smart Thermostat 2.0":      "SmartThermostat20",
		"../../etc/passwd":          "etcpasswd",
		"already_safe-name":         "already_safe-name",
		"":                          "",
		strings.Repeat("a", 80):     strings.Repeat("a", 50),
		"topic: with / separators!": "topicwithseparators",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestExportNames(t *testing.T) {
	assert.Equal(t, "financial_analysis_income_5000_20260314_093000.md", FinancialReportName(5000, exportNow))
	assert.Equal(t, "research_quantum_20260314_093000.md", ResearchReportName("quantum", exportNow))
	assert.Equal(t, "research_research_20260314_093000.md", ResearchReportName("???", exportNow))
	assert.Equal(t, "launch_summary_Widget_20260314_093000.md", LaunchSummaryName("Widget", exportNow))
	assert.Equal(t, "launch_package_product_20260314_093000.zip", LaunchPackageName("", exportNow))
	assert.Equal(t, "report_20260314.txt", TextVariantName("report_20260314.md"))
}

func TestLaunchPackageArchiveContents(t *testing.T) {
	s := New(t.TempDir())
	res := &models.RunResult{
		RunID: "run-1",
		Kind:  models.KindProduct,
		Raw:   "the launch plan",
		Files: map[string]string{
			"market_research.json": `{"key_findings":"x"}`,
			"content_plan.txt":     "plan body",
			"outreach_report.md":   "   \n\t",
		},
	}

	path, err := s.LaunchPackage(res, "Widget Pro", exportNow)
	require.NoError(t, err)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	got := map[string]string{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		got[zf.Name] = string(data)
	}

	// Two non-empty side outputs plus summary plus manifest; the
	// whitespace-only outreach report is omitted.
	require.Len(t, got, 4)
	assert.Equal(t, "the launch plan", got["launch_summary_WidgetPro.md"])
	assert.Equal(t, `{"key_findings":"x"}`, got["market_research.json"])
	assert.Equal(t, "plan body", got["content_plan.txt"])
	assert.Contains(t, got["README.md"], "# Product Launch Package: WidgetPro")
	assert.NotContains(t, got, "outreach_report.md")
}

func TestLaunchPackageFailureCleansUp(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind as root")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	s := New(filepath.Join(dir, "blocked"))
	_, err := s.LaunchPackage(&models.RunResult{Kind: models.KindProduct, Raw: "x"}, "p", exportNow)

	var perr *models.PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestCombinedTextFallback(t *testing.T) {
	res := &models.RunResult{
		Raw: "summary text",
		Files: map[string]string{
			"content_plan.txt": "plan",
			"empty.md":         "",
		},
	}
	out := CombinedText(res, "Widget")

	assert.Contains(t, out, "# Product Launch Package: Widget")
	assert.Contains(t, out, "summary text")
	assert.Contains(t, out, "### content_plan.txt\nplan")
	assert.NotContains(t, out, "empty.md")
}
