package logger

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/harrison/advisor/internal/pipeline"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "warn")

	log.Debugf("hidden debug")
	log.Infof("hidden info")
	log.Warnf("visible warn")
	log.Errorf("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages leaked: %q", out)
	}
	if !strings.Contains(out, "visible warn") || !strings.Contains(out, "visible error") {
		t.Errorf("expected warn and error output, got: %q", out)
	}
}

func TestTimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	log.Infof("message with %d args", 2)

	line := buf.String()
	matched, err := regexp.MatchString(`^\[\d{2}:\d{2}:\d{2}\] \[INFO\] message with 2 args\n$`, line)
	if err != nil {
		t.Fatalf("regexp: %v", err)
	}
	if !matched {
		t.Errorf("unexpected log format: %q", line)
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "shouting")

	log.Debugf("debug hidden")
	log.Infof("info shown")

	out := buf.String()
	if strings.Contains(out, "debug hidden") {
		t.Errorf("debug leaked at default level: %q", out)
	}
	if !strings.Contains(out, "info shown") {
		t.Errorf("info missing at default level: %q", out)
	}
}

func TestNilWriterDiscards(t *testing.T) {
	log := NewConsoleLogger(nil, "debug")
	// Must not panic.
	log.Infof("into the void")
	log.Errorf("also discarded")
}

func TestNonTerminalWriterHasNoColorCodes(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	log.Errorf("plain output")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("ANSI codes written to non-terminal writer: %q", buf.String())
	}
}

func TestProgressSinkRendersEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := NewProgressSink(NewConsoleLogger(&buf, "info"))

	now := time.Now()
	sink.Handle(pipeline.Event{Type: pipeline.EventRunStarted, Pipeline: "web-researcher", RunID: "r-1", Total: 2, Time: now})
	sink.Handle(pipeline.Event{Type: pipeline.EventTaskStarted, Task: "primary_research", TaskNum: 1, Total: 2, Time: now})
	sink.Handle(pipeline.Event{Type: pipeline.EventTaskCompleted, Task: "primary_research", TaskNum: 1, Total: 2, Time: now})
	sink.Handle(pipeline.Event{Type: pipeline.EventTaskFailed, Task: "structure_analysis", TaskNum: 2, Total: 2, Err: errors.New("model unavailable"), Time: now})
	sink.Handle(pipeline.Event{Type: pipeline.EventRunFailed, Pipeline: "web-researcher", Err: errors.New("model unavailable"), Time: now})

	out := buf.String()
	for _, want := range []string{
		"starting web-researcher pipeline (2 tasks, run r-1)",
		"[1/2] primary_research running",
		"[1/2] primary_research completed",
		"[2/2] structure_analysis failed: model unavailable",
		"web-researcher pipeline failed: model unavailable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in progress output:\n%s", want, out)
		}
	}
}
