package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/purifier-protocol/purifier-go/pkg/log"
)

func TestFormatMessageEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sessionEvents()[1])
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.124456Z",
		"[conn:abc12345]",
		"IN  TRANSPORT Handshake",
		"Host: purifier.local (192.168.1.21)",
		"Request: PUT /di/v1/products/0/security",
		"Size: 340 bytes",
		"Duration: 12.000ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatEnvelopeEventListsParameters(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sessionEvents()[3])

	if !strings.Contains(buf.String(), "Parameters: pwr") {
		t.Errorf("expected parameter names, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Request:") {
		t.Errorf("envelope events have no request line, got:\n%s", buf.String())
	}
}

func TestFormatStateAndErrorEvents(t *testing.T) {
	events := sessionEvents()

	var buf bytes.Buffer
	formatEvent(&buf, events[2])
	if !strings.Contains(buf.String(), "DISCONNECTED -> CONNECTED") || !strings.Contains(buf.String(), "Reason: handshake complete") {
		t.Errorf("unexpected state output:\n%s", buf.String())
	}

	buf.Reset()
	formatEvent(&buf, events[6])
	if !strings.Contains(buf.String(), "TRANSPORT Error") {
		t.Errorf("expected error label, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Context: Write") {
		t.Errorf("expected context, got:\n%s", buf.String())
	}
}

func TestRunViewWithFilter(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	layer := log.LayerSession
	var buf bytes.Buffer
	if err := RunView(path, log.Filter{Layer: &layer}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	if n := strings.Count(buf.String(), "[conn:"); n != 1 {
		t.Errorf("expected 1 event, got %d:\n%s", n, buf.String())
	}
}

func TestRunViewMissingFile(t *testing.T) {
	if err := RunView("/nonexistent/file.plog", log.Filter{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{500, "0.500us"},
		{1_500_000, "1.500ms"},
		{2_000_000_000, "2.000s"},
	}
	for _, tt := range tests {
		if got := formatDuration(time.Duration(tt.in)); got != tt.want {
			t.Errorf("formatDuration(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
