package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/purifier-protocol/purifier-go/pkg/log"
	"github.com/purifier-protocol/purifier-go/pkg/version"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

func TestCollect(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	stats, err := Collect(reader)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if stats.TotalEvents != 7 {
		t.Errorf("TotalEvents = %d, want 7", stats.TotalEvents)
	}
	if stats.EventsByLayer[log.LayerTransport] != 5 {
		t.Errorf("transport events = %d, want 5", stats.EventsByLayer[log.LayerTransport])
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if len(stats.Connections) != 1 {
		t.Errorf("Connections = %d, want 1", len(stats.Connections))
	}

	hs := stats.Operations[wire.OpHandshake]
	if hs == nil || hs.Requests != 1 || hs.Responses != 1 || hs.Failures != 0 {
		t.Fatalf("handshake stats = %+v", hs)
	}
	if hs.Mean() != 12*time.Millisecond {
		t.Errorf("handshake mean = %s", hs.Mean())
	}

	// The envelope event must not count as a round trip.
	wr := stats.Operations[wire.OpWrite]
	if wr == nil || wr.Requests != 1 || wr.Failures != 1 || wr.BytesSent != 24 {
		t.Errorf("write stats = %+v", wr)
	}
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 7",
		"Written by:   purifier-go " + version.Current,
		"ENVELOPE:",
		"Round Trips:",
		"Handshake:   1 sent, 1 received, 0 failed",
		"Connections: 1",
		"[abc12345] 7 events",
		"Host: purifier.local",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestOperationStatsMeanWithoutResponses(t *testing.T) {
	var o OperationStats
	if o.Mean() != 0 {
		t.Errorf("Mean() = %s, want 0", o.Mean())
	}
}
