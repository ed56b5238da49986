package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/purifier-protocol/purifier-go/pkg/log"
	"github.com/purifier-protocol/purifier-go/pkg/version"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

var testTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

// sessionEvents is a connect followed by one write, as the client logs it.
func sessionEvents() []log.Event {
	rtt := 12 * time.Millisecond
	base := log.Event{ConnectionID: "abc12345-6789-0123-4567-890abcdef012", Host: "purifier.local", Address: "192.168.1.21"}
	at := func(i int, e log.Event) log.Event {
		e.ConnectionID, e.Host, e.Address = base.ConnectionID, base.Host, base.Address
		e.Timestamp = testTime.Add(time.Duration(i) * time.Millisecond)
		e.Version = version.Current
		return e
	}

	return []log.Event{
		at(0, log.Event{Direction: log.DirectionOut, Layer: log.LayerTransport, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Operation: wire.OpHandshake, Method: "PUT", Path: wire.PathSecurity, Size: 269}}),
		at(1, log.Event{Direction: log.DirectionIn, Layer: log.LayerTransport, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Operation: wire.OpHandshake, Method: "PUT", Path: wire.PathSecurity, Size: 340, Duration: &rtt}}),
		at(2, log.Event{Direction: log.DirectionIn, Layer: log.LayerSession, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "DISCONNECTED", NewState: "CONNECTED", Reason: "handshake complete"}}),
		at(3, log.Event{Direction: log.DirectionOut, Layer: log.LayerEnvelope, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Operation: wire.OpWrite, Size: 24, Parameters: []string{"pwr"}}}),
		at(4, log.Event{Direction: log.DirectionOut, Layer: log.LayerTransport, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Operation: wire.OpWrite, Method: "PUT", Path: wire.PathAir, Size: 24}}),
		at(5, log.Event{Direction: log.DirectionIn, Layer: log.LayerTransport, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Operation: wire.OpWrite, Method: "PUT", Path: wire.PathAir, StatusCode: 503, Duration: &rtt}}),
		at(6, log.Event{Direction: log.DirectionIn, Layer: log.LayerTransport, Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerTransport, Message: "PUT /di/v1/products/1/air: unexpected HTTP status 503", Context: "Write"}}),
	}
}
