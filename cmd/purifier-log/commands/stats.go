package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/purifier-protocol/purifier-go/pkg/log"
	"github.com/purifier-protocol/purifier-go/pkg/version"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Operations        map[wire.Operation]*OperationStats
	Connections       map[string]*ConnectionStats
	Versions          map[string]int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// OperationStats holds round-trip statistics for one operation.
type OperationStats struct {
	Requests   int
	Responses  int
	Failures   int
	TotalTime  time.Duration
	MaxTime    time.Duration
	BytesSent  int
	BytesRecvd int
}

// Mean returns the average round-trip time.
func (o *OperationStats) Mean() time.Duration {
	if o.Responses == 0 {
		return 0
	}
	return o.TotalTime / time.Duration(o.Responses)
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Host      string
	Address   string
}

// Collect reads every event and aggregates them.
func Collect(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Operations:        make(map[wire.Operation]*OperationStats),
		Connections:       make(map[string]*ConnectionStats),
		Versions:          make(map[string]int),
	}

	for event, err := range compatibleEvents(reader.Events()) {
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++
	if event.Version != "" {
		s.Versions[event.Version]++
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if conn.Host == "" {
		conn.Host, conn.Address = event.Host, event.Address
	}

	if event.Error != nil {
		s.Errors++
	}

	// Round trips are counted at the transport layer only.
	if m := event.Message; m != nil && event.Layer == log.LayerTransport {
		op, ok := s.Operations[m.Operation]
		if !ok {
			op = &OperationStats{}
			s.Operations[m.Operation] = op
		}
		switch event.Direction {
		case log.DirectionOut:
			op.Requests++
			op.BytesSent += m.Size
		case log.DirectionIn:
			op.Responses++
			op.BytesRecvd += m.Size
			if m.StatusCode >= 300 {
				op.Failures++
			}
			if m.Duration != nil {
				op.TotalTime += *m.Duration
				op.MaxTime = max(op.MaxTime, *m.Duration)
			}
		}
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := Collect(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Purifier Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	if len(stats.Versions) > 0 {
		versions := make([]string, 0, len(stats.Versions))
		for v := range stats.Versions {
			versions = append(versions, v)
		}
		sort.Strings(versions)
		fmt.Fprintf(w, "Written by:   %s %s\n", version.Product, strings.Join(versions, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerEnvelope, log.LayerSession} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Operations) > 0 {
		fmt.Fprintln(w, "Round Trips:")
		for _, o := range []wire.Operation{wire.OpHandshake, wire.OpRead, wire.OpWrite, wire.OpNetwork} {
			op, ok := stats.Operations[o]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-12s %d sent, %d received, %d failed, mean %s, max %s\n",
				o.String()+":", op.Requests, op.Responses, op.Failures,
				formatDuration(op.Mean()), formatDuration(op.MaxTime))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		sort.Slice(conns, func(i, j int) bool {
			return conns[i].stats.FirstSeen.Before(conns[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range conns {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(c.id), c.stats.Events, duration)
			if c.stats.Host != "" {
				fmt.Fprintf(w, "           Host: %s\n", c.stats.Host)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
