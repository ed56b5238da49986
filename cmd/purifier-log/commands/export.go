package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/purifier-protocol/purifier-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

// jsonEvent is the JSONL representation of an event, with enums as names.
type jsonEvent struct {
	Timestamp    string       `json:"timestamp"`
	ConnectionID string       `json:"connection_id"`
	Direction    string       `json:"direction"`
	Layer        string       `json:"layer"`
	Category     string       `json:"category"`
	Host         string       `json:"host,omitempty"`
	Address      string       `json:"address,omitempty"`
	Version      string       `json:"version,omitempty"`
	Message      *jsonMessage `json:"message,omitempty"`
	StateChange  *jsonState   `json:"state_change,omitempty"`
	Error        *jsonError   `json:"error,omitempty"`
}

type jsonMessage struct {
	Operation  string   `json:"operation"`
	Method     string   `json:"method,omitempty"`
	Path       string   `json:"path,omitempty"`
	Size       int      `json:"size"`
	StatusCode int      `json:"status_code,omitempty"`
	DurationNs *int64   `json:"duration_ns,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
}

type jsonState struct {
	OldState string `json:"old_state,omitempty"`
	NewState string `json:"new_state"`
	Reason   string `json:"reason,omitempty"`
}

type jsonError struct {
	Layer   string `json:"layer"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

func toJSONEvent(e log.Event) jsonEvent {
	out := jsonEvent{
		Timestamp:    e.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		ConnectionID: e.ConnectionID,
		Direction:    e.Direction.String(),
		Layer:        e.Layer.String(),
		Category:     e.Category.String(),
		Host:         e.Host,
		Address:      e.Address,
		Version:      e.Version,
	}
	if m := e.Message; m != nil {
		out.Message = &jsonMessage{
			Operation:  m.Operation.String(),
			Method:     m.Method,
			Path:       m.Path,
			Size:       m.Size,
			StatusCode: m.StatusCode,
			Parameters: m.Parameters,
		}
		if m.Duration != nil {
			ns := m.Duration.Nanoseconds()
			out.Message.DurationNs = &ns
		}
	}
	if sc := e.StateChange; sc != nil {
		out.StateChange = &jsonState{OldState: sc.OldState, NewState: sc.NewState, Reason: sc.Reason}
	}
	if e.Error != nil {
		out.Error = &jsonError{Layer: e.Error.Layer.String(), Message: e.Error.Message, Context: e.Error.Context}
	}
	return out
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for event, err := range compatibleEvents(reader.Events()) {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSONEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "connection_id", "direction", "layer", "category", "host", "type", "size", "status", "duration_ns", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for event, err := range compatibleEvents(reader.Events()) {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var size, status, duration, detail string
		switch {
		case event.Message != nil:
			m := event.Message
			size = strconv.Itoa(m.Size)
			if m.StatusCode != 0 {
				status = strconv.Itoa(m.StatusCode)
			}
			if m.Duration != nil {
				duration = strconv.FormatInt(m.Duration.Nanoseconds(), 10)
			}
			detail = strings.Join(m.Parameters, " ")
		case event.StateChange != nil:
			detail = event.StateChange.NewState
		case event.Error != nil:
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.ConnectionID,
			event.Direction.String(),
			event.Layer.String(),
			event.Category.String(),
			event.Host,
			strings.ToLower(eventLabel(event)),
			size,
			status,
			duration,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
