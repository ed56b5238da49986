package client

import (
	"time"

	"github.com/purifier-protocol/purifier-go/pkg/log"
	"github.com/purifier-protocol/purifier-go/pkg/version"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Protocol events carry sizes, status codes and parameter names only.
// Keys and decrypted values never reach the protocol log.

func (s *Session) event(connID string, dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    dir,
		Layer:        layer,
		Category:     cat,
		Host:         s.host,
		Address:      s.addr,
		Version:      version.Current,
	}
}

func (s *Session) logRequest(connID string, op wire.Operation, size int) {
	if s.plog == nil {
		return
	}
	ev := s.event(connID, log.DirectionOut, log.LayerTransport, log.CategoryMessage)
	ev.Message = &log.MessageEvent{
		Operation: op,
		Method:    op.Method(),
		Path:      op.Path(),
		Size:      size,
	}
	s.plog.Log(ev)
}

func (s *Session) logResponse(connID string, op wire.Operation, size, status int, elapsed time.Duration) {
	if s.plog == nil {
		return
	}
	ev := s.event(connID, log.DirectionIn, log.LayerTransport, log.CategoryMessage)
	ev.Message = &log.MessageEvent{
		Operation:  op,
		Method:     op.Method(),
		Path:       op.Path(),
		Size:       size,
		StatusCode: status,
		Duration:   &elapsed,
	}
	s.plog.Log(ev)
}

func (s *Session) logEnvelope(dir log.Direction, op wire.Operation, size int, p *wire.Payload) {
	if s.plog == nil {
		return
	}
	ev := s.event(s.connID, dir, log.LayerEnvelope, log.CategoryMessage)
	ev.Message = &log.MessageEvent{
		Operation:  op,
		Size:       size,
		Parameters: p.Keys(),
	}
	s.plog.Log(ev)
}

func (s *Session) logState(old, state State, reason string) {
	if s.plog == nil {
		return
	}
	ev := s.event(s.connID, log.DirectionIn, log.LayerSession, log.CategoryState)
	ev.StateChange = &log.StateChangeEvent{
		OldState: old.String(),
		NewState: state.String(),
		Reason:   reason,
	}
	s.plog.Log(ev)
}

func (s *Session) logError(connID string, layer log.Layer, err error, context string) {
	if s.plog == nil {
		return
	}
	ev := s.event(connID, log.DirectionIn, layer, log.CategoryError)
	ev.Error = &log.ErrorEventData{
		Layer:   layer,
		Message: err.Error(),
		Context: context,
	}
	s.plog.Log(ev)
}
