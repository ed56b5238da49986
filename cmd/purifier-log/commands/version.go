package commands

import (
	"errors"
	"fmt"
	"iter"

	"github.com/purifier-protocol/purifier-go/pkg/log"
	"github.com/purifier-protocol/purifier-go/pkg/version"
)

// ErrIncompatibleLog is returned for events written by a library with a
// different major version.
var ErrIncompatibleLog = errors.New("incompatible log version")

// checkVersion accepts events without a version stamp and events from any
// library sharing this one's major version.
func checkVersion(recorded string) error {
	if recorded == "" {
		return nil
	}
	v, err := version.Parse(recorded)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatibleLog, err)
	}
	if current := version.CurrentVersion(); !current.Compatible(v) {
		return fmt.Errorf("%w: written by %s %s, reader is %s", ErrIncompatibleLog, version.Product, v, current)
	}
	return nil
}

// compatibleEvents stops at the first event whose version fails checkVersion.
func compatibleEvents(seq iter.Seq2[log.Event, error]) iter.Seq2[log.Event, error] {
	return func(yield func(log.Event, error) bool) {
		for event, err := range seq {
			if err == nil {
				err = checkVersion(event.Version)
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}
