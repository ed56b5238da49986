package client

import (
	"fmt"
	"math"
	"strings"

	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// Status is the air state with the well-known fields decoded. Fields the
// device did not report keep their zero value; Raw holds everything.
type Status struct {
	Power            bool
	FanSpeed         string
	Mode             string
	Brightness       int64
	Display          bool
	PollutionDisplay string
	ChildLock        bool
	PM25             int64
	AllergenIndex    int64
	Timer            int64
	TimerRemaining   int64
	ErrorCode        int64

	Raw *wire.Payload
}

var modeNames = map[string]string{
	"P": "anti-pollution",
	"A": "anti-allergen",
	"M": "manual",
	"B": "antivirus",
}

var fanSpeedNames = map[string]string{
	"s": "silent",
	"t": "turbo",
}

// ParseStatus decodes an air state payload. Unknown fields are ignored and
// fields of an unexpected type are treated as absent, as are numeric fields
// that are not whole numbers.
func ParseStatus(p *wire.Payload) *Status {
	return &Status{
		Power:            stringField(p, "pwr") == "1",
		FanSpeed:         stringField(p, "om"),
		Mode:             stringField(p, "mode"),
		Brightness:       intField(p, "aqil"),
		Display:          stringField(p, "uil") == "1",
		PollutionDisplay: stringField(p, "ddp"),
		ChildLock:        boolField(p, "cl"),
		PM25:             intField(p, "pm25"),
		AllergenIndex:    intField(p, "iaql"),
		Timer:            intField(p, "dt"),
		TimerRemaining:   intField(p, "dtrs"),
		ErrorCode:        intField(p, "err"),
		Raw:              p.Clone(),
	}
}

// ModeName returns the descriptive name of the mode, or the raw token.
func (s *Status) ModeName() string {
	if name, ok := modeNames[s.Mode]; ok {
		return name
	}
	return s.Mode
}

// FanSpeedName returns the descriptive fan speed.
func (s *Status) FanSpeedName() string {
	if name, ok := fanSpeedNames[s.FanSpeed]; ok {
		return name
	}
	return s.FanSpeed
}

// PollutionDisplayName returns which index the display shows.
func (s *Status) PollutionDisplayName() string {
	switch s.PollutionDisplay {
	case "0":
		return "pm2.5"
	case "1":
		return "IAI"
	default:
		return s.PollutionDisplay
	}
}

// String renders the status as aligned "label: value" lines.
func (s *Status) String() string {
	var b strings.Builder
	line := func(label string, value any) {
		fmt.Fprintf(&b, "%-18s %v\n", label+":", value)
	}
	line("power", onOff(s.Power))
	line("mode", s.ModeName())
	line("fan speed", s.FanSpeedName())
	line("brightness", s.Brightness)
	line("display", onOff(s.Display))
	line("pollution display", s.PollutionDisplayName())
	line("child lock", onOff(s.ChildLock))
	line("pm2.5", s.PM25)
	line("allergen index", s.AllergenIndex)
	line("timer", s.Timer)
	line("timer remaining", s.TimerRemaining)
	line("error code", s.ErrorCode)
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func stringField(p *wire.Payload, name string) string {
	v, _ := p.Get(name)
	s, _ := v.(string)
	return s
}

func boolField(p *wire.Payload, name string) bool {
	v, _ := p.Get(name)
	b, _ := v.(bool)
	return b
}

func intField(p *wire.Payload, name string) int64 {
	v, _ := p.Get(name)
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0
		}
		return int64(n)
	default:
		return 0
	}
}
