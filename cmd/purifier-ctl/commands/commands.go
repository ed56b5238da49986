// Package commands implements the purifier-ctl commands. Each command
// writes its result to an io.Writer so the CLI and the shell share them.
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/purifier-protocol/purifier-go/pkg/client"
	"github.com/purifier-protocol/purifier-go/pkg/schema"
	"github.com/purifier-protocol/purifier-go/pkg/wire"
)

// RunGet prints the air state, or only the named fields.
func RunGet(ctx context.Context, s *client.Session, names []string, w io.Writer) error {
	data, err := s.Get(ctx, names...)
	if err != nil {
		return err
	}
	return WriteJSON(w, data)
}

// RunStatus prints a human-readable summary of the air state.
func RunStatus(ctx context.Context, s *client.Session, w io.Writer) error {
	st, err := s.Status(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, st.String())
	return err
}

// RunSet parses name=value arguments, writes them and prints the state the
// device echoes back. Nothing is sent if any argument is rejected.
func RunSet(ctx context.Context, s *client.Session, args []string, w io.Writer) error {
	params, err := ParseAssignments(args)
	if err != nil {
		return err
	}
	data, err := s.Set(ctx, params)
	if err != nil {
		return err
	}
	return WriteJSON(w, data)
}

// RunNetwork prints the network settings.
func RunNetwork(ctx context.Context, s *client.Session, w io.Writer) error {
	data, err := s.Network(ctx)
	if err != nil {
		return err
	}
	return WriteJSON(w, data)
}

// RunParams prints the parameter schema.
func RunParams(w io.Writer) error {
	for _, p := range schema.Parameters() {
		if _, err := fmt.Fprintf(w, "  %-5s %-22s %s\n", p.Name, p.Domain, p.Description); err != nil {
			return err
		}
	}
	return nil
}

// ParseAssignments turns name=value arguments into a payload, in argument
// order. Values are typed by the schema: aqil=50 is an integer, pwr=1 the
// token "1".
func ParseAssignments(args []string) (*wire.Payload, error) {
	if len(args) == 0 {
		return nil, schema.ErrNoParametersProvided
	}

	params := wire.NewPayload()
	for _, arg := range args {
		name, text, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument %q: expected name=value", arg)
		}
		v, err := schema.ParseValue(name, text)
		if err != nil {
			return nil, err
		}
		params.Set(name, v)
	}
	return params, nil
}

// WriteJSON writes p as indented JSON, keeping field order.
func WriteJSON(w io.Writer, p *wire.Payload) error {
	data, err := p.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}
