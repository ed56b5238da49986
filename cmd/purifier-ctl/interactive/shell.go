// Package interactive provides the interactive shell of purifier-ctl.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/purifier-protocol/purifier-go/cmd/purifier-ctl/commands"
	"github.com/purifier-protocol/purifier-go/pkg/client"
	"github.com/purifier-protocol/purifier-go/pkg/schema"
)

// Shell runs purifier commands against one session.
type Shell struct {
	session *client.Session
	out     io.Writer
}

// New creates a shell writing to out.
func New(session *client.Session, out io.Writer) *Shell {
	return &Shell{session: session, out: out}
}

// Run reads commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if quit := s.Execute(ctx, line); quit {
			return nil
		}
		rl.SetPrompt(s.prompt())
	}
}

// Execute runs one command line and reports whether the shell should exit.
// Errors are printed, not returned.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()

	case "connect", "c":
		err = s.cmdConnect(ctx, args)

	case "disconnect":
		s.session.Disconnect()
		fmt.Fprintln(s.out, "Disconnected")

	case "get", "g":
		err = commands.RunGet(ctx, s.session, args, s.out)

	case "set", "s":
		err = commands.RunSet(ctx, s.session, args, s.out)

	case "network", "net":
		err = commands.RunNetwork(ctx, s.session, s.out)

	case "status", "st":
		err = commands.RunStatus(ctx, s.session, s.out)

	case "params", "p":
		err = commands.RunParams(s.out)

	case "info":
		s.cmdInfo()

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) cmdConnect(ctx context.Context, args []string) error {
	host := ""
	if len(args) > 0 {
		host = args[0]
	}
	if err := s.session.Connect(ctx, host); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Connected to %s (%s)\n", s.session.Host(), s.session.Address())
	return nil
}

func (s *Shell) cmdInfo() {
	fmt.Fprintf(s.out, "State:      %s\n", s.session.State())
	fmt.Fprintf(s.out, "Host:       %s\n", s.session.Host())
	fmt.Fprintf(s.out, "Address:    %s\n", s.session.Address())
	if id := s.session.ConnectionID(); id != "" {
		fmt.Fprintf(s.out, "Connection: %s\n", id)
	}
}

func (s *Shell) prompt() string {
	if s.session.State() == client.StateConnected {
		return "purifier[" + s.session.Host() + "]> "
	}
	return "purifier> "
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Purifier Commands:
  Session:
    connect [host]       - Run the handshake (default: configured host)
    disconnect           - Drop the session key
    info                 - Show session state

  Device:
    get [names...]       - Read the air state (optionally only some fields)
    set name=value...    - Write parameters and show the echoed state
    status               - Show a readable status summary
    network              - Show network settings
    params               - List settable parameters

  General:
    help                 - Show this help
    quit                 - Exit shell`)
}

func completer() *readline.PrefixCompleter {
	names := func(string) []string { return schema.Names() }
	assignments := func(string) []string {
		var out []string
		for _, name := range schema.Names() {
			out = append(out, name+"=")
		}
		return out
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("info"),
		readline.PcItem("get", readline.PcItemDynamic(names)),
		readline.PcItem("set", readline.PcItemDynamic(assignments)),
		readline.PcItem("status"),
		readline.PcItem("network"),
		readline.PcItem("params"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
