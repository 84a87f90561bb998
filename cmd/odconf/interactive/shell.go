package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/openconfigurator/odconf-go/pkg/edit"
)

// Shell handles interactive mode for odconf.
type Shell struct {
	commands *Commands
	session  Session
	rl       *readline.Instance
}

// New creates a new interactive shell.
func New(session Session, prompt string) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{
		commands: NewCommands(session, rl.Stdout()),
		session:  session,
		rl:       rl,
	}, nil
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("list", readline.PcItem("-fields")),
		readline.PcItem("show"),
		readline.PcItem("set"),
		readline.PcItem("force"),
		readline.PcItem("unforce"),
		readline.PcItem("mappable", readline.PcItem("rpdo"), readline.PcItem("tpdo")),
		readline.PcItem("save"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop. Pending changes are saved on exit.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	fmt.Fprintln(s.rl.Stdout(), Help())

	for {
		select {
		case <-ctx.Done():
			return s.session.Save()
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return s.session.Save()
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprintln(s.rl.Stdout(), Help())
			fmt.Fprintln(s.rl.Stdout(), "\n  General:\n    help  - Show this help\n    quit  - Save and exit")
		case "quit", "exit", "q":
			return s.session.Save()
		default:
			if err := s.commands.Exec(ctx, cmd, args); err != nil {
				fmt.Fprintln(s.rl.Stdout(), FormatError(err))
			}
		}
	}
}

// FormatError renders a command error for the user. Validation failures show
// the engine message verbatim.
func FormatError(err error) string {
	var verr *edit.ValidationError
	switch {
	case errors.As(err, &verr):
		return "Rejected: " + verr.Message
	case errors.Is(err, edit.ErrNotEditable):
		return "Rejected: " + err.Error()
	case errors.Is(err, ErrUsage):
		return "Usage: " + strings.TrimPrefix(err.Error(), ErrUsage.Error()+": ")
	default:
		return "Error: " + err.Error()
	}
}
