// Command odconf inspects and edits the object dictionary of a POWERLINK
// device description (XDD/XDC).
//
// Every value change goes through the edit pipeline: the editability check,
// validation by the configuration engine, the in-memory update and, unless
// -persist=false, the actualValue attribute of the device description.
//
// Usage:
//
//	odconf [flags] <command> [args]
//
// Commands:
//
//	list [-fields]        List the object dictionary
//	show <path>           Show all fields of an entry
//	set <path> <value>    Propose a new actual value
//	force <path>          Mark an entry as forced in the project file
//	unforce <path>        Remove the forced mark
//	mappable [rpdo|tpdo]  List PDO mappable entries
//
// Flags:
//
//	-config string     Configuration file (default: odconf.yaml searched upwards)
//	-xdc string        Device description to load
//	-project string    Project file holding forced objects
//	-network string    Network (project) ID
//	-node uint         Node ID
//	-journal string    Edit journal (.odlog) to append to
//	-namespace string  Only load objects in this namespace URI
//	-log-level string  Log level: debug, info, warn, error
//	-persist           Write accepted values to the device description (default true)
//	-i                 Start the interactive shell
//
// Examples:
//
//	# List the dictionary of node 1
//	odconf -xdc node1.xdc list
//
//	# Change the cycle length and record the edit
//	odconf -xdc mn.xdc -node 240 -journal edits.odlog set 0x1006 10000
//
//	# Interactive session with a project file
//	odconf -config plant/odconf.yaml -project plant/project.xml -i
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openconfigurator/odconf-go/cmd/odconf/interactive"
	"github.com/openconfigurator/odconf-go/internal/config"
)

// Flags holds the command-line settings. Empty values leave the
// configuration file untouched.
type Flags struct {
	ConfigFile  string
	Interactive bool
	Persist     bool
	NodeID      uint
	Overrides   config.Config
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.Overrides.XDC, "xdc", "", "Device description (XDD/XDC) to load")
	flag.StringVar(&flags.Overrides.Project, "project", "", "Project file holding forced objects")
	flag.StringVar(&flags.Overrides.NetworkID, "network", "", "Network (project) ID")
	flag.UintVar(&flags.NodeID, "node", 0, "Node ID (1-254)")
	flag.StringVar(&flags.Overrides.Journal, "journal", "", "Edit journal (.odlog) to append to")
	flag.StringVar(&flags.Overrides.Namespace, "namespace", "", "Only load objects in this namespace URI")
	flag.StringVar(&flags.Overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&flags.Persist, "persist", true, "Write accepted values to the device description")
	flag.BoolVar(&flags.Interactive, "i", false, "Start the interactive shell")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: odconf [flags] <command> [args]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s\n", interactive.Help())
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, interactive.FormatError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogging(cfg.Level())

	if !flags.Interactive && flag.NArg() == 0 {
		flag.Usage()
		return fmt.Errorf("%w: odconf [flags] <command> [args]", interactive.ErrUsage)
	}

	s, err := openSession(cfg, logger)
	if err != nil {
		return err
	}
	for _, lerr := range s.node.LoadErrors() {
		logger.Warn("Object skipped while loading", "error", lerr)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flags.Interactive {
		shell, err := interactive.New(s, fmt.Sprintf("node %d> ", cfg.NodeID))
		if err != nil {
			return err
		}
		err = shell.Run(ctx)
		return joinClose(err, s)
	}

	cmds := interactive.NewCommands(s, os.Stdout)
	err = cmds.Exec(ctx, flag.Arg(0), flag.Args()[1:])
	return joinClose(err, s)
}

func joinClose(err error, s *session) error {
	if cerr := s.Close(); cerr != nil && err == nil {
		return cerr
	}
	return err
}

// loadConfig layers defaults, the configuration file and the flags.
func loadConfig() (*config.Config, error) {
	if flags.NodeID > 255 {
		return nil, fmt.Errorf("%w: got %d", config.ErrInvalidNodeID, flags.NodeID)
	}
	flags.Overrides.NodeID = uint8(flags.NodeID)

	cfg, err := config.NewLoader(nil).Load(flags.ConfigFile, &flags.Overrides)
	if err != nil {
		return nil, err
	}

	// Persist is only overridden when given on the command line.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "persist" {
			cfg.Persist = flags.Persist
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogging(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
