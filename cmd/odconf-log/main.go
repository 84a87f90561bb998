// Command odconf-log is a tool for viewing and analyzing odconf edit journals.
//
// Journals are written by odconf when started with -journal (or the journal
// key of the configuration file).
//
// Usage:
//
//	odconf-log <command> [flags] <file.odlog>
//
// Commands:
//
//	view     View journal in human-readable format
//	export   Export journal to JSON or CSV format
//	filter   Filter journal and write to new file
//	stats    Show statistics about the journal
//
// Examples:
//
//	# View all events
//	odconf-log view edits.odlog
//
//	# View rejected values for one object
//	odconf-log view -category rejection -index 0x1006 edits.odlog
//
//	# Export to CSV
//	odconf-log export -format csv -o edits.csv edits.odlog
//
//	# Keep only node 240 and save to new file
//	odconf-log filter -node 240 -o mn.odlog edits.odlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/openconfigurator/odconf-go/cmd/odconf-log/commands"
)

const usage = `odconf-log - odconf Edit Journal Analyzer

Usage:
  odconf-log <command> [flags] <file.odlog>

Commands:
  view     View journal in human-readable format
  export   Export journal to JSON or CSV format
  filter   Filter journal and write to new file
  stats    Show statistics about the journal

Use "odconf-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the shared filter flags on fs.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.TxID, "tx", "", "Filter by transaction ID")
	fs.StringVar(&opts.NetworkID, "network", "", "Filter by network ID")
	fs.StringVar(&opts.NodeID, "node", "", "Filter by node ID")
	fs.StringVar(&opts.Index, "index", "", "Filter by object index (e.g. 0x1006)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (edit, force, rejection, divergence, error)")
	fs.StringVar(&opts.Stage, "stage", "", "Filter by stage (editability, validation, model, document, project)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return opts
}

func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `odconf-log %s - %s

Usage:
  odconf-log %s [flags] <file.odlog>

Flags:
`, name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

// journalArg parses args and returns the journal path.
func journalArg(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: journal path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View journal in human-readable format")
	opts := filterFlags(fs)
	path := journalArg(fs, args)

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fatal(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export journal to JSON or CSV format")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	opts := filterFlags(fs)
	path := journalArg(fs, args)

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fatal(err)
	}
	if err := commands.RunExport(path, filter, *format, *output); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter journal and write to new file")
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path := journalArg(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fatal(err)
	}
	count, err := commands.RunFilter(path, filter, *output)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the journal")
	path := journalArg(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fatal(err)
	}
}
