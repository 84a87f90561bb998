// Package interactive provides the command set of odconf, both for one-shot
// invocations and for the interactive shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openconfigurator/odconf-go/pkg/edit"
	"github.com/openconfigurator/odconf-go/pkg/inspect"
	"github.com/openconfigurator/odconf-go/pkg/model"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage")

// ErrUnknownCommand is returned for commands that do not exist.
var ErrUnknownCommand = errors.New("unknown command")

// Session is what the commands operate on. It allows the command layer to
// reach the loaded node without depending on the main package.
type Session interface {
	// Inspector returns the inspector of the loaded node.
	Inspector() *inspect.Inspector

	// Persist reports whether accepted values go to the device description.
	Persist() bool

	// MarkDirty records an in-memory change of the device description.
	MarkDirty()

	// Save writes pending changes.
	Save() error
}

// Commands executes odconf commands against a session.
type Commands struct {
	session   Session
	formatter *inspect.Formatter
	out       io.Writer
}

// NewCommands creates a command runner writing its output to out.
func NewCommands(session Session, out io.Writer) *Commands {
	return &Commands{
		session:   session,
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// SetOutput redirects command output.
func (c *Commands) SetOutput(out io.Writer) {
	c.out = out
}

// Exec runs one command.
func (c *Commands) Exec(ctx context.Context, cmd string, args []string) error {
	switch strings.ToLower(cmd) {
	case "list", "ls", "l":
		return c.cmdList(args)
	case "show", "s":
		return c.cmdShow(args)
	case "set", "w":
		return c.cmdSet(ctx, args)
	case "force":
		return c.cmdForce(ctx, args, true)
	case "unforce":
		return c.cmdForce(ctx, args, false)
	case "mappable", "pdo":
		return c.cmdMappable(args)
	case "save":
		return c.session.Save()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (c *Commands) cmdList(args []string) error {
	saved := c.formatter.ShowFields
	defer func() { c.formatter.ShowFields = saved }()

	for _, a := range args {
		switch a {
		case "-fields", "--fields", "-v":
			c.formatter.ShowFields = true
		default:
			return fmt.Errorf("%w: list [-fields]", ErrUsage)
		}
	}

	tree := c.session.Inspector().InspectNode()
	if !c.formatter.ShowFields {
		fmt.Fprint(c.out, c.formatter.FormatTree(tree))
		return nil
	}
	for i := range tree.Objects {
		fmt.Fprint(c.out, c.formatter.FormatEntry(&tree.Objects[i]))
	}
	return nil
}

func (c *Commands) cmdShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <path>", ErrUsage)
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		return err
	}
	info, err := c.session.Inspector().ReadEntry(path)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, c.formatter.FormatEntry(info))
	return nil
}

func (c *Commands) cmdSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: set <path> <value>", ErrUsage)
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		return err
	}

	// Values may contain spaces; quotes around the whole value are dropped.
	value := strings.Join(args[1:], " ")
	value = strings.Trim(value, "\"'")

	persist := c.session.Persist()
	err = c.session.Inspector().WriteActualValue(ctx, path, value, persist)

	var diverged *edit.DivergenceError
	switch {
	case err == nil:
	case errors.As(err, &diverged):
		// The model holds the value but the file does not.
		fmt.Fprintf(c.out, "WARNING: %s set in memory only: %v\n", path.String(), diverged.Err)
		return err
	default:
		return err
	}

	if persist {
		c.session.MarkDirty()
	}
	fmt.Fprintf(c.out, "%s = %s\n", path.String(), inspect.FormatValue(value))
	return nil
}

func (c *Commands) cmdForce(ctx context.Context, args []string, force bool) error {
	if len(args) != 1 {
		name := "force"
		if !force {
			name = "unforce"
		}
		return fmt.Errorf("%w: %s <path>", ErrUsage, name)
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		return err
	}
	if err := c.session.Inspector().SetForced(ctx, path, force, c.session.Persist()); err != nil {
		return err
	}

	state := "forced"
	if !force {
		state = "unforced"
	}
	fmt.Fprintf(c.out, "%s %s\n", path.String(), state)
	return nil
}

func (c *Commands) cmdMappable(args []string) error {
	dict := c.session.Inspector().Node().Dictionary()

	kinds := []string{"rpdo", "tpdo"}
	if len(args) == 1 {
		kinds = []string{strings.ToLower(args[0])}
	} else if len(args) > 1 {
		return fmt.Errorf("%w: mappable [rpdo|tpdo]", ErrUsage)
	}

	for _, kind := range kinds {
		var (
			objects []*model.Object
			subs    func(*model.Object) []*model.SubObject
			self    func(*model.Object) bool
		)
		switch kind {
		case "rpdo":
			objects = dict.RpdoMappableObjects()
			subs = (*model.Object).RpdoMappableSubObjects
			self = (*model.Object).IsRpdoMappable
		case "tpdo":
			objects = dict.TpdoMappableObjects()
			subs = (*model.Object).TpdoMappableSubObjects
			self = (*model.Object).IsTpdoMappable
		default:
			return fmt.Errorf("%w: mappable [rpdo|tpdo]", ErrUsage)
		}

		fmt.Fprintf(c.out, "%s mappable:\n", strings.ToUpper(kind))
		if len(objects) == 0 {
			fmt.Fprintln(c.out, c.formatter.Indent(1, "(none)"))
		}
		for _, o := range objects {
			line := o.Text()
			if !self(o) {
				line += " (sub-objects only)"
			}
			fmt.Fprintln(c.out, c.formatter.Indent(1, line))
			for _, s := range subs(o) {
				fmt.Fprintln(c.out, c.formatter.Indent(2, s.Text()))
			}
		}
	}
	return nil
}

// Help returns the command overview.
func Help() string {
	return `odconf Commands:
  Inspection:
    list [-fields]        - List the object dictionary
    show <path>           - Show all fields of an object or sub-object
    mappable [rpdo|tpdo]  - List PDO mappable objects and sub-objects

  Editing:
    set <path> <value>    - Propose a new actual value
    force <path>          - Mark an object as forced in the project
    unforce <path>        - Remove the forced mark
    save                  - Write pending changes to the device description

  Path Format:
    index[/subindex] - e.g. 0x1006, 0x1F81/0x01, 4102/1
    name[/subindex]  - e.g. NMT_CycleLen_U32`
}
