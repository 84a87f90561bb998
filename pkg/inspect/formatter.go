package inspect

import (
	"fmt"
	"strings"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowFields lists every present field of an entry instead of one line.
	ShowFields bool

	// ShowMapping marks RPDO/TPDO mappable entries.
	ShowMapping bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowFields:  false,
		ShowMapping: true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatTree formats a node's dictionary, one line per entry.
func (f *Formatter) FormatTree(tree *NodeTree) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Node %d", tree.NodeID)
	if tree.Name != "" {
		fmt.Fprintf(&sb, " (%s)", tree.Name)
	}
	if tree.NetworkID != "" {
		fmt.Fprintf(&sb, " in %s", tree.NetworkID)
	}
	sb.WriteString("\n")

	if len(tree.Objects) == 0 {
		sb.WriteString(f.Indent(1, "(no objects)\n"))
		return sb.String()
	}
	for _, o := range tree.Objects {
		sb.WriteString(f.Indent(1, f.FormatEntryLine(o)))
		sb.WriteString("\n")
		for _, s := range o.SubObjects {
			sb.WriteString(f.Indent(2, f.FormatEntryLine(s)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FormatEntryLine formats an entry as a single line:
//
//	0x1006 NMT_CycleLen_U32 = 5000 [UNSIGNED32, rw] *
func (f *Formatter) FormatEntryLine(e EntryInfo) string {
	var sb strings.Builder
	sb.WriteString(e.ID)
	sb.WriteString(" ")
	sb.WriteString(e.Name)

	switch {
	case e.HasActual:
		sb.WriteString(" = " + FormatValue(e.Actual))
	case e.Default != "":
		sb.WriteString(" = " + FormatValue(e.Default) + " (default)")
	}

	var meta []string
	if e.DataType != "" {
		meta = append(meta, e.DataType)
	} else {
		meta = append(meta, e.ObjectType.String())
	}
	if a := e.Access.String(); a != "" {
		meta = append(meta, a)
	}
	if f.ShowMapping {
		if e.RPDO {
			meta = append(meta, "RPDO")
		}
		if e.TPDO {
			meta = append(meta, "TPDO")
		}
	}
	sb.WriteString(" [" + strings.Join(meta, ", ") + "]")

	if e.Forced {
		sb.WriteString(" forced")
	}
	if e.Editable {
		sb.WriteString(" *")
	}
	return sb.String()
}

// FormatEntry formats one entry with all of its fields, followed by its
// sub-objects.
func (f *Formatter) FormatEntry(e *EntryInfo) string {
	var sb strings.Builder
	sb.WriteString(e.Path + " " + e.Name + "\n")

	width := 0
	for _, fv := range e.Fields {
		if n := len(fv.Field.String()); n > width {
			width = n
		}
	}
	for _, fv := range e.Fields {
		sb.WriteString(f.Indent(1, fmt.Sprintf("%-*s  %s\n", width, fv.Field.String(), fv.Value)))
	}

	flags := []string{}
	if e.Editable {
		flags = append(flags, "editable")
	}
	if e.Forced {
		flags = append(flags, "forced")
	}
	if e.RPDO {
		flags = append(flags, "RPDO mappable")
	}
	if e.TPDO {
		flags = append(flags, "TPDO mappable")
	}
	if len(flags) > 0 {
		sb.WriteString(f.Indent(1, "("+strings.Join(flags, ", ")+")\n"))
	}

	for _, s := range e.SubObjects {
		if f.ShowFields {
			sub := s
			sb.WriteString(f.FormatEntry(&sub))
			continue
		}
		sb.WriteString(f.Indent(1, f.FormatEntryLine(s)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatValue quotes values that would be ambiguous when printed bare.
func FormatValue(v string) string {
	if v == "" || strings.TrimSpace(v) != v || strings.ContainsAny(v, " \t\n") {
		return fmt.Sprintf("%q", v)
	}
	return v
}
