package xdd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
)

// Mutation errors.
var (
	ErrInvalidPath     = errors.New("invalid path expression")
	ErrNoMatch         = errors.New("path matched no element")
	ErrInvalidPosition = errors.New("invalid child position")
	ErrNilElement      = errors.New("nil element")
)

// Attr is an attribute to be written. Space is the namespace prefix, if any.
type Attr struct {
	Space string
	Key   string
	Value string
}

// FullKey returns the attribute name including its prefix.
func (a Attr) FullKey() string {
	if a.Space == "" {
		return a.Key
	}
	return a.Space + ":" + a.Key
}

// Tx applies mutations to a document whose lock is already held.
// A Tx is only valid inside the Batch callback that produced it.
type Tx struct {
	d *Document
}

// Find returns all elements matching path.
func (tx *Tx) Find(path string, ns Namespace) ([]*etree.Element, error) {
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPath, path, err)
	}

	matches := tx.d.tree.FindElementsPath(p)
	if ns.URI == "" {
		return matches, nil
	}

	filtered := matches[:0]
	for _, m := range matches {
		if m.NamespaceURI() == ns.URI {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// First returns the first element matching path, or ErrNoMatch.
func (tx *Tx) First(path string, ns Namespace) (*etree.Element, error) {
	matches, err := tx.Find(path, ns)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, path)
	}
	return matches[0], nil
}

// AddElement appends el as the last child of every element matching path and
// returns the number of parents modified. The first parent receives el itself,
// further parents receive copies. Each inserted element takes its parent's
// namespace prefix.
func (tx *Tx) AddElement(path string, ns Namespace, el *etree.Element) (int, error) {
	if el == nil {
		return 0, ErrNilElement
	}
	parents, err := tx.Find(path, ns)
	if err != nil {
		return 0, err
	}

	for i, parent := range parents {
		parent.AddChild(adopt(el, i, parent))
	}
	tx.logBulk("add element", path, len(parents))
	return len(parents), nil
}

// AddElementAt inserts el at the given position among the child elements of
// every element matching path. Position 0 inserts before the first child
// element and position n (the child element count) appends. A position
// outside [0, n] for any parent fails with ErrInvalidPosition and leaves the
// document unchanged.
func (tx *Tx) AddElementAt(path string, ns Namespace, el *etree.Element, position int) (int, error) {
	if el == nil {
		return 0, ErrNilElement
	}
	parents, err := tx.Find(path, ns)
	if err != nil {
		return 0, err
	}

	for _, parent := range parents {
		if n := len(parent.ChildElements()); position < 0 || position > n {
			return 0, fmt.Errorf("%w: %d not in [0, %d] under %s", ErrInvalidPosition, position, n, parent.GetPath())
		}
	}

	for i, parent := range parents {
		child := adopt(el, i, parent)
		children := parent.ChildElements()
		if position == len(children) {
			parent.AddChild(child)
		} else {
			parent.InsertChildAt(children[position].Index(), child)
		}
	}
	tx.logBulk("insert element", path, len(parents))
	return len(parents), nil
}

// RemoveElement detaches every element matching path and returns how many
// were removed. Removing nothing is not an error.
func (tx *Tx) RemoveElement(path string, ns Namespace) (int, error) {
	matches, err := tx.Find(path, ns)
	if err != nil {
		return 0, err
	}

	for _, m := range matches {
		if parent := m.Parent(); parent != nil {
			parent.RemoveChild(m)
		}
	}
	tx.logBulk("remove element", path, len(matches))
	return len(matches), nil
}

// RemoveWhere detaches the elements matching path that satisfy match and
// returns how many were removed.
func (tx *Tx) RemoveWhere(path string, ns Namespace, match func(*etree.Element) bool) (int, error) {
	candidates, err := tx.Find(path, ns)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, c := range candidates {
		if !match(c) {
			continue
		}
		if parent := c.Parent(); parent != nil {
			parent.RemoveChild(c)
			removed++
		}
	}
	tx.logBulk("remove element", path, removed)
	return removed, nil
}

// SetAttribute sets attr on every element matching path, inserting or
// overwriting it, and returns the number of elements touched.
func (tx *Tx) SetAttribute(path string, ns Namespace, attr Attr) (int, error) {
	matches, err := tx.Find(path, ns)
	if err != nil {
		return 0, err
	}

	for _, m := range matches {
		m.CreateAttr(attr.FullKey(), attr.Value)
	}
	tx.logBulk("set attribute", path, len(matches))
	return len(matches), nil
}

// UpdateAttribute sets attr on the first element matching path.
func (tx *Tx) UpdateAttribute(path string, ns Namespace, attr Attr) error {
	m, err := tx.First(path, ns)
	if err != nil {
		tx.d.logger.Warn("update attribute failed",
			slog.String("xpath", path),
			slog.String("attr", attr.FullKey()),
			slog.String("error", err.Error()))
		return err
	}
	m.CreateAttr(attr.FullKey(), attr.Value)
	return nil
}

// RemoveAttribute removes the named attribute from the first element matching
// path. A missing attribute on an existing element is not an error.
func (tx *Tx) RemoveAttribute(path string, ns Namespace, name string) error {
	m, err := tx.First(path, ns)
	if err != nil {
		tx.d.logger.Warn("remove attribute failed",
			slog.String("xpath", path),
			slog.String("attr", name),
			slog.String("error", err.Error()))
		return err
	}
	m.RemoveAttr(name)
	return nil
}

func (tx *Tx) logBulk(op, path string, matched int) {
	if matched == 0 {
		tx.d.logger.Debug(op+" matched no elements", slog.String("xpath", path))
	}
}

// adopt returns the element to insert under the i-th parent with the
// parent's namespace prefix applied.
func adopt(el *etree.Element, i int, parent *etree.Element) *etree.Element {
	child := el
	if i > 0 {
		child = el.Copy()
	}
	child.Space = parent.Space
	return child
}

// Find returns all elements matching path. The returned elements must only
// be read while no mutation runs concurrently.
func (d *Document) Find(path string, ns Namespace) ([]*etree.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return (&Tx{d: d}).Find(path, ns)
}

// Count returns the number of elements matching path.
func (d *Document) Count(path string, ns Namespace) (int, error) {
	matches, err := d.Find(path, ns)
	return len(matches), err
}

// AttrValue returns the value of the named attribute on the first element
// matching path. ok is false when the element or the attribute is missing.
func (d *Document) AttrValue(path string, ns Namespace, name string) (value string, ok bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	matches, err := (&Tx{d: d}).Find(path, ns)
	if err != nil || len(matches) == 0 {
		return "", false, err
	}
	a := matches[0].SelectAttr(name)
	if a == nil {
		return "", false, nil
	}
	return a.Value, true, nil
}

// AddElement appends el under every element matching path.
func (d *Document) AddElement(path string, ns Namespace, el *etree.Element) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return (&Tx{d: d}).AddElement(path, ns, el)
}

// AddElementAt inserts el at position under every element matching path.
func (d *Document) AddElementAt(path string, ns Namespace, el *etree.Element, position int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return (&Tx{d: d}).AddElementAt(path, ns, el, position)
}

// RemoveElement detaches every element matching path.
func (d *Document) RemoveElement(path string, ns Namespace) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return (&Tx{d: d}).RemoveElement(path, ns)
}

// SetAttribute sets attr on every element matching path.
func (d *Document) SetAttribute(path string, ns Namespace, attr Attr) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return (&Tx{d: d}).SetAttribute(path, ns, attr)
}

// UpdateAttribute sets attr on the first element matching path.
func (d *Document) UpdateAttribute(path string, ns Namespace, attr Attr) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return (&Tx{d: d}).UpdateAttribute(path, ns, attr)
}

// RemoveAttribute removes an attribute from the first element matching path.
func (d *Document) RemoveAttribute(path string, ns Namespace, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return (&Tx{d: d}).RemoveAttribute(path, ns, name)
}
