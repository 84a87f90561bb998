// Package xdd holds XML device description documents (XDD/XDC) and project
// files in memory and applies targeted mutations to them.
//
// A Document is an explicit handle around one parsed tree. Every mutation is
// addressed by a path expression, runs under the document's lock, and edits
// the tree in place: unrelated elements, attribute order, namespace prefixes
// and whitespace are left untouched, and a later mutation in the same
// document sees the result of an earlier one without a re-parse.
//
// # Match Semantics
//
// Bulk operations act on every match and treat zero matches as a no-op:
//
//	AddElement, AddElementAt, RemoveElement, SetAttribute
//
// Targeted operations act on the first match only and report ErrNoMatch when
// nothing matches:
//
//	UpdateAttribute, RemoveAttribute
//
// # Namespaces
//
// Path steps without a prefix match elements in any namespace. A Namespace
// with a non-empty URI additionally restricts matches to elements bound to
// that URI. Elements inserted by AddElement take the prefix of the parent
// they are attached to.
package xdd
