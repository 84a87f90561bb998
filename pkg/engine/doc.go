// Package engine defines the contract between the object dictionary editor
// and the configuration engine that validates and applies values.
//
// The editor calls a Validator with the network ID, node ID, index, optional
// sub-index and the proposed value. A Result with CodeSuccess accepts the
// value; any other code rejects it, and the editor surfaces ErrorMessage to
// the user unchanged.
//
// Local is a self-contained Validator that checks values against the data
// type and limits of the entry in a model.Network. It is used by the command
// line tools when no external engine is attached.
package engine
