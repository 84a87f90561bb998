// Package edit implements the actual value edit pipeline.
//
// A proposal runs these steps, all under a per-entry edit lock so that two
// edits of the same entry never interleave:
//
//  1. Editability check. Non-editable entries are rejected with ErrNotEditable.
//  2. Validation. The configuration engine validates and applies the value.
//     A failed result is returned as *ValidationError carrying the engine's
//     message unchanged.
//  3. Model update. The entry's actual value is replaced.
//  4. Document update. If persist is set, the actualValue attribute of the
//     entry's element is written.
//
// Steps 3 and 4 run under the entry's write lock, so readers of the actual
// value block for that span only. The document lock is taken after the entry
// lock and only around the attribute write; the validator is called with no
// document lock held.
//
// A document failure after step 3 is a *DivergenceError: the model holds the
// new value while the document does not.
package edit
