// Package annotation normalizes free-text cell-type labels into a canonical
// two-field vocabulary: a coarse annotation (e.g. "t_cells") and an optional
// subannotation (e.g. "natural_killer_cells").
//
// # Pipeline
//
// Clean runs four stages over a RecordSet, in order:
//
//  1. Normalize every field (lowercase, trim, underscore-delimit).
//  2. Look up the tissue's RuleSet in the registry.
//  3. Apply the rule set's Steps sequentially; later steps see the
//     results of earlier ones.
//  4. Finalize: pluralize, re-normalize, and re-route natural killer cells
//     under "t_cells".
//
// An unknown tissue runs no tissue-specific steps; stages 1 and 4 still
// apply.
//
// # Rule Registration
//
// Rule sets register themselves from init() functions. Import the tissue
// catalogue with a blank identifier:
//
//	import _ "github.com/czbiohub-sf/maca/pkg/annotation/tissues"
//
// # Steps
//
// A Step is one of:
//   - Replace: substring, pattern or whole-value replacement in one field
//   - ExtractSplit: regexp named groups written into one or both fields
//   - Set: conditional overwrite of one or both fields
//   - Move: copy (or swap) between the two fields
//   - DropColumn: remove a non-semantic passthrough column
//
// Every step may be restricted to the rows matched by a Predicate.
// Missing and non-text values never match a text predicate.
package annotation
