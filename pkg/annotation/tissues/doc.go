// Package tissues provides the per-tissue annotation rule sets.
//
// Every rule set is written against normalized labels (lowercase,
// underscore-delimited), since the normalizer runs before any tissue step.
// Rules must also be no-ops on their own canonical output so that cleaning
// an already cleaned record set changes nothing.
//
// To register all rule sets with the annotation registry, import this
// package with a blank identifier:
//
//	import _ "github.com/czbiohub-sf/maca/pkg/annotation/tissues"
package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

const (
	ann = annotation.Annotation
	sub = annotation.Subannotation
)

// naturalKiller re-routes the selected rows to natural killer T cells.
func naturalKiller(where annotation.Predicate) annotation.Step {
	return annotation.Set(where,
		annotation.To(ann, "t_cells"),
		annotation.To(sub, "natural_killer_cells"),
	)
}

// raw selects annotations the finalizer has not pluralized yet. Steps that
// rebuild the subannotation from the annotation are limited to these rows,
// so a cleaned label keeps the subannotation it was given.
var raw = annotation.Not(annotation.Matches(ann, `s$`))
