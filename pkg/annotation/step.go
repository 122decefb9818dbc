package annotation

import (
	"fmt"
	"regexp"
	"strings"
)

// Step is one transformation in a tissue rule set. Apply mutates the
// record set in place and returns the number of rows it changed. Steps
// never add, remove or reorder rows.
type Step interface {
	Apply(rs *RecordSet) int
	String() string
}

// textOrMissing turns an empty rewrite result into Missing.
func textOrMissing(s string) Value {
	if s == "" {
		return Missing
	}
	return Text(s)
}

func whereSuffix(where Predicate) string {
	if where == nil {
		return ""
	}
	return " where " + where.String()
}

// ReplaceMode selects how a ReplaceStep matches.
type ReplaceMode int

const (
	// ReplaceSubstring replaces every literal occurrence.
	ReplaceSubstring ReplaceMode = iota
	// ReplaceRegexp replaces every match of a regular expression.
	ReplaceRegexp
	// ReplaceWhole replaces the value only when it equals Old exactly.
	ReplaceWhole
)

// ReplaceStep substitutes text in one field.
type ReplaceStep struct {
	Field   Field
	Mode    ReplaceMode
	Old     string
	New     string
	Where   Predicate
	pattern *regexp.Regexp
}

// Replace substitutes every literal occurrence of old in field f.
func Replace(f Field, old, replacement string) *ReplaceStep {
	return &ReplaceStep{Field: f, Mode: ReplaceSubstring, Old: old, New: replacement}
}

// ReplacePattern substitutes every match of expr in field f. The
// replacement may reference groups as ${1} or ${name}. It panics if expr
// does not compile.
func ReplacePattern(f Field, expr, replacement string) *ReplaceStep {
	return &ReplaceStep{
		Field:   f,
		Mode:    ReplaceRegexp,
		Old:     expr,
		New:     replacement,
		pattern: regexp.MustCompile(expr),
	}
}

// Rename replaces field f with to wherever it equals from exactly.
func Rename(f Field, from, to string) *ReplaceStep {
	return &ReplaceStep{Field: f, Mode: ReplaceWhole, Old: from, New: to}
}

// Only restricts the step to rows matching where.
func (s *ReplaceStep) Only(where Predicate) *ReplaceStep {
	s.Where = where
	return s
}

func (s *ReplaceStep) rewrite(v string) string {
	switch s.Mode {
	case ReplaceRegexp:
		return s.pattern.ReplaceAllString(v, s.New)
	case ReplaceWhole:
		if v == s.Old {
			return s.New
		}
		return v
	default:
		return strings.ReplaceAll(v, s.Old, s.New)
	}
}

// Apply implements Step.
func (s *ReplaceStep) Apply(rs *RecordSet) int {
	changed := 0
	for i := range rs.Records {
		r := &rs.Records[i]
		if !selects(s.Where, r) {
			continue
		}
		v, ok := r.Get(s.Field).Str()
		if !ok {
			continue
		}
		if out := s.rewrite(v); out != v {
			r.Set(s.Field, textOrMissing(out))
			changed++
		}
	}
	return changed
}

func (s *ReplaceStep) String() string {
	verb := "replace"
	switch s.Mode {
	case ReplaceRegexp:
		verb = "replace pattern"
	case ReplaceWhole:
		verb = "rename"
	}
	return fmt.Sprintf("%s %q -> %q in %s%s", verb, s.Old, s.New, s.Field, whereSuffix(s.Where))
}

// ExtractSplitStep matches a pattern against a source field and writes its
// named groups into the fields of the same name.
type ExtractSplitStep struct {
	Source  Field
	Pattern *regexp.Regexp
	Where   Predicate
	targets []target
}

type target struct {
	field Field
	group int
}

// ExtractSplit builds an extract step. expr must contain a named group
// "annotation", "subannotation", or both; any other named group panics.
// Selected rows whose source does not match get Missing in every target
// field; rows excluded by where are left untouched.
func ExtractSplit(source Field, expr string, where Predicate) *ExtractSplitStep {
	re := regexp.MustCompile(expr)
	s := &ExtractSplitStep{Source: source, Pattern: re, Where: where}
	for i, name := range re.SubexpNames() {
		switch name {
		case "":
		case AnnotationColumn:
			s.targets = append(s.targets, target{field: Annotation, group: i})
		case SubannotationColumn:
			s.targets = append(s.targets, target{field: Subannotation, group: i})
		default:
			panic(fmt.Sprintf("annotation: extract pattern %q has unknown group %q", expr, name))
		}
	}
	if len(s.targets) == 0 {
		panic(fmt.Sprintf("annotation: extract pattern %q has no target group", expr))
	}
	return s
}

// Apply implements Step.
func (s *ExtractSplitStep) Apply(rs *RecordSet) int {
	changed := 0
	for i := range rs.Records {
		r := &rs.Records[i]
		if !selects(s.Where, r) {
			continue
		}
		src := r.Get(s.Source)
		if src.Kind() == KindNumber {
			continue
		}
		var groups []string
		if text, ok := src.Str(); ok {
			groups = s.Pattern.FindStringSubmatch(text)
		}
		before := *r
		for _, t := range s.targets {
			if groups == nil {
				r.Set(t.field, Missing)
				continue
			}
			r.Set(t.field, textOrMissing(groups[t.group]))
		}
		if *r != before {
			changed++
		}
	}
	return changed
}

func (s *ExtractSplitStep) String() string {
	fields := make([]string, len(s.targets))
	for i, t := range s.targets {
		fields[i] = t.field.String()
	}
	return fmt.Sprintf("extract %q from %s into %s%s",
		s.Pattern.String(), s.Source, strings.Join(fields, ", "), whereSuffix(s.Where))
}

// Assignment is a field overwrite performed by a SetStep.
type Assignment struct {
	Field Field
	Value Value
}

// To assigns text s to field f.
func To(f Field, s string) Assignment {
	return Assignment{Field: f, Value: Text(s)}
}

// Clear assigns Missing to field f.
func Clear(f Field) Assignment {
	return Assignment{Field: f, Value: Missing}
}

// SetStep overwrites one or both fields of every row matching Where. The
// predicate is tested once per row before any assignment is made.
type SetStep struct {
	Where  Predicate
	Assign []Assignment
}

// Set builds a conditional overwrite. It panics without assignments.
func Set(where Predicate, assign ...Assignment) *SetStep {
	if len(assign) == 0 {
		panic("annotation: Set requires at least one assignment")
	}
	return &SetStep{Where: where, Assign: assign}
}

// Apply implements Step.
func (s *SetStep) Apply(rs *RecordSet) int {
	changed := 0
	for i := range rs.Records {
		r := &rs.Records[i]
		if !selects(s.Where, r) {
			continue
		}
		before := *r
		for _, a := range s.Assign {
			r.Set(a.Field, a.Value)
		}
		if *r != before {
			changed++
		}
	}
	return changed
}

func (s *SetStep) String() string {
	parts := make([]string, len(s.Assign))
	for i, a := range s.Assign {
		if a.Value.IsMissing() {
			parts[i] = a.Field.String() + " = <missing>"
			continue
		}
		parts[i] = fmt.Sprintf("%s = %q", a.Field, a.Value.String())
	}
	return "set " + strings.Join(parts, ", ") + whereSuffix(s.Where)
}

// MoveMode selects what happens to the source field after a move.
type MoveMode int

const (
	// MoveClear leaves the source field Missing.
	MoveClear MoveMode = iota
	// MoveKeep leaves the source field as it was.
	MoveKeep
	// MoveSwap writes the old destination value into the source field.
	MoveSwap
)

// MoveStep copies one field into the other for rows matching Where.
type MoveStep struct {
	Where Predicate
	From  Field
	To    Field
	Mode  MoveMode
}

// Move copies from into to and clears from.
func Move(where Predicate, from, to Field) *MoveStep {
	return &MoveStep{Where: where, From: from, To: to, Mode: MoveClear}
}

// Copy copies from into to and keeps from.
func Copy(where Predicate, from, to Field) *MoveStep {
	return &MoveStep{Where: where, From: from, To: to, Mode: MoveKeep}
}

// Swap exchanges the two fields.
func Swap(where Predicate) *MoveStep {
	return &MoveStep{Where: where, From: Annotation, To: Subannotation, Mode: MoveSwap}
}

// Apply implements Step.
func (s *MoveStep) Apply(rs *RecordSet) int {
	changed := 0
	for i := range rs.Records {
		r := &rs.Records[i]
		if !selects(s.Where, r) {
			continue
		}
		before := *r
		src, dst := r.Get(s.From), r.Get(s.To)
		r.Set(s.To, src)
		switch s.Mode {
		case MoveClear:
			r.Set(s.From, Missing)
		case MoveSwap:
			r.Set(s.From, dst)
		}
		if *r != before {
			changed++
		}
	}
	return changed
}

func (s *MoveStep) String() string {
	verb := "move"
	switch s.Mode {
	case MoveKeep:
		verb = "copy"
	case MoveSwap:
		return "swap annotation and subannotation" + whereSuffix(s.Where)
	}
	return fmt.Sprintf("%s %s to %s%s", verb, s.From, s.To, whereSuffix(s.Where))
}

// DropColumnStep removes a non-semantic passthrough column.
type DropColumnStep struct {
	Name string
}

// DropColumn builds a column drop. Dropping an absent column is a no-op.
func DropColumn(name string) *DropColumnStep {
	return &DropColumnStep{Name: name}
}

// Apply implements Step. Row count is unaffected, so it always returns 0.
func (s *DropColumnStep) Apply(rs *RecordSet) int {
	rs.DropColumn(s.Name)
	return 0
}

func (s *DropColumnStep) String() string {
	return fmt.Sprintf("drop column %q", s.Name)
}

// Mapping pairs a token with the label it maps to.
type Mapping struct {
	Token string
	Label string
}

// LookupTable expands an ordered token table into Set steps that write
// Label into field f for rows where either field equals Token.
func LookupTable(f Field, table []Mapping) []Step {
	steps := make([]Step, len(table))
	for i, m := range table {
		steps[i] = Set(Either(m.Token), To(f, m.Label))
	}
	return steps
}
