package annotation

import (
	"fmt"
	"regexp"
	"strings"
)

// Predicate selects the rows a step applies to. It is evaluated against
// the current state of a record, after every earlier step has run.
type Predicate interface {
	Match(r *Record) bool
	String() string
}

// textPredicate applies a string test to one field. Missing and non-text
// values never match.
type textPredicate struct {
	field Field
	op    string
	arg   string
	test  func(string) bool
}

func (p textPredicate) Match(r *Record) bool {
	s, ok := r.Get(p.field).Str()
	return ok && p.test(s)
}

func (p textPredicate) String() string {
	return fmt.Sprintf("%s %s %q", p.field, p.op, p.arg)
}

// Equals matches rows whose field equals s exactly.
func Equals(f Field, s string) Predicate {
	return textPredicate{field: f, op: "==", arg: s, test: func(v string) bool { return v == s }}
}

// HasPrefix matches rows whose field starts with prefix.
func HasPrefix(f Field, prefix string) Predicate {
	return textPredicate{field: f, op: "starts with", arg: prefix, test: func(v string) bool {
		return strings.HasPrefix(v, prefix)
	}}
}

// HasSuffix matches rows whose field ends with suffix.
func HasSuffix(f Field, suffix string) Predicate {
	return textPredicate{field: f, op: "ends with", arg: suffix, test: func(v string) bool {
		return strings.HasSuffix(v, suffix)
	}}
}

// Contains matches rows whose field contains substr.
func Contains(f Field, substr string) Predicate {
	return textPredicate{field: f, op: "contains", arg: substr, test: func(v string) bool {
		return strings.Contains(v, substr)
	}}
}

// Matches matches rows whose field contains a match of the regular
// expression expr. It panics if expr does not compile.
func Matches(f Field, expr string) Predicate {
	re := regexp.MustCompile(expr)
	return textPredicate{field: f, op: "matches", arg: expr, test: re.MatchString}
}

// Either matches rows where either field equals s.
func Either(s string) Predicate {
	return Any(Equals(Annotation, s), Equals(Subannotation, s))
}

type missingPredicate struct{ field Field }

func (p missingPredicate) Match(r *Record) bool { return r.Get(p.field).IsMissing() }
func (p missingPredicate) String() string       { return p.field.String() + " is missing" }

// IsMissing matches rows whose field is absent.
func IsMissing(f Field) Predicate {
	return missingPredicate{field: f}
}

type allPredicate []Predicate

func (ps allPredicate) Match(r *Record) bool {
	for _, p := range ps {
		if !p.Match(r) {
			return false
		}
	}
	return true
}

func (ps allPredicate) String() string { return joinPredicates(ps, " and ") }

// All matches rows satisfying every predicate.
func All(ps ...Predicate) Predicate {
	return allPredicate(ps)
}

type anyPredicate []Predicate

func (ps anyPredicate) Match(r *Record) bool {
	for _, p := range ps {
		if p.Match(r) {
			return true
		}
	}
	return false
}

func (ps anyPredicate) String() string { return joinPredicates(ps, " or ") }

// Any matches rows satisfying at least one predicate.
func Any(ps ...Predicate) Predicate {
	return anyPredicate(ps)
}

type notPredicate struct{ p Predicate }

func (n notPredicate) Match(r *Record) bool { return !n.p.Match(r) }
func (n notPredicate) String() string       { return "not (" + n.p.String() + ")" }

// Not inverts a predicate. Note that Not(Equals(...)) matches Missing rows.
func Not(p Predicate) Predicate {
	return notPredicate{p: p}
}

func joinPredicates(ps []Predicate, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = "(" + p.String() + ")"
	}
	return strings.Join(parts, sep)
}

// selects reports whether a step restricted by where applies to r.
// A nil predicate selects every row.
func selects(where Predicate, r *Record) bool {
	return where == nil || where.Match(r)
}
