package annotation

import (
	"fmt"
	"sort"
	"sync"
)

// RuleSet is the ordered list of steps for one tissue.
type RuleSet struct {
	// Tissue is the exact, case-sensitive identifier, e.g. "Heart".
	Tissue      string
	Description string
	// KeepNumbers disables stripping of leading and trailing digits by the
	// normalizer, for tissues whose numeric suffixes carry meaning.
	KeepNumbers bool
	Steps       []Step
}

// StripNumbers reports whether the normalizer strips digits for this set.
func (rs RuleSet) StripNumbers() bool { return !rs.KeepNumbers }

// globalRegistry is the single global registry for all tissue rule sets.
var globalRegistry = &Registry{
	sets: make(map[string]RuleSet),
}

// Registry stores registered rule sets keyed by tissue.
type Registry struct {
	mu   sync.RWMutex
	sets map[string]RuleSet
}

// Register adds a rule set to the global registry. Call this from init()
// functions in rule packages. It panics on an empty tissue, a duplicate
// tissue or a nil step so that a malformed catalogue fails at start-up.
func Register(set RuleSet) {
	if set.Tissue == "" {
		panic("annotation: rule set registered without a tissue")
	}
	for i, s := range set.Steps {
		if s == nil {
			panic(fmt.Sprintf("annotation: %s step %d is nil", set.Tissue, i))
		}
	}

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if _, dup := globalRegistry.sets[set.Tissue]; dup {
		panic(fmt.Sprintf("annotation: rule set %q registered twice", set.Tissue))
	}
	globalRegistry.sets[set.Tissue] = set
}

// Lookup returns the rule set registered for tissue.
func Lookup(tissue string) (RuleSet, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	set, ok := globalRegistry.sets[tissue]
	return set, ok
}

// SelectRules returns the ordered steps for tissue. Unknown tissues yield
// an empty list.
func SelectRules(tissue string) []Step {
	set, _ := Lookup(tissue)
	return set.Steps
}

// Tissues returns all registered tissue identifiers, sorted.
func Tissues() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	names := make([]string, 0, len(globalRegistry.sets))
	for name := range globalRegistry.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllRuleSets returns every registered rule set, sorted by tissue.
func AllRuleSets() []RuleSet {
	names := Tissues()
	sets := make([]RuleSet, 0, len(names))
	for _, name := range names {
		set, _ := Lookup(name)
		sets = append(sets, set)
	}
	return sets
}

// Count returns the number of registered rule sets.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.sets)
}

// unregister removes a rule set. Used by tests that register fixtures.
func unregister(tissue string) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	delete(globalRegistry.sets, tissue)
}
