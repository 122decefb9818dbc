package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	set := RuleSet{
		Tissue: "Test_Tissue",
		Steps:  []Step{Rename(Annotation, "a", "b")},
	}
	Register(set)
	t.Cleanup(func() { unregister(set.Tissue) })

	got, ok := Lookup("Test_Tissue")
	require.True(t, ok)
	assert.Equal(t, "Test_Tissue", got.Tissue)
	assert.Len(t, SelectRules("Test_Tissue"), 1)
	assert.Contains(t, Tissues(), "Test_Tissue")

	t.Run("lookup is case sensitive", func(t *testing.T) {
		_, ok := Lookup("test_tissue")
		assert.False(t, ok)
	})

	t.Run("duplicate panics", func(t *testing.T) {
		assert.Panics(t, func() { Register(set) })
	})
}

func TestRegister_Invalid(t *testing.T) {
	assert.Panics(t, func() { Register(RuleSet{}) })
	assert.Panics(t, func() {
		Register(RuleSet{Tissue: "Nil_Step", Steps: []Step{nil}})
	})
	_, ok := Lookup("Nil_Step")
	assert.False(t, ok)
}

func TestSelectRules_Unknown(t *testing.T) {
	assert.Empty(t, SelectRules("Not_A_Tissue"))
}

func TestRuleSet_StripNumbers(t *testing.T) {
	assert.True(t, RuleSet{}.StripNumbers())
	assert.False(t, RuleSet{KeepNumbers: true}.StripNumbers())
}

func TestAllRuleSets_Sorted(t *testing.T) {
	for _, name := range []string{"Zz_Tissue", "Aa_Tissue"} {
		Register(RuleSet{Tissue: name})
		t.Cleanup(func() { unregister(name) })
	}

	sets := AllRuleSets()
	require.Len(t, sets, Count())
	for i := 1; i < len(sets); i++ {
		assert.Less(t, sets[i-1].Tissue, sets[i].Tissue)
	}
}
