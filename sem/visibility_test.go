package sem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChain(accesses ...Accessibility) *Symbol {
	ns := &Symbol{Name: "N", MetadataName: "N", Kind: KindNamespace, Accessibility: AccessNotApplicable}

	container := ns
	var sym *Symbol
	// outermost first
	for i := len(accesses) - 1; i >= 0; i-- {
		sym = &Symbol{Name: "T", Kind: KindType, Accessibility: accesses[i], Container: container}
		container = sym
	}

	return sym
}

func TestEvaluateVisibilityChain(t *testing.T) {
	tests := []struct {
		name     string
		chain    []Accessibility // innermost first
		expected Visibility
	}{
		{"public top level", []Accessibility{AccessPublic}, VisibilityPublic},
		{"internal top level", []Accessibility{AccessInternal}, VisibilityInternal},
		{"private top level", []Accessibility{AccessPrivate}, VisibilityPrivate},
		{"not applicable", []Accessibility{AccessNotApplicable}, VisibilityPrivate},
		{"protected nested in public", []Accessibility{AccessProtected, AccessPublic}, VisibilityPublic},
		{"protected or internal nested", []Accessibility{AccessProtectedOrInternal, AccessPublic}, VisibilityPublic},
		{"private protected nested", []Accessibility{AccessProtectedAndInternal, AccessPublic}, VisibilityInternal},
		{"public nested in internal", []Accessibility{AccessPublic, AccessInternal}, VisibilityInternal},
		{"public nested in private", []Accessibility{AccessPublic, AccessPrivate, AccessPublic}, VisibilityPrivate},
		{"internal then private", []Accessibility{AccessInternal, AccessPublic, AccessPrivate}, VisibilityPrivate},
		{"private inside internal", []Accessibility{AccessPrivate, AccessInternal}, VisibilityPrivate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateVisibility(newChain(tt.chain...)))
		})
	}
}

func TestEvaluateVisibilityStopsAtNamespace(t *testing.T) {
	// a private namespace-level marker above the namespace must not be seen
	outer := &Symbol{Name: "hidden", Kind: KindType, Accessibility: AccessPrivate}
	ns := &Symbol{Name: "N", Kind: KindNamespace, Container: outer}
	typ := &Symbol{Name: "Foo", Kind: KindType, Accessibility: AccessPublic, Container: ns}

	assert.Equal(t, VisibilityPublic, EvaluateVisibility(typ))
}

func TestEvaluateVisibilityAlias(t *testing.T) {
	for access := AccessNotApplicable; access <= AccessPublic; access++ {
		alias := &Symbol{Name: "A", Kind: KindAlias, Accessibility: access}
		assert.Equal(t, VisibilityPrivate, EvaluateVisibility(alias), "alias declared %s", access)
	}
}

func TestEvaluateVisibilityTypeParameter(t *testing.T) {
	owner := newChain(AccessPublic)
	tp := &Symbol{Name: "T", Kind: KindTypeParameter, Accessibility: AccessPublic, Container: owner}

	assert.Equal(t, VisibilityPrivate, EvaluateVisibility(tp))
}

func TestEvaluateVisibilityParameterInheritsOwner(t *testing.T) {
	tests := []struct {
		typeAccess   Accessibility
		methodAccess Accessibility
	}{
		{AccessPublic, AccessPublic},
		{AccessPublic, AccessInternal},
		{AccessInternal, AccessPublic},
		{AccessPublic, AccessPrivate},
		{AccessPrivate, AccessPublic},
	}

	for _, tt := range tests {
		typ := newChain(tt.typeAccess)
		method := &Symbol{Name: "M", Kind: KindMethod, Accessibility: tt.methodAccess, Container: typ}
		// a parameter's own declared accessibility is ignored
		param := &Symbol{Name: "p", Kind: KindParameter, Accessibility: AccessNotApplicable, Container: method}

		assert.Equal(t, EvaluateVisibility(method), EvaluateVisibility(param))
	}
}

func TestEvaluateVisibilityMonotonic(t *testing.T) {
	sym := newChain(AccessPublic, AccessProtected, AccessInternal, AccessPublic)

	prev := VisibilityPublic
	chain := sym.Chain()
	require.Len(t, chain, 4)

	// evaluating from the outermost link inward can only keep or narrow
	for i := len(chain) - 1; i >= 0; i-- {
		v := EvaluateVisibility(chain[i])
		assert.GreaterOrEqual(t, int(v), int(prev))
		prev = v
	}
}

func TestEvaluateVisibilityNil(t *testing.T) {
	assert.Equal(t, VisibilityPublic, EvaluateVisibility(nil))
	assert.Equal(t, VisibilityPublic, EvaluateVisibility(&Symbol{Kind: KindParameter}))
}

func TestHasAttributeSuffix(t *testing.T) {
	assert.True(t, HasAttributeSuffix("ObsoleteAttribute", true))
	assert.False(t, HasAttributeSuffix("Attribute", true))
	assert.False(t, HasAttributeSuffix("Obsoleteattribute", true))
	assert.True(t, HasAttributeSuffix("Obsoleteattribute", false))
	assert.False(t, HasAttributeSuffix("Obsolete", false))
}

func TestParseAccessibility(t *testing.T) {
	access, err := ParseAccessibility(" Public ")
	require.NoError(t, err)
	assert.Equal(t, AccessPublic, access)

	access, err = ParseAccessibility("friend")
	require.NoError(t, err)
	assert.Equal(t, AccessInternal, access)

	_, err = ParseAccessibility("sealed")
	assert.Error(t, err)
}

func TestUnqualifiedName(t *testing.T) {
	tests := map[string]string{
		"Widget":           "Widget",
		"N.Widget":         "Widget",
		"N.Outer+Inner":    "Inner",
		"global::N.Widget": "Widget",
		"alias::Widget":    "Widget",
	}

	for name, want := range tests {
		assert.Equal(t, want, UnqualifiedName(name), "name %q", name)
	}
}
