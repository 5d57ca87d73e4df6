package symtab

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestInsertAndLookup(t *testing.T) {
	tab := New()
	assert.True(t, tab.Insert("x", Int))
	sym := tab.Lookup("x")
	assert.True(t, sym != nil)
	assert.Equal(t, Int, sym.Type)
}

func TestInsertDuplicateInSameScopeFails(t *testing.T) {
	tab := New()
	assert.True(t, tab.Insert("x", Int))
	assert.False(t, tab.Insert("x", Float))
}

func TestShadowingInNestedScopeSucceeds(t *testing.T) {
	tab := New()
	assert.True(t, tab.Insert("x", Int))
	tab.EnterScope()
	assert.True(t, tab.Insert("x", Float))
	assert.Equal(t, Float, tab.Lookup("x").Type)
	tab.ExitScope()
	assert.Equal(t, Int, tab.Lookup("x").Type)
}

func TestScopeZeroNeverPops(t *testing.T) {
	tab := New()
	tab.ExitScope()
	assert.Equal(t, 0, tab.CurrentScope())
}

func TestIsDefinedOnlyChecksCurrentScope(t *testing.T) {
	tab := New()
	tab.Insert("x", Int)
	tab.EnterScope()
	assert.False(t, tab.IsDefined("x"))
	assert.True(t, tab.Lookup("x") != nil)
}

func TestSetValueRequiresMatchingType(t *testing.T) {
	tab := New()
	tab.Insert("x", Int)
	assert.False(t, tab.SetValueFloat("x", 1.5))
	assert.True(t, tab.SetValueInt("x", 7))
	assert.True(t, tab.Lookup("x").IsInitialized)
}
