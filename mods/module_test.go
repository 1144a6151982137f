package mods

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symres/sem"
)

func names(modules []*Module) []string {
	var out []string
	for _, mod := range modules {
		out = append(out, mod.Name)
	}

	return out
}

func TestDeclareTypes(t *testing.T) {
	mod := NewModule("lib")

	ns := mod.DeclareNamespace("A.B")
	assert.Equal(t, "B", ns.Name)
	assert.Equal(t, "A", ns.Container.MetadataName)
	assert.Same(t, ns, mod.DeclareNamespace("A.B"))

	outer, err := mod.DeclareType(ns, "Outer", sem.AccessPublic)
	require.NoError(t, err)
	assert.Equal(t, "A.B.Outer", outer.MetadataName)
	assert.Equal(t, "lib", outer.Module)

	inner, err := mod.DeclareNestedType(outer, "Inner", sem.AccessPrivate)
	require.NoError(t, err)
	assert.Equal(t, "A.B.Outer+Inner", inner.MetadataName)
	assert.Same(t, inner, mod.LookupType("A.B.Outer+Inner"))

	_, err = mod.DeclareType(ns, "Outer", sem.AccessInternal)
	assert.True(t, errors.Is(err, ErrDuplicateType))

	_, err = mod.DeclareNestedType(ns, "Bad", sem.AccessPublic)
	assert.Error(t, err)

	_, err = mod.DeclareMember(outer, sem.KindType, "Bad", sem.AccessPublic)
	assert.Error(t, err)

	assert.Equal(t, []*sem.Symbol{inner, outer}, inner.Chain())
}

func TestGrantsAccessTo(t *testing.T) {
	a := NewModule("a")
	b := NewModule("b")
	a.AddFriend("b")

	assert.True(t, a.GrantsAccessTo(b))
	assert.False(t, b.GrantsAccessTo(a))
	assert.True(t, a.GrantsAccessTo(a))
	assert.False(t, a.GrantsAccessTo(nil))
	assert.Equal(t, []string{"b"}, a.Friends())
}

func TestReferencedModulesClosure(t *testing.T) {
	app := NewModule("app")
	core := NewModule("core")
	ui := NewModule("ui")
	net := NewModule("net")
	ui.AddReference(core)
	net.AddReference(core)
	net.AddReference(app) // back edge to the local module is ignored
	ui.AddReference(core) // duplicate references collapse

	comp := NewCompilation(app, ui, net)
	assert.Equal(t, []string{"ui", "net"}, names(comp.References()))
	assert.Equal(t, []string{"ui", "net", "core"}, names(comp.ReferencedModules()))

	mod, ok := comp.Module("core")
	require.True(t, ok)
	assert.Same(t, core, mod)

	_, ok = comp.Module("missing")
	assert.False(t, ok)
}

func TestNewCompilationUsesLocalReferences(t *testing.T) {
	app := NewModule("app")
	lib := NewModule("lib")
	app.AddReference(lib)

	assert.Equal(t, []string{"lib"}, names(NewCompilation(app).ReferencedModules()))
}

func TestReferenceCyclesTerminate(t *testing.T) {
	a := NewModule("a")
	b := NewModule("b")
	a.AddReference(b)
	b.AddReference(a)

	comp := NewCompilation(NewModule("app"), a)
	assert.Equal(t, []string{"a", "b"}, names(comp.ReferencedModules()))
}

func TestWorkspaceSnapshots(t *testing.T) {
	app := NewModule("app")
	ws := NewWorkspace(NewCompilation(app))

	first, version := ws.Snapshot()
	assert.Equal(t, uint64(1), version)

	lib := NewModule("lib")
	_, err := lib.DeclareType(nil, "Widget", sem.AccessPublic)
	require.NoError(t, err)

	version, err = ws.Update(func(prev *Compilation) (*Compilation, error) {
		return NewCompilation(prev.Local, append(prev.References(), lib)...), nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)

	// the old snapshot is unchanged
	assert.Empty(t, first.ReferencedModules())

	current, _ := ws.Snapshot()
	assert.Equal(t, []string{"lib"}, names(current.ReferencedModules()))

	version, err = ws.Update(func(*Compilation) (*Compilation, error) {
		return nil, errors.New("bad update")
	})
	assert.Error(t, err)
	assert.Equal(t, uint64(2), version)

	_, err = ws.Update(func(*Compilation) (*Compilation, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestWorkspaceConcurrentReadersAndWriters(t *testing.T) {
	ws := NewWorkspace(NewCompilation(NewModule("app")))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, _ = ws.Update(func(prev *Compilation) (*Compilation, error) {
					return NewCompilation(prev.Local, prev.References()...), nil
				})
			}
		}()
	}

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint64
			for i := 0; i < 200; i++ {
				comp, version := ws.Snapshot()
				if comp == nil || version < last {
					t.Errorf("snapshot went backwards: %d < %d", version, last)
					return
				}
				last = version
			}
		}()
	}

	wg.Wait()

	_, version := ws.Snapshot()
	assert.Equal(t, uint64(201), version)
}

func TestModulesAreDistinguishedByIdentity(t *testing.T) {
	tests := []struct {
		label string
		first string
		other string
	}{
		{"same name", "lib", "lib"},
		{"colliding hashes", "libhikxw", "librjtra"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			a := NewModule(tt.first)
			b := NewModule(tt.other)

			comp := NewCompilation(NewModule("app"), a, b)
			require.Len(t, comp.ReferencedModules(), 2)
			assert.Same(t, a, comp.ReferencedModules()[0])
			assert.Same(t, b, comp.ReferencedModules()[1])

			user := NewModule("user")
			user.AddReference(a)
			user.AddReference(b)
			user.AddReference(a)
			assert.Len(t, user.References, 2)
		})
	}
}

func TestCompilationReferencesAreCopies(t *testing.T) {
	lib := NewModule("lib")
	comp := NewCompilation(NewModule("app"), lib)

	refs := comp.References()
	refs[0] = NewModule("other")
	closure := comp.ReferencedModules()
	closure[0] = nil

	assert.Same(t, lib, comp.References()[0])
	assert.Same(t, lib, comp.ReferencedModules()[0])
}

func TestValidateMetadataName(t *testing.T) {
	assert.NoError(t, ValidateMetadataName("N.Outer+Inner"))
	assert.NoError(t, ValidateMetadataName("Widget"))

	for _, name := range []string{"", "N..Foo", "N.", "N.Foo+", ".Foo"} {
		assert.Error(t, ValidateMetadataName(name), "name %q", name)
	}
}
