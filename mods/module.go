package mods

import (
	"errors"
	"fmt"
	"strings"

	"symres/common"
	"symres/sem"
)

// ErrDuplicateType is returned when a module declares the same metadata name
// more than once
var ErrDuplicateType = errors.New("duplicate type declaration")

// Module represents a single compiled unit: either the module being analyzed
// or one of the modules it references.  Modules are built once and are then
// treated as read-only for as long as any compilation refers to them.
type Module struct {
	// Name is the name of the module.  Friend grants refer to modules by
	// this name.  Names are not identities: two distinct modules may share
	// a name and are still two modules.
	Name string

	// Version is the semantic version string of the module
	Version string

	// References is the ordered list of modules this module references
	// directly.  Order is declaration order.
	References []*Module

	// types maps metadata names to the type symbols declared in the module
	types map[string]*sem.Symbol

	// namespaces maps dotted namespace paths to their namespace symbols
	namespaces map[string]*sem.Symbol

	// members maps the qualified names of non-type members to their symbols
	members map[string]*sem.Symbol

	// friends is the set of module names this module grants internal access
	friends map[string]struct{}
}

// NewModule creates a new, empty module with the given name
func NewModule(name string) *Module {
	return &Module{
		Name:       name,
		Version:    common.SymresVersion,
		types:      make(map[string]*sem.Symbol),
		namespaces: make(map[string]*sem.Symbol),
		members:    make(map[string]*sem.Symbol),
		friends:    make(map[string]struct{}),
	}
}

// LookupType looks up a type by its exact, case-sensitive metadata name.  It
// returns `nil` if the module declares no such type.
func (m *Module) LookupType(metadataName string) *sem.Symbol {
	return m.types[metadataName]
}

// LookupSymbol looks up a type or a declared member by its qualified name
func (m *Module) LookupSymbol(name string) *sem.Symbol {
	if sym, ok := m.types[name]; ok {
		return sym
	}

	return m.members[name]
}

// Types returns the number of types declared in the module
func (m *Module) Types() int {
	return len(m.types)
}

// GrantsAccessTo returns whether this module makes its internal symbols
// visible to `other`.  The relation is directional: a grant from A to B says
// nothing about B to A.  A module always sees its own internals.
func (m *Module) GrantsAccessTo(other *Module) bool {
	if other == nil {
		return false
	}

	if other == m {
		return true
	}

	_, ok := m.friends[other.Name]
	return ok
}

// AddFriend grants internal access to the module with the given name
func (m *Module) AddFriend(name string) {
	m.friends[name] = struct{}{}
}

// Friends returns the names of all modules this module grants access to
func (m *Module) Friends() []string {
	names := make([]string, 0, len(m.friends))
	for name := range m.friends {
		names = append(names, name)
	}

	return names
}

// AddReference adds a module as a direct reference of this module if it is
// not already referenced
func (m *Module) AddReference(ref *Module) {
	for _, existing := range m.References {
		if existing == ref {
			return
		}
	}

	m.References = append(m.References, ref)
}

// DeclareNamespace returns the namespace symbol for a dotted namespace path,
// creating it and any of its parents as necessary.  The empty path is the
// global namespace.
func (m *Module) DeclareNamespace(path string) *sem.Symbol {
	if ns, ok := m.namespaces[path]; ok {
		return ns
	}

	var parent *sem.Symbol
	name := path
	if dot := strings.LastIndexByte(path, '.'); dot >= 0 {
		parent = m.DeclareNamespace(path[:dot])
		name = path[dot+1:]
	} else if path != "" {
		parent = m.DeclareNamespace("")
	}

	ns := &sem.Symbol{
		Name:          name,
		MetadataName:  path,
		Kind:          sem.KindNamespace,
		Accessibility: sem.AccessPublic,
		Container:     parent,
		Module:        m.Name,
	}

	m.namespaces[path] = ns
	return ns
}

// DeclareType declares a top level type in the given namespace.  The type's
// metadata name is `ns.name` or just `name` in the global namespace.
func (m *Module) DeclareType(ns *sem.Symbol, name string, access sem.Accessibility) (*sem.Symbol, error) {
	if ns == nil {
		ns = m.DeclareNamespace("")
	}

	metadataName := name
	if ns.MetadataName != "" {
		metadataName = ns.MetadataName + "." + name
	}

	return m.addType(metadataName, name, access, ns)
}

// DeclareNestedType declares a type nested inside another type of this
// module.  Nested metadata names use `+` as the separator.
func (m *Module) DeclareNestedType(outer *sem.Symbol, name string, access sem.Accessibility) (*sem.Symbol, error) {
	if outer == nil || outer.Kind != sem.KindType {
		return nil, fmt.Errorf("nested type `%s` must be declared inside a type", name)
	}

	return m.addType(outer.MetadataName+"+"+name, name, access, outer)
}

// DeclareMember declares a non-type member (method, field, parameter, type
// parameter, alias, ...) owned by another symbol.  Members are never returned
// by type lookups; they only participate in visibility evaluation.
func (m *Module) DeclareMember(owner *sem.Symbol, kind sem.SymbolKind, name string, access sem.Accessibility) (*sem.Symbol, error) {
	if owner == nil {
		return nil, fmt.Errorf("member `%s` must have an owner", name)
	}

	if kind == sem.KindType || kind == sem.KindNamespace {
		return nil, fmt.Errorf("member `%s` cannot be of kind %s", name, kind)
	}

	sym := &sem.Symbol{
		Name:          name,
		MetadataName:  owner.MetadataName + "." + name,
		Kind:          kind,
		Accessibility: access,
		Container:     owner,
		Module:        m.Name,
	}

	// overloads share a qualified name; the first declaration is kept for
	// lookups
	if _, ok := m.members[sym.MetadataName]; !ok {
		m.members[sym.MetadataName] = sym
	}

	return sym, nil
}

// addType registers a new type symbol under its metadata name
func (m *Module) addType(metadataName, name string, access sem.Accessibility, container *sem.Symbol) (*sem.Symbol, error) {
	if _, ok := m.types[metadataName]; ok {
		return nil, fmt.Errorf("%w: `%s` in module `%s`", ErrDuplicateType, metadataName, m.Name)
	}

	sym := &sem.Symbol{
		Name:          name,
		MetadataName:  metadataName,
		Kind:          sem.KindType,
		Accessibility: access,
		Container:     container,
		Module:        m.Name,
	}

	m.types[metadataName] = sym
	return sym, nil
}

// ValidateMetadataName checks that no `.` or `+` separated segment of a
// metadata name is empty
func ValidateMetadataName(name string) error {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '+'
	})

	if name == "" || strings.Count(name, ".")+strings.Count(name, "+")+1 != len(segments) {
		return fmt.Errorf("invalid metadata name `%s`", name)
	}

	return nil
}

// IsValidIdentifier returns whether or not a given string would be a valid
// module name
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
