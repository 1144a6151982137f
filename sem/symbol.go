package sem

import (
	"fmt"
	"strings"
)

// Symbol represents a named entity declared inside a module: a type, a
// namespace, or one of the member kinds consulted while computing visibility.
// Symbols are immutable once their declaring module has been published to a
// compilation.
type Symbol struct {
	// Name is the simple name of the symbol (as it appears in source)
	Name string

	// MetadataName is the fully qualified, compiler-internal name of the
	// symbol.  For types this is the key used by module type lookups: eg.
	// `N.Widget` or `N.Widget+Part` for a nested type.
	MetadataName string

	// Kind is the kind of definition that produced this symbol.  This must be
	// one of the enumerated symbol kinds below.
	Kind SymbolKind

	// Accessibility is the accessibility the symbol was declared with
	Accessibility Accessibility

	// Container is the symbol enclosing this one: the enclosing type, the
	// owning method of a parameter, or a namespace.  It is `nil` for the
	// global namespace.  This is a traversal link only.
	Container *Symbol

	// Module is the name of the module that declares this symbol
	Module string
}

// SymbolKind enumerates the kinds of symbols the visibility walk distinguishes
type SymbolKind int

// Enumeration of symbol kinds
const (
	KindType          SymbolKind = iota // Classes, structs, interfaces, enums, delegates
	KindAlias                           // File-local aliases (`using X = ...`)
	KindParameter                       // Method and constructor parameters
	KindTypeParameter                   // Generic type parameters
	KindNamespace                       // Namespaces: terminate the containment walk
	KindMethod                          // Methods, constructors, and operators
	KindField                           // Fields, properties, and events
	KindOther                           // Anything else carrying an accessibility
)

var kindNames = map[SymbolKind]string{
	KindType:          "type",
	KindAlias:         "alias",
	KindParameter:     "parameter",
	KindTypeParameter: "type-parameter",
	KindNamespace:     "namespace",
	KindMethod:        "method",
	KindField:         "field",
	KindOther:         "other",
}

func (k SymbolKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// ParseSymbolKind converts a manifest kind string into a `SymbolKind`
func ParseSymbolKind(s string) (SymbolKind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}

	return KindOther, fmt.Errorf("unknown symbol kind `%s`", s)
}

// Accessibility is the declared accessibility of a symbol
type Accessibility int

// Enumeration of declared accessibilities.  These mirror the accessibilities a
// front end can attach to a declaration; `AccessNotApplicable` is used for
// symbols that have no meaningful accessibility.
const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessProtectedAndInternal
	AccessProtected
	AccessInternal
	AccessProtectedOrInternal
	AccessPublic
)

var accessNames = map[Accessibility]string{
	AccessNotApplicable:        "not-applicable",
	AccessPrivate:              "private",
	AccessProtectedAndInternal: "private-protected",
	AccessProtected:            "protected",
	AccessInternal:             "internal",
	AccessProtectedOrInternal:  "protected-internal",
	AccessPublic:               "public",
}

func (a Accessibility) String() string {
	if name, ok := accessNames[a]; ok {
		return name
	}

	return fmt.Sprintf("Accessibility(%d)", int(a))
}

// ParseAccessibility converts a manifest accessibility string into an
// `Accessibility`.  `friend` is accepted as a synonym for `internal`.
func ParseAccessibility(s string) (Accessibility, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "friend" {
		return AccessInternal, nil
	}

	for access, name := range accessNames {
		if name == s {
			return access, nil
		}
	}

	return AccessNotApplicable, fmt.Errorf("unknown accessibility `%s`", s)
}

// IsNamespace returns whether or not the symbol terminates a containment walk
func (sym *Symbol) IsNamespace() bool {
	return sym.Kind == KindNamespace
}

// Chain returns the containment chain of the symbol starting with the symbol
// itself and ending just before the first namespace
func (sym *Symbol) Chain() []*Symbol {
	var chain []*Symbol
	for s := sym; s != nil && !s.IsNamespace(); s = s.Container {
		chain = append(chain, s)
	}

	return chain
}

func (sym *Symbol) String() string {
	if sym.MetadataName != "" {
		return sym.MetadataName
	}

	return sym.Name
}

// UnqualifiedName returns the rightmost segment of a qualified name: the part
// after the last `.` or `+`, or after `::` for an alias qualified name
func UnqualifiedName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}

	if i := strings.LastIndexAny(name, ".+"); i >= 0 {
		return name[i+1:]
	}

	return name
}
