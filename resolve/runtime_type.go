package resolve

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"symres/mods"
	"symres/sem"
)

// ErrNotNamedType is returned when a runtime type cannot correspond to a named
// type symbol.  This is a usage error by the caller, not a resolution miss.
var ErrNotNamedType = errors.New("the input type must correspond to a named type symbol")

// MetadataNameOf computes the metadata name of a Go runtime type: the base of
// its package path followed by its name, with any generic instantiation
// arguments removed (eg. `widgets.Widget`).
func MetadataNameOf(t reflect.Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: nil type", ErrNotNamedType)
	}

	if t.Kind() == reflect.Array || t.Kind() == reflect.Slice {
		return "", fmt.Errorf("%w: `%s` is an array type", ErrNotNamedType, t)
	}

	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	if name == "" || t.PkgPath() == "" {
		return "", fmt.Errorf("%w: `%s` has no qualified name", ErrNotNamedType, t)
	}

	return path.Base(t.PkgPath()) + "." + name, nil
}

// ResolveBestTypeOf resolves the type symbol corresponding to a Go runtime
// type.  It is a thin wrapper over `ResolveBestType`.
func (r *Resolver) ResolveBestTypeOf(c *mods.Compilation, t reflect.Type) (*sem.Symbol, error) {
	name, err := MetadataNameOf(t)
	if err != nil {
		return nil, err
	}

	return r.ResolveBestType(c, name), nil
}

// ResolveAttributeType resolves the type an attribute reference names.  When
// the simple name does not already carry the attribute suffix, the suffixed
// name is tried first, the way attribute references are bound.
func (r *Resolver) ResolveAttributeType(c *mods.Compilation, name string) *sem.Symbol {
	return r.ExplainAttribute(c, name).Symbol
}

// ExplainAttribute is the `Explain` counterpart of `ResolveAttributeType`.  It
// returns the resolution of whichever spelling of the name produced the
// result, or of the unsuffixed name if neither did.  Only the returned
// resolution is reported.
func (r *Resolver) ExplainAttribute(c *mods.Compilation, name string) *Resolution {
	if !sem.HasAttributeSuffix(sem.UnqualifiedName(name), true) {
		if res := r.resolve(c, name+"Attribute"); res.Symbol != nil {
			if r.reporter != nil {
				r.reporter.ReportResolution(res)
			}

			return res
		}
	}

	return r.Explain(c, name)
}
