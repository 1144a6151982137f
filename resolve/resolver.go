package resolve

import (
	"symres/mods"
	"symres/sem"
)

// Resolver is the data structure responsible for finding the best type symbol
// for a metadata name within a compilation.  A resolver holds no per-query
// state: one resolver may serve any number of concurrent queries as long as
// the compilations it is given are not mutated.
type Resolver struct {
	// probe indicates whether the global uniqueness fast path is tried before
	// the local and referenced module searches
	probe bool

	// reporter receives the detailed result of every query if it is set
	reporter Reporter
}

// Option configures a `Resolver`
type Option func(*Resolver)

// WithUniquenessProbe enables or disables the global uniqueness fast path.
// The probe never changes the result of a query.
func WithUniquenessProbe(enabled bool) Option {
	return func(r *Resolver) {
		r.probe = enabled
	}
}

// WithReporter sets the out-of-band channel that receives the detailed
// resolution of every query
func WithReporter(rep Reporter) Option {
	return func(r *Resolver) {
		r.reporter = rep
	}
}

// NewResolver creates a new resolver.  The uniqueness probe is enabled by
// default.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{probe: true}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// defaultResolver backs the package level helpers
var defaultResolver = NewResolver()

// BestType resolves a metadata name with the default resolver
func BestType(c *mods.Compilation, name string) *sem.Symbol {
	return defaultResolver.ResolveBestType(c, name)
}

// ResolveBestType finds the type to use for analysis for a fully qualified
// metadata name.  The returned symbol is the first of the following that
// applies:
//
//  1. the only type with that name anywhere in the compilation, provided the
//     compilation could see it,
//  2. the type declared by the compilation's own module,
//  3. the single type declared by a referenced module that is visible to the
//     compilation: public, or internal with a friend grant.
//
// Otherwise `nil` is returned.  `nil` covers both a miss and an ambiguity.
func (r *Resolver) ResolveBestType(c *mods.Compilation, name string) *sem.Symbol {
	return r.Explain(c, name).Symbol
}

// Explain runs the same resolution as `ResolveBestType` and returns the full
// record of how the result was reached
func (r *Resolver) Explain(c *mods.Compilation, name string) *Resolution {
	res := r.resolve(c, name)

	if r.reporter != nil {
		r.reporter.ReportResolution(res)
	}

	return res
}

// resolve runs the main resolution algorithm
func (r *Resolver) resolve(c *mods.Compilation, name string) *Resolution {
	res := &Resolution{Name: name}

	// nothing to do without a local module
	if c == nil || c.Local == nil {
		return res
	}

	if r.probe {
		if sym, mod := uniqueType(c, name); sym != nil && (mod == c.Local || isVisibleTo(mod, sym, c.Local)) {
			res.Outcome = OutcomeUnique
			res.Symbol = sym
			return res
		}
	}

	// types declared in the compilation itself are always visible to it
	if sym := c.Local.LookupType(name); sym != nil {
		res.Outcome = OutcomeLocal
		res.Symbol = sym
		return res
	}

	for _, mod := range c.ReferencedModules() {
		sym := mod.LookupType(name)
		if sym == nil {
			continue
		}

		cand := Candidate{
			Module:     mod,
			Symbol:     sym,
			Visibility: sem.EvaluateVisibility(sym),
		}

		switch cand.Visibility {
		case sem.VisibilityPublic:
			cand.Accepted = true
		case sem.VisibilityInternal:
			if mod.GrantsAccessTo(c.Local) {
				cand.Accepted = true
			} else {
				cand.Reason = RejectNoFriendGrant
			}
		default:
			cand.Reason = RejectPrivate
		}

		res.Candidates = append(res.Candidates, cand)
		if !cand.Accepted {
			continue
		}

		// multiple visible types with the same metadata name
		if res.Symbol != nil {
			res.Outcome = OutcomeAmbiguous
			res.Symbol = nil
			return res
		}

		res.Symbol = sym
	}

	if res.Symbol != nil {
		res.Outcome = OutcomeReferenced
	}

	return res
}

// uniqueType looks for a type with the given name across the local module and
// every referenced module, ignoring accessibility.  It only returns a symbol
// if exactly one module declares the name.
func uniqueType(c *mods.Compilation, name string) (*sem.Symbol, *mods.Module) {
	sym := c.Local.LookupType(name)
	mod := c.Local
	if sym == nil {
		mod = nil
	}

	for _, ref := range c.ReferencedModules() {
		if refSym := ref.LookupType(name); refSym != nil {
			if sym != nil {
				return nil, nil
			}

			sym, mod = refSym, ref
		}
	}

	return sym, mod
}

// isVisibleTo returns whether a type declared in `decl` can be seen from the
// `caller` module
func isVisibleTo(decl *mods.Module, sym *sem.Symbol, caller *mods.Module) bool {
	switch sem.EvaluateVisibility(sym) {
	case sem.VisibilityPublic:
		return true
	case sem.VisibilityInternal:
		return decl.GrantsAccessTo(caller)
	default:
		return false
	}
}
