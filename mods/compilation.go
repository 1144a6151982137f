package mods

// Compilation is the unit under analysis: the local module together with the
// ordered list of modules it references.  A compilation is immutable once it
// has been created and may be shared between goroutines freely.
type Compilation struct {
	// Local is the module being analyzed
	Local *Module

	// refs are the direct references of the compilation in declaration order
	refs []*Module

	// closure is the transitive reference closure computed at creation time
	closure []*Module
}

// NewCompilation creates a compilation for a local module and its direct
// references.  If no references are given, the local module's own references
// are used.
func NewCompilation(local *Module, refs ...*Module) *Compilation {
	if len(refs) == 0 && local != nil {
		refs = local.References
	}

	c := &Compilation{
		Local: local,
		refs:  append([]*Module(nil), refs...),
	}
	c.closure = c.computeClosure()

	return c
}

// References returns a copy of the direct references of the compilation
func (c *Compilation) References() []*Module {
	return append([]*Module(nil), c.refs...)
}

// ReferencedModules returns every module reachable from the compilation's
// references, excluding the local module.  Modules appear once in
// breadth-first order with direct references first.
func (c *Compilation) ReferencedModules() []*Module {
	return append([]*Module(nil), c.closure...)
}

// Module returns the referenced module with the given name if it is part of
// the compilation
func (c *Compilation) Module(name string) (*Module, bool) {
	if c.Local != nil && c.Local.Name == name {
		return c.Local, true
	}

	for _, mod := range c.closure {
		if mod.Name == name {
			return mod, true
		}
	}

	return nil, false
}

// computeClosure walks the reference graph breadth-first.  Modules are
// distinguished by identity, never by name.
func (c *Compilation) computeClosure() []*Module {
	visited := make(map[*Module]struct{})
	if c.Local != nil {
		visited[c.Local] = struct{}{}
	}

	var closure []*Module
	queue := append([]*Module(nil), c.refs...)
	for len(queue) > 0 {
		mod := queue[0]
		queue = queue[1:]

		if mod == nil {
			continue
		}

		if _, ok := visited[mod]; ok {
			continue
		}

		visited[mod] = struct{}{}
		closure = append(closure, mod)
		queue = append(queue, mod.References...)
	}

	return closure
}
