package build

import (
	"errors"
	"fmt"
	"path/filepath"

	"symres/logging"
	"symres/mods"
)

// ErrReferenceCycle is returned when module references form a cycle
var ErrReferenceCycle = errors.New("module reference cycle")

// Loader is the data structure responsible for turning a root module manifest
// and the manifests of everything it references into a compilation
type Loader struct {
	// Prelude is the name of a module that every other loaded module
	// references implicitly.  It is empty if there is no prelude.
	Prelude string

	// root is the manifest of the root module
	root *mods.Manifest

	// depGraph is the graph of all the loaded modules organized by name.  A
	// referenced name always denotes the module loaded under it first.
	depGraph map[string]*mods.Module

	// loading marks the modules whose references are still being loaded;
	// reaching one of them again means the references form a cycle
	loading map[string]bool
}

// NewLoader creates a new loader
func NewLoader() *Loader {
	return &Loader{
		depGraph: make(map[string]*mods.Module),
		loading:  make(map[string]bool),
	}
}

// Load loads the module in `rootDir` and every module it references directly
// or transitively.  The returned compilation treats the root module as its
// local module.
func (l *Loader) Load(rootDir string) (*mods.Compilation, error) {
	abspath, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	rootMod, manifest, err := l.loadModule(abspath)
	if err != nil {
		return nil, err
	}

	l.root = manifest
	return mods.NewCompilation(rootMod), nil
}

// RootManifest returns the manifest of the most recently loaded root module
func (l *Loader) RootManifest() *mods.Manifest {
	return l.root
}

// Modules returns the number of distinct modules the loader has loaded
func (l *Loader) Modules() int {
	return len(l.depGraph)
}

// loadModule loads a single module and then recursively loads its references
func (l *Loader) loadModule(dir string) (*mods.Module, *mods.Manifest, error) {
	manifest, err := mods.LoadManifest(dir)
	if err != nil {
		return nil, nil, err
	}

	if loadedMod, ok := l.depGraph[manifest.Name]; ok {
		if l.loading[manifest.Name] {
			return nil, nil, fmt.Errorf("%w: module `%s` references itself through its dependencies", ErrReferenceCycle, manifest.Name)
		}

		return loadedMod, manifest, nil
	}

	mod, err := manifest.Module()
	if err != nil {
		return nil, nil, fmt.Errorf("error loading module `%s`: %w", manifest.Name, err)
	}

	l.depGraph[manifest.Name] = mod
	l.loading[manifest.Name] = true
	defer delete(l.loading, manifest.Name)

	refs := manifest.References
	if l.Prelude != "" && manifest.Name != l.Prelude {
		refs = append(append([]string(nil), refs...), l.Prelude)
	}

	for _, refName := range refs {
		refMod, err := l.findModule(manifest, refName)
		if err != nil {
			return nil, nil, err
		}

		mod.AddReference(refMod)
	}

	if mod.Types() == 0 {
		logging.LogBuildWarning("Module", fmt.Sprintf("module `%s` declares no types", mod.Name))
	}

	return mod, manifest, nil
}

// findModule attempts to locate and load (if not already loaded) a module
// based on its name.  The `parent` manifest provides the search context for
// finding the module (eg. local import directories).
func (l *Loader) findModule(parent *mods.Manifest, modName string) (*mods.Module, error) {
	// check first to see if we have already loaded the module
	if loadedMod, ok := l.depGraph[modName]; ok {
		if l.loading[modName] {
			return nil, fmt.Errorf("%w: `%s` and `%s`", ErrReferenceCycle, parent.Name, modName)
		}

		return loadedMod, nil
	}

	if modAbsPath, ok := parent.ResolveModulePath(modName); ok {
		mod, _, err := l.loadModule(modAbsPath)
		return mod, err
	}

	return nil, fmt.Errorf("unable to locate module by name `%s` (referenced by `%s`)", modName, parent.Name)
}
