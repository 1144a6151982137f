package mods

import (
	"io/ioutil"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"symres/common"
)

// ResolveModulePath takes in a referenced module name and attempts to
// determine the directory of that module's manifest based on the search
// context of this manifest
func (mf *Manifest) ResolveModulePath(name string) (string, bool) {
	// referencing the current module resolves to the current module
	if name == mf.Name {
		return mf.Dir, true
	}

	// search the enclosing directory of the module to find any adjacent modules
	if path, foundMod := searchPath(filepath.Dir(mf.Dir), name); foundMod {
		return path, true
	}

	// local directories are next in priority
	for _, ldPath := range mf.LocalImportDirs {
		if path, foundMod := searchPath(ldPath, name); foundMod {
			return path, true
		}
	}

	// finally check the global library path
	if common.SymresPath != "" {
		if path, foundMod := searchPath(filepath.Join(common.SymresPath, common.LibraryDirName), name); foundMod {
			return path, true
		}
	}

	return "", false
}

// searchPath searches a directory for a module with a matching name, and
// returns the abspath to a module in that path if it exists
func searchPath(abspath, modName string) (string, bool) {
	// first we check a subpath with the same name as the module (before we
	// search the directory) since module directories usually share the name of
	// the module
	potentialModPath := filepath.Join(abspath, modName)
	if checkPath(potentialModPath, modName) {
		return potentialModPath, true
	}

	// otherwise, we perform linear search to attempt to find a matching module
	// in the directory (checking each possible path)
	finfos, err := ioutil.ReadDir(abspath)
	if err != nil {
		return "", false
	}

	for _, finfo := range finfos {
		potentialModPath = filepath.Join(abspath, finfo.Name())
		if finfo.IsDir() && checkPath(potentialModPath, modName) {
			return potentialModPath, true
		}
	}

	return "", false
}

// checkPath checks to see if a potential module path is valid -- accepts the
// path to the module directory not the path to the manifest
func checkPath(abspath, modName string) bool {
	mfPath, ok := FindManifest(abspath)
	if !ok {
		return false
	}

	// only the name is checked here so we don't do the full load.  This may
	// not be a valid module at all in which case we shouldn't error since the
	// user didn't explicitly specify that this path was a valid module.
	if filepath.Base(mfPath) == common.TomlManifestFileName {
		tree, err := toml.LoadFile(mfPath)
		if err != nil {
			return false
		}

		if nameField, ok := tree.Get("module.name").(string); ok {
			return nameField == modName
		}

		return false
	}

	buff, err := ioutil.ReadFile(mfPath)
	if err != nil {
		return false
	}

	var header struct {
		Module struct {
			Name string `yaml:"name"`
		} `yaml:"module"`
	}

	if err := yaml.Unmarshal(buff, &header); err != nil {
		return false
	}

	return header.Module.Name == modName
}
