package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"symres/common"
)

// InitModule creates a new module manifest with the given name in the given
// directory.  The manifest declares no types and no references.
func InitModule(name, path string) error {
	// check to see if a module already exists
	if existing, ok := FindManifest(path); ok {
		return fmt.Errorf("module manifest already exists at `%s`", existing)
	}

	// validate module name
	if !IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	probe := true
	mf := &manifestFile{
		Module: &manifestModule{
			Name:    name,
			Version: common.SymresVersion,
		},
		Resolution: &manifestResolution{UniquenessProbe: &probe},
	}

	// encode and save manifest to file
	f, err := os.Create(filepath.Join(path, common.TomlManifestFileName))
	if err != nil {
		return fmt.Errorf("error creating module manifest: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(mf); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}

	return nil
}
