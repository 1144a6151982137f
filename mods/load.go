package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"symres/common"
	"symres/logging"
	"symres/sem"
)

// ErrManifestNotFound is returned when a directory contains no module manifest
var ErrManifestNotFound = errors.New("no module manifest found")

// manifestFile represents the module manifest as it is encoded in TOML or YAML
type manifestFile struct {
	Module     *manifestModule     `toml:"module" yaml:"module"`
	Types      []*manifestType     `toml:"types,omitempty" yaml:"types,omitempty"`
	Resolution *manifestResolution `toml:"resolution,omitempty" yaml:"resolution,omitempty"`
}

// manifestModule is the `[module]` table of a manifest
type manifestModule struct {
	Name            string   `toml:"name" yaml:"name"`
	Version         string   `toml:"symres-version" yaml:"symres-version"`
	References      []string `toml:"references,omitempty" yaml:"references,omitempty"`
	Friends         []string `toml:"friends,omitempty" yaml:"friends,omitempty"`
	LocalImportDirs []string `toml:"local-import-dirs,omitempty" yaml:"local-import-dirs,omitempty"`
}

// manifestType is a single `[[types]]` entry.  The name is a full metadata
// name: everything before the last `.` is the namespace and a `+` marks a
// nested type.
type manifestType struct {
	Name       string            `toml:"name" yaml:"name"`
	Access     string            `toml:"access" yaml:"access"`
	TypeParams []string          `toml:"type-params,omitempty" yaml:"type-params,omitempty"`
	Members    []*manifestMember `toml:"members,omitempty" yaml:"members,omitempty"`
}

// manifestMember is a `[[types.members]]` entry
type manifestMember struct {
	Kind       string   `toml:"kind" yaml:"kind"`
	Name       string   `toml:"name" yaml:"name"`
	Access     string   `toml:"access" yaml:"access"`
	Params     []string `toml:"params,omitempty" yaml:"params,omitempty"`
	TypeParams []string `toml:"type-params,omitempty" yaml:"type-params,omitempty"`
}

// manifestResolution is the optional `[resolution]` table
type manifestResolution struct {
	UniquenessProbe *bool `toml:"uniqueness-probe" yaml:"uniqueness-probe"`
}

// Manifest is a loaded and validated module manifest
type Manifest struct {
	// Dir is the absolute path to the directory containing the manifest
	Dir string

	// Path is the absolute path to the manifest file itself
	Path string

	Name            string
	Version         string
	References      []string
	Friends         []string
	LocalImportDirs []string

	// UniquenessProbe indicates whether resolution should try the global
	// uniqueness fast path first.  Defaults to true.
	UniquenessProbe bool

	types []*manifestType
}

// LoadManifest loads and validates the manifest of the module in `dir`.  A
// TOML manifest is preferred over a YAML one when both exist.
func LoadManifest(dir string) (*Manifest, error) {
	path, ok := FindManifest(dir)
	if !ok {
		return nil, fmt.Errorf("%w in `%s`", ErrManifestNotFound, dir)
	}

	buff, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mf := &manifestFile{}
	if filepath.Base(path) == common.TomlManifestFileName {
		err = toml.Unmarshal(buff, mf)
	} else {
		err = yaml.Unmarshal(buff, mf)
	}

	if err != nil {
		return nil, fmt.Errorf("error parsing manifest at `%s`: %w", path, err)
	}

	if err := validateManifest(dir, mf); err != nil {
		return nil, err
	}

	abspath, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Dir:             abspath,
		Path:            path,
		Name:            mf.Module.Name,
		Version:         mf.Module.Version,
		References:      mf.Module.References,
		Friends:         mf.Module.Friends,
		LocalImportDirs: mf.Module.LocalImportDirs,
		UniquenessProbe: true,
		types:           mf.Types,
	}

	if mf.Resolution != nil && mf.Resolution.UniquenessProbe != nil {
		manifest.UniquenessProbe = *mf.Resolution.UniquenessProbe
	}

	// local import directories are relative to the module directory
	for i, ldPath := range manifest.LocalImportDirs {
		if !filepath.IsAbs(ldPath) {
			manifest.LocalImportDirs[i] = filepath.Join(abspath, ldPath)
		}
	}

	return manifest, nil
}

// FindManifest returns the path of the manifest file in `dir` if one exists
func FindManifest(dir string) (string, bool) {
	for _, name := range []string{common.TomlManifestFileName, common.YamlManifestFileName} {
		path := filepath.Join(dir, name)
		if finfo, err := os.Stat(path); err == nil && !finfo.IsDir() {
			return path, true
		}
	}

	return "", false
}

// validateManifest checks the whole manifest and reports every problem it
// finds at once
func validateManifest(dir string, mf *manifestFile) error {
	if mf.Module == nil {
		return fmt.Errorf("manifest in `%s` is missing the module table", dir)
	}

	var result *multierror.Error
	mod := mf.Module

	if mod.Name == "" {
		result = multierror.Append(result, fmt.Errorf("missing module name for module at `%s`", dir))
	} else if !IsValidIdentifier(mod.Name) {
		result = multierror.Append(result, fmt.Errorf("module name `%s` must be a valid identifier", mod.Name))
	}

	if err := checkVersion(mod.Name, mod.Version); err != nil {
		result = multierror.Append(result, err)
	}

	for _, ref := range mod.References {
		if ref == mod.Name {
			result = multierror.Append(result, fmt.Errorf("module `%s` cannot reference itself", mod.Name))
		}
	}

	seen := make(map[string]struct{})
	for _, mt := range mf.Types {
		if mt.Name == "" {
			result = multierror.Append(result, errors.New("type entry is missing a name"))
			continue
		}

		if err := ValidateMetadataName(mt.Name); err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if _, ok := seen[mt.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("%w: `%s`", ErrDuplicateType, mt.Name))
		}
		seen[mt.Name] = struct{}{}

		if _, err := sem.ParseAccessibility(mt.Access); err != nil {
			result = multierror.Append(result, fmt.Errorf("type `%s`: %w", mt.Name, err))
		}

		for _, mm := range mt.Members {
			if _, err := sem.ParseSymbolKind(mm.Kind); err != nil {
				result = multierror.Append(result, fmt.Errorf("member `%s.%s`: %w", mt.Name, mm.Name, err))
			}

			if _, err := sem.ParseAccessibility(mm.Access); err != nil {
				result = multierror.Append(result, fmt.Errorf("member `%s.%s`: %w", mt.Name, mm.Name, err))
			}
		}
	}

	for _, mt := range mf.Types {
		if plus := strings.LastIndexByte(mt.Name, '+'); plus >= 0 {
			if _, ok := seen[mt.Name[:plus]]; !ok {
				result = multierror.Append(result, fmt.Errorf("nested type `%s` has no enclosing type `%s`", mt.Name, mt.Name[:plus]))
			}
		}
	}

	return result.ErrorOrNil()
}

// checkVersion compares a manifest version against the running version. A
// different major version is an error; any other difference is a warning.
func checkVersion(modName, version string) error {
	if version == "" {
		return fmt.Errorf("module `%s` must specify a symres version", modName)
	}

	modVersion, err := semver.Parse(version)
	if err != nil {
		return fmt.Errorf("module `%s` has an invalid symres version: %w", modName, err)
	}

	current := semver.MustParse(common.SymresVersion)
	if modVersion.Major != current.Major {
		return fmt.Errorf("version of module `%s` (v%s) is incompatible with symres v%s", modName, version, common.SymresVersion)
	}

	if !modVersion.Equals(current) {
		logging.LogBuildWarning(
			"Module",
			fmt.Sprintf("version of module `%s` (v%s) does not match current symres version (v%s)", modName, version, common.SymresVersion),
		)
	}

	return nil
}

// Module materializes the manifest's declarations as a new module.  The
// module's references are not populated: that is the loader's job.
func (mf *Manifest) Module() (*Module, error) {
	mod := NewModule(mf.Name)
	mod.Version = mf.Version

	for _, friend := range mf.Friends {
		mod.AddFriend(friend)
	}

	// declare outer types before the types nested inside them
	types := append([]*manifestType(nil), mf.types...)
	sort.SliceStable(types, func(i, j int) bool {
		return strings.Count(types[i].Name, "+") < strings.Count(types[j].Name, "+")
	})

	for _, mt := range types {
		if err := mf.declareType(mod, mt); err != nil {
			return nil, err
		}
	}

	return mod, nil
}

// declareType declares a single manifest type and its members
func (mf *Manifest) declareType(mod *Module, mt *manifestType) error {
	access, err := sem.ParseAccessibility(mt.Access)
	if err != nil {
		return err
	}

	var typ *sem.Symbol
	if plus := strings.LastIndexByte(mt.Name, '+'); plus >= 0 {
		outer := mod.LookupType(mt.Name[:plus])
		typ, err = mod.DeclareNestedType(outer, mt.Name[plus+1:], access)
	} else if dot := strings.LastIndexByte(mt.Name, '.'); dot >= 0 {
		typ, err = mod.DeclareType(mod.DeclareNamespace(mt.Name[:dot]), mt.Name[dot+1:], access)
	} else {
		typ, err = mod.DeclareType(nil, mt.Name, access)
	}

	if err != nil {
		return err
	}

	for _, tp := range mt.TypeParams {
		if _, err := mod.DeclareMember(typ, sem.KindTypeParameter, tp, sem.AccessNotApplicable); err != nil {
			return err
		}
	}

	for _, mm := range mt.Members {
		kind, err := sem.ParseSymbolKind(mm.Kind)
		if err != nil {
			return err
		}

		access, err := sem.ParseAccessibility(mm.Access)
		if err != nil {
			return err
		}

		member, err := mod.DeclareMember(typ, kind, mm.Name, access)
		if err != nil {
			return fmt.Errorf("type `%s`: %w", mt.Name, err)
		}

		for _, param := range mm.Params {
			if _, err := mod.DeclareMember(member, sem.KindParameter, param, sem.AccessNotApplicable); err != nil {
				return err
			}
		}

		for _, tp := range mm.TypeParams {
			if _, err := mod.DeclareMember(member, sem.KindTypeParameter, tp, sem.AccessNotApplicable); err != nil {
				return err
			}
		}
	}

	return nil
}
