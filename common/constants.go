package common

const (
	TomlManifestFileName = "symres-mod.toml"
	YamlManifestFileName = "symres-mod.yaml"
	SymresVersion        = "0.1.0"
	LibraryDirName       = "lib"
)

// SymresPath is the path to the shared module library root.  It is empty when
// `SYMRES_PATH` is not set, in which case no global search is performed.
var SymresPath = ""
