package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the optional `wandle.yaml` sitting next to a source
// tree, mirroring funxy's own funxy.yaml (internal/ext/config.go),
// parsed with the same gopkg.in/yaml.v3 library.
type ProjectFile struct {
	// StrictArity is reserved for a future grammar revision that would
	// allow variadic or defaulted parameters. LoadProjectFile parses it,
	// but nothing else in the toolchain reads it and every arity check is
	// strict regardless of this value, so setting it to false has no
	// effect.
	StrictArity bool `yaml:"strict_arity"`
}

// DefaultProjectFile is what a project without a wandle.yaml behaves as.
func DefaultProjectFile() ProjectFile {
	return ProjectFile{StrictArity: true}
}

// LoadProjectFile reads and parses path as a wandle.yaml document. A
// missing file is not an error — callers get DefaultProjectFile() back.
func LoadProjectFile(path string) (ProjectFile, error) {
	pf := DefaultProjectFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pf, nil
		}
		return pf, err
	}
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return pf, err
	}
	return pf, nil
}
