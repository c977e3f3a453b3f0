package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// BindingsFile is the optional on-disk override for paginator action
// symbols. All four symbols must be set when the file is present.
type BindingsFile struct {
	Bindings BindingsSection `toml:"bindings"`
}

// BindingsSection holds the four action symbols.
type BindingsSection struct {
	Back    string `toml:"back"`
	Forward string `toml:"forward"`
	Jump    string `toml:"jump"`
	Delete  string `toml:"delete"`
}

// LoadBindings decodes a TOML bindings override file.
func LoadBindings(path string) (BindingsFile, error) {
	var file BindingsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return BindingsFile{}, fmt.Errorf("decode bindings file: %w", err)
	}
	return file, nil
}
