package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in the working directory.
const FileName = ".stringify.yaml"

// fileSchema mirrors the YAML layout of a .stringify.yaml project file.
// All fields are optional; absent fields keep their defaults.
type fileSchema struct {
	Spreadsheet string `yaml:"spreadsheet"`
	Path        string `yaml:"path"`
	Credentials string `yaml:"credentials"`
	Android     struct {
		XMLName         string `yaml:"xml_name"`
		DefaultLanguage string `yaml:"default_language"`
	} `yaml:"android"`
	IOS struct {
		Filename string `yaml:"filename"`
	} `yaml:"ios"`
}

// LoadFile overlays the project file at path onto c. A missing file is
// not an error; a malformed one is.
func LoadFile(c Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("reading %s: %w", path, err)
	}

	var f fileSchema
	if err := yaml.Unmarshal(data, &f); err != nil {
		return c, fmt.Errorf("parsing %s: %w", path, err)
	}

	if f.Spreadsheet != "" {
		c.Spreadsheet = f.Spreadsheet
	}
	if f.Path != "" {
		c.Path = f.Path
	}
	if f.Credentials != "" {
		c.CredentialsPath = f.Credentials
	}
	if f.Android.XMLName != "" {
		c.Android.XMLName = f.Android.XMLName
	}
	if f.Android.DefaultLanguage != "" {
		c.Android.DefaultLanguage = f.Android.DefaultLanguage
	}
	if f.IOS.Filename != "" {
		c.IOS.Filename = f.IOS.Filename
	}
	return c, nil
}

// Discover loads the project file from dir when one exists.
func Discover(c Config, dir string) (Config, error) {
	return LoadFile(c, filepath.Join(dir, FileName))
}
