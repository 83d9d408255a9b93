package prog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"src.lined.sh/pkg/logutil"
)

var logger = logutil.GetLogger("prog")

// FileConfig is the content of the config file. Every field is optional.
type FileConfig struct {
	Backend string `yaml:"backend"`
	DB      string `yaml:"db"`
	Log     string `yaml:"log"`

	EditRC string `yaml:"editrc"`
	NoRc   bool   `yaml:"norc"`

	History struct {
		Size   int    `yaml:"size"`
		Unique *bool  `yaml:"unique"`
		File   string `yaml:"file"`
	} `yaml:"history"`
}

// DefaultConfigPath returns the path of the config file used when -config is
// not given.
func DefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lined", "config.yaml"), nil
}

// ReadConfig reads a config file. Unknown fields are an error.
func ReadConfig(path string) (*FileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var c FileConfig
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return &c, nil
}

// loadConfig reads the config file named by -config, or the default config
// file if it exists, and fills in the flags that were not given on the command
// line.
func (f *Flags) loadConfig() error {
	path := f.Config
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}
	c, err := ReadConfig(path)
	if err != nil {
		return errors.Wrap(err, "cannot read config")
	}
	if f.Log == "" && c.Log != "" {
		f.Log = expand(c.Log)
		if err := logutil.SetOutputFile(f.Log); err != nil {
			return errors.Wrap(err, "cannot open log file")
		}
	}
	f.merge(c)
	logger.Debug("loaded config", "path", path)
	return nil
}

func (f *Flags) merge(c *FileConfig) {
	setDefault(&f.Backend, c.Backend)
	setDefault(&f.DB, expand(c.DB))
	setDefault(&f.EditRC, expand(c.EditRC))
	f.NoRc = f.NoRc || c.NoRc
	f.HistorySize = c.History.Size
	if c.History.Unique != nil {
		f.NoUniqueHistory = !*c.History.Unique
	}
	f.HistoryFile = expand(c.History.File)
}

// expand expands a leading "~" in paths from the config file. Paths that
// cannot be expanded are kept as is.
func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func setDefault(p *string, v string) {
	if *p == "" {
		*p = v
	}
}
