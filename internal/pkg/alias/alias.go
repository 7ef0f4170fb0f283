package alias

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Resolver maps friendly device names to device IDs
type Resolver struct {
	aliases map[string]string
}

func NewResolver(aliases map[string]string) Resolver {
	if aliases == nil {
		aliases = map[string]string{}
	}

	return Resolver{aliases: aliases}
}

// Resolve returns the ID for name, or name itself when it is not an alias
func (r Resolver) Resolve(name string) string {
	if id, ok := r.aliases[name]; ok {
		return id
	}

	return name
}

func (r Resolver) Len() int {
	return len(r.aliases)
}

// Load reads a flat name->id map.  Files ending in .yaml or .yml are read
// as YAML, everything else as JSON.  An empty path gives an empty resolver.
func Load(fileName string) (Resolver, error) {
	if fileName == "" {
		return NewResolver(nil), nil
	}

	fileName, err := homedir.Expand(fileName)
	if err != nil {
		return Resolver{}, errors.Wrapf(err, "expanding alias file name %s", fileName)
	}

	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return Resolver{}, errors.Wrapf(err, "reading alias file %s", fileName)
	}

	aliases := map[string]string{}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &aliases)
	default:
		err = json.Unmarshal(data, &aliases)
	}
	if err != nil {
		return Resolver{}, errors.Wrapf(err, "parsing alias file %s", fileName)
	}

	return NewResolver(aliases), nil
}
