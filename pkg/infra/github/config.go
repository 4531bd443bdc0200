package github

import (
	"path/filepath"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/m-mizutani/approval-checker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// DecodePolicy decodes a policy file by its extension. .toml files are read
// as TOML and .json files as YAML 1.2, where only true/false are booleans.
// Anything else is YAML 1.1, so yes/no/on/off scalars are booleans too.
func DecodePolicy(filename string, data []byte) (*model.PolicyDocument, error) {
	var v any

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode TOML policy", goerr.V("file", filename))
		}
	case ".json":
		if err := goyaml.Unmarshal(data, &v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode JSON policy", goerr.V("file", filename))
		}
	default:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode YAML policy", goerr.V("file", filename))
		}
	}

	return &model.PolicyDocument{
		Source: filename,
		Data:   v,
	}, nil
}
