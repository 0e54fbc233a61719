/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package modelselect

import (
	"fmt"
	"io"
	"slices"

	"github.com/adhyaay-karnwal/claudecodex/apikey"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a catalog override:
//
//	anthropic:
//	  cli:
//	    default: sonnet
//	    allowed: [sonnet, opus]
//	  api:
//	    default: claude-sonnet-4-20250514
//	    allowed: [claude-sonnet-4-20250514]
//	openai:
//	  ...
type catalogFile map[string]map[string]struct {
	Default string   `yaml:"default"`
	Allowed []string `yaml:"allowed"`
}

var knownProviders = []apikey.Provider{apikey.Anthropic, apikey.OpenAI}

// LoadCatalog parses a YAML catalog override. Cells absent from the file
// keep the built-in defaults and allow-lists. The cell default is always
// treated as allowed even if the file omits it from the list.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding model catalog: %w", err)
	}

	catalog := Default()
	for name, modes := range file {
		provider := apikey.Provider(name)
		if !slices.Contains(knownProviders, provider) {
			return nil, fmt.Errorf("model catalog names unknown provider %q", name)
		}
		for modeName, c := range modes {
			mode := Mode(modeName)
			if mode != ModeCLI && mode != ModeAPI {
				return nil, fmt.Errorf("model catalog names unknown mode %q for provider %q", modeName, name)
			}
			if c.Default == "" {
				return nil, fmt.Errorf("model catalog cell %s/%s has no default", name, modeName)
			}
			allowed := c.Allowed
			if !slices.Contains(allowed, c.Default) {
				allowed = append(allowed, c.Default)
			}
			catalog.cells[provider][mode] = cell{fallback: c.Default, allowed: allowed}
		}
	}
	return catalog, nil
}
