// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_shortcut": cty.StringVal(DefaultShortcut),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		DefaultExtensions []string `hcl:"default_extensions,optional"`
		Shortcut          string   `hcl:"jump_to_related_file_shortcut,optional"`
		ExcludePatterns   []string `hcl:"exclude_patterns,optional"`
		Lists             []struct {
			Name       string   `hcl:"name,label"`
			Extensions []string `hcl:"extensions"`
		} `hcl:"extension_list,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		DefaultExtensions:         hclCfg.DefaultExtensions,
		JumpToRelatedFileShortcut: hclCfg.Shortcut,
		ExcludePatterns:           hclCfg.ExcludePatterns,
	}

	for _, l := range hclCfg.Lists {
		if cfg.CustomExtensionLists == nil {
			cfg.CustomExtensionLists = map[string][]string{}
		}
		if _, dup := cfg.CustomExtensionLists[l.Name]; dup {
			return nil, errors.Errorf("decoding HCL: extension_list %q is defined twice", l.Name)
		}
		cfg.CustomExtensionLists[l.Name] = l.Extensions
	}

	return cfg, nil
}
