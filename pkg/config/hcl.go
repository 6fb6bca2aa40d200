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
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// 🔧 HCLParser implements the Parser interface for HCL files:
//
//	profile "default" {
//	  sources            = ["~/.gitconfig"]
//	  backup_destination = "/mnt/backup"
//	}
type HCLParser struct{}

type hclDocument struct {
	Profiles []hclProfile `hcl:"profile,block"`
}

type hclProfile struct {
	Name              string   `hcl:"name,label"`
	Sources           []string `hcl:"sources,optional"`
	BackupDestination *string  `hcl:"backup_destination,optional"`
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".hcl"
}

func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte) ([]Definition, error) {
	if filename == "" {
		filename = "config.hcl"
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: parsing HCL: %s", ErrConfigParse, diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var doc hclDocument
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &doc)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: decoding HCL: %s", ErrConfigParse, diags.Error())
	}

	if len(doc.Profiles) == 0 {
		return nil, errors.Errorf("%w: missing profile blocks", ErrConfigParse)
	}

	seen := make(map[string]bool, len(doc.Profiles))
	defs := make([]Definition, 0, len(doc.Profiles))
	for _, block := range doc.Profiles {
		if err := checkDuplicate(seen, block.Name); err != nil {
			return nil, err
		}
		defs = append(defs, Definition{
			Name:              block.Name,
			Sources:           block.Sources,
			BackupDestination: block.BackupDestination,
		})
	}

	zerolog.Ctx(ctx).Debug().Str("file", filename).Int("profiles", len(defs)).Msg("decoded HCL profiles")

	return defs, nil
}
