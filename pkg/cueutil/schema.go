// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds how large a user-supplied CUE file may be.
// Configuration files are hand-written; anything beyond this is a mistake
// (or an attempt to make the evaluator allocate unreasonably).
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

// DecodeToMap validates data against the definition defPath (e.g. "#Config")
// inside schema and decodes the unified value into a plain map.
//
// The three-step flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate (non-concrete, since config fields are optional) and decode
//
// The map form exists for Viper integration: callers merge it over defaults
// with MergeConfigMap rather than decoding straight into a struct.
// Validation errors come back formatted via FormatError.
func DecodeToMap(schema, defPath string, data []byte, filename string) (map[string]any, error) {
	if filename == "" {
		filename = "<input>"
	}
	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(defPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out map[string]any
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}

	return out, nil
}
