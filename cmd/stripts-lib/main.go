// Package main provides a C-callable static library for TypeScript type stripping.
//
// This is built with -buildmode=c-archive to produce libstripts.a
// that can be linked into Zig/C/Rust programs.
//
// Build:
//
//	make lib
//	# or: CGO_ENABLED=1 go build -buildmode=c-archive -o build/libstripts.a ./cmd/stripts-lib
//
// Exported functions:
//
//	stripts_strip(source, source_len, options_json, options_len, out_code, out_code_len, out_json, out_json_len) -> error_code
//	stripts_free(ptr) -> void
//	stripts_version() -> *char
package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"encoding/json"
	"unsafe"

	"codeberg.org/saruga/stripts/pkg/api"
)

// Version should match the release version
const version = "0.1.0"

// Error codes
const (
	STRIPTS_OK              = 0
	STRIPTS_ERR_JSON_ENCODE = 1
	STRIPTS_ERR_NULL_INPUT  = 2
	STRIPTS_ERR_JSON_DECODE = 3
)

// StripOptions mirrors the Go API options for JSON parsing
type StripOptions struct {
	JSX       bool   `json:"jsx"`
	JSXPragma string `json:"jsxPragma"`
}

// StripResult is the JSON result structure for stripping
type StripResult struct {
	Code              string   `json:"code"`
	Errors            []string `json:"errors,omitempty"`
	OriginalSize      int      `json:"originalSize"`
	OutputSize        int      `json:"outputSize"`
	RemovedImports    int      `json:"removedImports"`
	LoweredParamProps int      `json:"loweredParamProps"`
	CompiledEnums     int      `json:"compiledEnums"`
}

// stripts_strip strips type annotations from TypeScript source code.
//
// Parameters:
//   - source: pointer to TypeScript source code (UTF-8)
//   - source_len: length of source in bytes
//   - options_json: pointer to JSON options (can be NULL for defaults)
//   - options_len: length of options JSON
//   - out_code: pointer to receive stripped code (caller must free with stripts_free)
//   - out_code_len: pointer to receive code length
//   - out_json: pointer to receive JSON result with stats (caller must free with stripts_free)
//   - out_json_len: pointer to receive JSON length
//
// Returns:
//   - 0 on success
//   - non-zero error code on failure
//
//export stripts_strip
func stripts_strip(
	source *C.char, source_len C.int,
	options_json *C.char, options_len C.int,
	out_code **C.char, out_code_len *C.int,
	out_json **C.char, out_json_len *C.int,
) C.int {
	if source == nil || out_code == nil || out_code_len == nil {
		return STRIPTS_ERR_NULL_INPUT
	}

	goSource := C.GoStringN(source, source_len)

	// Parse options or use defaults
	opts := api.StripOptions{}
	if options_json != nil && options_len > 0 {
		var jsonOpts StripOptions
		optStr := C.GoStringN(options_json, options_len)
		if err := json.Unmarshal([]byte(optStr), &jsonOpts); err != nil {
			return STRIPTS_ERR_JSON_DECODE
		}
		opts.JSX = jsonOpts.JSX
		opts.JSXPragma = jsonOpts.JSXPragma
	}

	result := api.StripWithOptions(goSource, opts)

	// Set output code
	*out_code = C.CString(result.Code)
	*out_code_len = C.int(len(result.Code))

	// Build JSON result if requested
	if out_json != nil && out_json_len != nil {
		jsonResult := StripResult{
			Code:              result.Code,
			Errors:            result.Errors,
			OriginalSize:      result.OriginalSize,
			OutputSize:        result.OutputSize,
			RemovedImports:    result.RemovedImports,
			LoweredParamProps: result.LoweredParamProps,
			CompiledEnums:     result.CompiledEnums,
		}
		jsonBytes, err := json.Marshal(jsonResult)
		if err != nil {
			return STRIPTS_ERR_JSON_ENCODE
		}
		*out_json = C.CString(string(jsonBytes))
		*out_json_len = C.int(len(jsonBytes))
	}

	return STRIPTS_OK
}

// stripts_free frees memory allocated by stripts functions.
//
// Parameters:
//   - ptr: pointer returned from stripts_strip
//
//export stripts_free
func stripts_free(ptr *C.char) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

// stripts_version returns the library version string.
// The returned pointer is static and must NOT be freed.
//
//export stripts_version
func stripts_version() *C.char {
	return C.CString(version)
}

// Required for c-archive build mode
func main() {}
