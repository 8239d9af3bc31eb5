//go:build wasip1

// Command seqcontainer-wasm-wasi is the WASI (wasip1) entrypoint for use from
// any language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "expr": "<expression>", "vars": { "name": [1,2,3], ... } }
//	stdout: { "result": [<int64>, ...] }    on success
//	        { "error":  "<message>"    }    on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o seqcontainer.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"expr":"$a + [1,2,3]","vars":{"a":[10,20]}}' | wasmtime seqcontainer.wasm
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/maxjmartin/seqcontainer"
)

type request struct {
	Expr string             `json:"expr"`
	Vars map[string][]int64 `json:"vars"`
}

type response struct {
	// Result carries no omitempty: an empty sequence must encode as [].
	Result []int64 `json:"result"`
	Error  string  `json:"error,omitempty"`
}

func writeResponse(r response, exitCode int) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	vars := seqcontainer.Vars{}
	for name, values := range req.Vars {
		vars[name] = seqcontainer.New(values...)
	}

	result, err := seqcontainer.EvalWithContext(context.Background(), req.Expr, vars)
	if err != nil {
		writeResponse(response{Error: err.Error()}, 1)
	}

	writeResponse(response{Result: result.ToSlice()}, 0)
}
