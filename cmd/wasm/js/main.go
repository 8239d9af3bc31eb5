//go:build js && wasm

// Command seqcontainer-wasm-js is the WebAssembly entrypoint for browser and
// Node.js.
//
// It exposes a global `seqcontainer` object with the following API:
//
//	seqcontainer.version()             → string
//	seqcontainer.eval(expr, varsJSON)  → resultJSON  (throws on error)
//	seqcontainer.compile(expr)         → { eval(varsJSON) → resultJSON }  (throws on error)
//
// vars is a JSON object mapping names to integer arrays; result is a JSON
// integer array.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o seqcontainer.wasm ./cmd/wasm/js/
//
// Usage in Node.js:
//
//	const sc = await load()
//	const result = sc.eval('$a + [1,2,3]', JSON.stringify({a:[10,20]}))
//	console.log(JSON.parse(result)) // [11,22,3]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/maxjmartin/seqcontainer"
	"github.com/maxjmartin/seqcontainer/pkg/evaluator"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

func decodeVars(varsJSON string) seqcontainer.Vars {
	raw := map[string][]int64{}
	if varsJSON != "" {
		if err := json.Unmarshal([]byte(varsJSON), &raw); err != nil {
			jsThrow(fmt.Sprintf("seqcontainer: invalid vars JSON: %v", err))
		}
	}
	vars := seqcontainer.Vars{}
	for name, values := range raw {
		vars[name] = seqcontainer.New(values...)
	}
	return vars
}

// jsEval implements seqcontainer.eval(expr, varsJSON) → resultJSON.
func jsEval(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("seqcontainer.eval requires at least 1 argument: expr (string)")
	}
	source := args[0].String()
	varsJSON := ""
	if len(args) >= 2 {
		varsJSON = args[1].String()
	}

	result, err := seqcontainer.EvalWithContext(context.Background(), source, decodeVars(varsJSON))
	if err != nil {
		jsThrow(fmt.Sprintf("seqcontainer.eval: %v", err))
	}

	out, err := json.Marshal(result.ToSlice())
	if err != nil {
		jsThrow(fmt.Sprintf("seqcontainer.eval: marshal result: %v", err))
	}
	return string(out)
}

// jsCompile implements seqcontainer.compile(expr) → { eval(varsJSON) → resultJSON }.
func jsCompile(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("seqcontainer.compile requires 1 argument: expr (string)")
	}
	source := args[0].String()

	expr, err := seqcontainer.Compile(source)
	if err != nil {
		jsThrow(fmt.Sprintf("seqcontainer.compile: %v", err))
	}

	ev := evaluator.New()

	evalFn := js.FuncOf(func(_ js.Value, innerArgs []js.Value) interface{} {
		varsJSON := ""
		if len(innerArgs) >= 1 {
			varsJSON = innerArgs[0].String()
		}
		r, e := ev.Eval(context.Background(), expr, decodeVars(varsJSON))
		if e != nil {
			jsThrow(fmt.Sprintf("compiled.eval: %v", e))
		}
		out, _ := json.Marshal(r.ToSlice())
		return string(out)
	})

	return js.ValueOf(map[string]interface{}{"eval": evalFn})
}

func main() {
	api := map[string]interface{}{
		"eval":    js.FuncOf(jsEval),
		"compile": js.FuncOf(jsCompile),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return seqcontainer.Version()
		}),
	}
	js.Global().Set("seqcontainer", js.ValueOf(api))

	// Block forever; the JS event loop owns execution from here.
	select {}
}
