// Command seqcalc evaluates sequence expressions from the command line.
//
// The expression is taken from -e, or from stdin when -e is absent.
// Variables are bound with -vars, a JSON object mapping names to integer
// arrays.
//
//	seqcalc -e '$a + [1,2,3]' -vars '{"a":[10,20]}'
//	(11,22,3)
//
//	echo '[1,2,3] << 1' | seqcalc -json
//	[2,4,6]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/maxjmartin/seqcontainer"
)

func main() {
	var (
		exprFlag    = flag.String("e", "", "expression to evaluate (default: read from stdin)")
		varsFlag    = flag.String("vars", "", `variable bindings as JSON, e.g. '{"a":[1,2,3]}'`)
		jsonFlag    = flag.Bool("json", false, "print the result as a JSON array")
		timeoutFlag = flag.Duration("timeout", 30*time.Second, "evaluation timeout")
	)
	flag.Parse()

	if err := run(*exprFlag, *varsFlag, *jsonFlag, *timeoutFlag); err != nil {
		fmt.Fprintln(os.Stderr, "seqcalc:", err)
		os.Exit(1)
	}
}

func run(source, varsJSON string, asJSON bool, timeout time.Duration) error {
	if source == "" {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		source = strings.TrimSpace(string(input))
	}
	if source == "" {
		return fmt.Errorf("no expression given (use -e or stdin)")
	}

	vars := seqcontainer.Vars{}
	if varsJSON != "" {
		raw := map[string][]int64{}
		if err := json.Unmarshal([]byte(varsJSON), &raw); err != nil {
			return fmt.Errorf("parse -vars: %w", err)
		}
		for name, values := range raw {
			vars[name] = seqcontainer.New(values...)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := seqcontainer.EvalWithContext(ctx, source, vars)
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.Marshal(result.ToSlice())
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(result.String())
	return nil
}
