// Package evaluator turns parsed sequence expressions into results.
//
// The evaluator receives an AST from the parser and a set of variable
// bindings, builds a single lazy expression tree over the bound sequences
// (no computation, no intermediate sequences), and then materializes that
// tree exactly once into a fresh sequence. All arithmetic semantics live in
// the lazy core (pkg/expr, pkg/ops, pkg/seq); this package only binds names
// and enforces the outer-surface limits.
//
// # Example
//
//	ev := evaluator.New()
//	expr, _ := parser.Parse("$a + $b * 2")
//	result, err := ev.Eval(ctx, expr, evaluator.Vars{
//	    "a": seq.New[int64](1, 2, 3),
//	    "b": seq.New[int64](10, 20, 30),
//	})
package evaluator

import (
	"context"
	"log/slog"
	"time"

	"github.com/maxjmartin/seqcontainer/pkg/cache"
	"github.com/maxjmartin/seqcontainer/pkg/expr"
	"github.com/maxjmartin/seqcontainer/pkg/ops"
	"github.com/maxjmartin/seqcontainer/pkg/parser"
	"github.com/maxjmartin/seqcontainer/pkg/seq"
	"github.com/maxjmartin/seqcontainer/pkg/types"
)

// Vars maps variable names (without the $ sigil) to the sequences they are
// bound to for one evaluation.
type Vars map[string]*seq.Sequence[int64]

// Evaluator evaluates compiled sequence expressions against variable
// bindings. Safe for concurrent use: it holds no per-evaluation state.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
	cache  *cache.Cache // non-nil when Caching is enabled
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Caching enables compilation caching for EvalSource.
	// Compiled expressions are cached by source string with LRU eviction.
	Caching bool
	// CacheSize sets the maximum number of cached expressions.
	// Only used when Caching is true and no explicit Cache is provided.
	// Defaults to 256.
	CacheSize int
	// Cache is a custom expression cache. If non-nil, Caching is implicitly
	// enabled.
	Cache *cache.Cache
	// MaxElements caps the length of a materialized result. 0 means no cap.
	MaxElements int
	// Timeout bounds a single Eval when the caller's context has no
	// deadline of its own.
	Timeout time.Duration
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// EvalOption configures an Evaluator.
type EvalOption func(*EvalOptions)

// WithCaching toggles compilation caching for EvalSource.
func WithCaching(enable bool) EvalOption {
	return func(o *EvalOptions) { o.Caching = enable }
}

// WithCache supplies a custom expression cache, implicitly enabling caching.
func WithCache(c *cache.Cache) EvalOption {
	return func(o *EvalOptions) { o.Cache = c }
}

// WithMaxElements caps the length of materialized results.
func WithMaxElements(n int) EvalOption {
	return func(o *EvalOptions) { o.MaxElements = n }
}

// WithTimeout bounds each evaluation.
func WithTimeout(d time.Duration) EvalOption {
	return func(o *EvalOptions) { o.Timeout = d }
}

// WithDebug enables debug logging.
func WithDebug(enable bool) EvalOption {
	return func(o *EvalOptions) { o.Debug = enable }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) EvalOption {
	return func(o *EvalOptions) { o.Logger = l }
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		Timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		size := options.CacheSize
		if size <= 0 {
			size = 256
		}
		c = cache.New(size)
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Cache returns the expression cache, or nil if caching is disabled.
func (e *Evaluator) Cache() *cache.Cache {
	return e.cache
}

// Eval evaluates a compiled expression against vars and returns the
// materialized result.
//
// The returned sequence is freshly allocated; evaluating the same
// expression twice yields independent, identical sequences.
func (e *Evaluator) Eval(ctx context.Context, expression *types.Expression, vars Vars) (*seq.Sequence[int64], error) {
	if _, ok := ctx.Deadline(); !ok && e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	tree, err := e.build(expression.AST(), vars)
	if err != nil {
		return nil, err
	}

	if max := e.opts.MaxElements; max > 0 && tree.Len() > max {
		return nil, types.NewError(types.ErrTooManyElements, "result exceeds the configured element cap", -1)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.opts.Debug {
		e.logger.Debug("materializing expression",
			"source", expression.Source(),
			"len", tree.Len(),
		)
	}

	return seq.FromExpr[int64](tree), nil
}

// EvalSource compiles source (through the cache when enabled) and evaluates
// it against vars.
func (e *Evaluator) EvalSource(ctx context.Context, source string, vars Vars) (*seq.Sequence[int64], error) {
	expression, err := e.compile(source)
	if err != nil {
		return nil, err
	}
	return e.Eval(ctx, expression, vars)
}

func (e *Evaluator) compile(source string) (*types.Expression, error) {
	if e.cache == nil {
		return parser.Parse(source)
	}
	return e.cache.GetOrCompile(source, func() (*types.Expression, error) {
		return parser.Parse(source)
	})
}

// build walks the AST and assembles the lazy operand tree. It performs no
// arithmetic: sequence literals become concrete sequences, numbers become
// broadcast scalars, operators become deferred nodes.
func (e *Evaluator) build(node *types.ASTNode, vars Vars) (expr.Expr[int64], error) {
	switch node.Type {
	case types.NodeNumber:
		return expr.Constant(node.NumValue), nil

	case types.NodeSequence:
		return seq.New(node.Elems...), nil

	case types.NodeVariable:
		s, ok := vars[node.Value]
		if !ok {
			return nil, types.NewError(types.ErrUndefinedVariable, "undefined variable $"+node.Value, node.Position)
		}
		return s, nil

	case types.NodeBinary:
		left, err := e.build(node.LHS, vars)
		if err != nil {
			return nil, err
		}
		right, err := e.build(node.RHS, vars)
		if err != nil {
			return nil, err
		}
		op, ok := binaryOp(node.Value)
		if !ok {
			return nil, types.NewError(types.ErrSyntaxError, "unsupported operator "+node.Value, node.Position)
		}
		return expr.NewNode(left, op, right), nil

	case types.NodeUnary:
		operand, err := e.build(node.LHS, vars)
		if err != nil {
			return nil, err
		}
		switch node.Value {
		case "+":
			return operand, nil
		case "-":
			// -x is the deferred 0 - x; the zero scalar broadcasts, so the
			// node inherits the operand's length.
			return expr.NewNode[int64](expr.Constant[int64](0), ops.Sub, operand), nil
		case "~":
			// ^x is the deferred x XOR all-ones.
			return expr.NewNode[int64](operand, ops.Xor, expr.Constant[int64](-1)), nil
		default:
			return nil, types.NewError(types.ErrSyntaxError, "unsupported unary operator "+node.Value, node.Position)
		}

	case types.NodePick:
		src, err := e.build(node.LHS, vars)
		if err != nil {
			return nil, err
		}
		idx, err := e.build(node.RHS, vars)
		if err != nil {
			return nil, err
		}
		return expr.NewPick(src, idx), nil

	default:
		return nil, types.NewError(types.ErrSyntaxError, "unsupported node kind "+string(node.Type), node.Position)
	}
}

// binaryOp maps an operator symbol to its operation tag.
func binaryOp(symbol string) (ops.Op, bool) {
	switch symbol {
	case "+":
		return ops.Add, true
	case "-":
		return ops.Sub, true
	case "*":
		return ops.Mul, true
	case "/":
		return ops.Div, true
	case "%":
		return ops.Mod, true
	case "&":
		return ops.And, true
	case "|":
		return ops.Or, true
	case "^":
		return ops.Xor, true
	case "<<":
		return ops.Shl, true
	case ">>":
		return ops.Shr, true
	default:
		return 0, false
	}
}
