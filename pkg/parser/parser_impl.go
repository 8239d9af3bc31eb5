package parser

import (
	"fmt"
	"strconv"

	"github.com/maxjmartin/seqcontainer/pkg/types"
)

// defaultMaxDepth bounds expression nesting when no option overrides it.
const defaultMaxDepth = 100

// Parser builds an AST from the token stream of a sequence expression.
type Parser struct {
	lexer    *Lexer
	source   string
	token    Token // Current token
	depth    int
	maxDepth int
}

// NewParser creates a parser for the given source.
func NewParser(source string, opts ...CompileOption) *Parser {
	options := CompileOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxDepth <= 0 {
		options.MaxDepth = defaultMaxDepth
	}
	return &Parser{
		lexer:    NewLexer(source),
		source:   source,
		maxDepth: options.MaxDepth,
	}
}

// Parse consumes the whole input and returns the compiled Expression.
func (p *Parser) Parse() (*types.Expression, error) {
	p.advance()

	ast, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.token.Type != TokenEOF {
		return nil, p.errorf(types.ErrSyntaxError, "unexpected %s after expression", p.token.Type.String())
	}

	return types.NewExpression(ast, p.source), nil
}

// precedence maps binary operator tokens to binding power. The two levels
// mirror Go's grouping of these operators.
var precedence = map[TokenType]int{
	TokenMult: 60,
	TokenDiv:  60,
	TokenMod:  60,
	TokenShl:  60,
	TokenShr:  60,
	TokenAmp:  60,

	TokenPlus:  50,
	TokenMinus: 50,
	TokenPipe:  50,
	TokenCaret: 50,
}

// unaryPrecedence binds prefix operators tighter than any binary operator.
const unaryPrecedence = 70

func (p *Parser) advance() {
	p.token = p.lexer.Next()
}

func (p *Parser) expect(tt TokenType) error {
	if p.token.Type != tt {
		if p.token.Type == TokenEOF {
			return p.errorf(types.ErrUnexpectedEnd, "expected %s before end of expression", tt.String())
		}
		return p.errorf(types.ErrExpectedToken, "expected %s, got %s", tt.String(), p.token.Type.String())
	}
	p.advance()
	return nil
}

func (p *Parser) errorf(code types.ErrorCode, format string, args ...any) error {
	if err := p.lexer.Error(); err != nil {
		return err
	}
	return types.NewError(code, fmt.Sprintf(format, args...), p.token.Position).WithToken(p.token.Value)
}

// parseExpression implements precedence climbing: parse a prefix expression
// (nud), then fold infix operators (led) while their binding power exceeds
// rbp.
func (p *Parser) parseExpression(rbp int) (*types.ASTNode, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, types.NewError(types.ErrDepthExceeded, "expression nesting too deep", p.token.Position)
	}

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		lbp, ok := precedence[p.token.Type]
		if !ok || lbp <= rbp {
			return left, nil
		}
		left, err = p.parseBinaryOp(left, lbp)
		if err != nil {
			return nil, err
		}
	}
}

// parsePrefix parses a prefix expression (nud - null denotation).
func (p *Parser) parsePrefix() (*types.ASTNode, error) {
	switch p.token.Type {
	case TokenNumber:
		return p.parseNumber()
	case TokenVariable:
		return p.parseVariable()
	case TokenBracketOpen:
		return p.parseSequenceLiteral()
	case TokenParenOpen:
		return p.parseGrouping()
	case TokenMinus, TokenTilde, TokenPlus:
		return p.parseUnary()
	case TokenName:
		return p.parseBuiltin()
	case TokenEOF:
		return nil, p.errorf(types.ErrUnexpectedEnd, "unexpected end of expression")
	case TokenError:
		return nil, p.lexer.Error()
	default:
		return nil, p.errorf(types.ErrSyntaxError, "unexpected %s", p.token.Type.String())
	}
}

func (p *Parser) parseNumber() (*types.ASTNode, error) {
	v, err := strconv.ParseInt(p.token.Value, 10, 64)
	if err != nil {
		return nil, p.errorf(types.ErrNumberOutOfRange, "number %s out of range", p.token.Value)
	}
	node := types.NewASTNode(types.NodeNumber, p.token.Position)
	node.NumValue = v
	p.advance()
	return node, nil
}

func (p *Parser) parseVariable() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeVariable, p.token.Position)
	node.Value = p.token.Value
	p.advance()
	return node, nil
}

// parseSequenceLiteral parses [n, n, ...]. Elements are integer literals
// with an optional leading minus; an empty literal [] is the empty
// sequence.
func (p *Parser) parseSequenceLiteral() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeSequence, p.token.Position)
	p.advance()

	for p.token.Type != TokenBracketClose {
		if len(node.Elems) > 0 {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}

		neg := false
		if p.token.Type == TokenMinus {
			neg = true
			p.advance()
		}
		if p.token.Type != TokenNumber {
			if p.token.Type == TokenEOF {
				return nil, p.errorf(types.ErrUnexpectedEnd, "unterminated sequence literal")
			}
			return nil, p.errorf(types.ErrExpectedToken, "expected number in sequence literal, got %s", p.token.Type.String())
		}
		v, err := strconv.ParseInt(p.token.Value, 10, 64)
		if err != nil {
			return nil, p.errorf(types.ErrNumberOutOfRange, "number %s out of range", p.token.Value)
		}
		if neg {
			v = -v
		}
		node.Elems = append(node.Elems, v)
		p.advance()
	}

	p.advance() // consume ]
	return node, nil
}

func (p *Parser) parseGrouping() (*types.ASTNode, error) {
	p.advance()
	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseUnary() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeUnary, p.token.Position)
	node.Value = p.token.Type.String()
	p.advance()

	operand, err := p.parseExpression(unaryPrecedence)
	if err != nil {
		return nil, err
	}
	node.LHS = operand
	return node, nil
}

// parseBuiltin parses the pick(src, idx) call, the only named builtin.
func (p *Parser) parseBuiltin() (*types.ASTNode, error) {
	if p.token.Value != "pick" {
		return nil, p.errorf(types.ErrUnknownFunction, "unknown function %q", p.token.Value)
	}
	node := types.NewASTNode(types.NodePick, p.token.Position)
	p.advance()

	if err := p.expect(TokenParenOpen); err != nil {
		return nil, err
	}
	src, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	idx, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	node.LHS = src
	node.RHS = idx
	return node, nil
}

// parseBinaryOp parses an infix expression (led - left denotation).
// Operators are left-associative: the right side is parsed at the
// operator's own binding power.
func (p *Parser) parseBinaryOp(left *types.ASTNode, lbp int) (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeBinary, p.token.Position)
	node.Value = p.token.Type.String()
	p.advance()

	right, err := p.parseExpression(lbp)
	if err != nil {
		return nil, err
	}

	node.LHS = left
	node.RHS = right
	return node, nil
}
