// Package expr evaluates small parenthesized arithmetic expressions.
//
// Supported are decimal literals, the binary operators + - * /, unary
// minus and parentheses, with the usual precedence:
//
//	(1 + 2) * -3   => -9
//	(10 / 4)       => 2.5
//
// Parsing and evaluation are done by github.com/expr-lang/expr; the
// compiled tree is restricted to the grammar above before it runs.
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/file"
)

var (
	// ErrSyntax is returned when the input is not a well-formed expression.
	ErrSyntax = errors.New("syntax error")
	// ErrDivisionByZero is returned when a division has a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// maxDepth bounds parenthesis nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

// divide is the function every '/' is rewritten to.
const divide = "div"

// allowed is the complete character set of the grammar.
const allowed = "0123456789. \t+-*/()"

// LooksParenthesized reports whether s, ignoring surrounding whitespace,
// starts with '(' and ends with ')'.
func LooksParenthesized(s string) bool {
	s = strings.TrimSpace(s)

	return len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')'
}

// Eval evaluates the expression in s.
func Eval(s string) (float64, error) {
	if err := precheck(s); err != nil {
		return 0, err
	}

	restrict := &restrictor{}

	program, err := expr.Compile(s,
		expr.DisableAllBuiltins(),
		expr.Function(divide, div, new(func(float64, float64) float64)),
		expr.Patch(restrict),
		expr.AsFloat64(),
	)

	switch {
	case restrict.err != nil:
		return 0, restrict.err
	case err != nil:
		return 0, syntaxError(err)
	}

	out, err := expr.Run(program, nil)
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			return 0, ErrDivisionByZero
		}

		return 0, fmt.Errorf("evaluating: %w", err)
	}

	value, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: result %v is not a number", ErrSyntax, out)
	}

	return value, nil
}

// precheck rejects empty input, characters outside the grammar and nesting beyond maxDepth.
func precheck(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	depth := 0

	for i, r := range s {
		if !strings.ContainsRune(allowed, r) {
			return fmt.Errorf("%w at offset %d: unexpected %q", ErrSyntax, i, r)
		}

		switch r {
		case '(':
			depth++
			if depth > maxDepth {
				return fmt.Errorf("%w at offset %d: nesting deeper than %d", ErrSyntax, i, maxDepth)
			}
		case ')':
			depth--
		}
	}

	return nil
}

func syntaxError(err error) error {
	var ferr *file.Error
	if errors.As(err, &ferr) {
		return fmt.Errorf("%w at offset %d: %s", ErrSyntax, ferr.From, ferr.Message)
	}

	return fmt.Errorf("%w: %v", ErrSyntax, err) //nolint:errorlint // only ErrSyntax is part of the contract
}

func div(params ...any) (any, error) {
	x, _ := params[0].(float64)
	y, _ := params[1].(float64)

	if y == 0 {
		return nil, ErrDivisionByZero
	}

	return x / y, nil
}

// restrictor walks the parsed tree, rejecting every node outside the
// arithmetic grammar. Integer literals become floats and every division
// becomes a call to div, so the result is always a float64 and a zero
// divisor is reported instead of yielding Inf.
type restrictor struct {
	err error
}

func (r *restrictor) Visit(node *ast.Node) {
	if r.err != nil {
		return
	}

	switch n := (*node).(type) {
	case *ast.FloatNode:
	case *ast.IntegerNode:
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	case *ast.UnaryNode:
		if n.Operator != "-" {
			r.reject(n, "unary "+n.Operator)
		}
	case *ast.BinaryNode:
		switch n.Operator {
		case "+", "-", "*":
		case "/":
			ast.Patch(node, &ast.CallNode{
				Callee:    &ast.IdentifierNode{Value: divide},
				Arguments: []ast.Node{n.Left, n.Right},
			})
		default:
			r.reject(n, "operator "+n.Operator)
		}
	default:
		r.reject(n, fmt.Sprintf("%T", n))
	}
}

func (r *restrictor) reject(node ast.Node, what string) {
	r.err = fmt.Errorf("%w at offset %d: unsupported %s", ErrSyntax, node.Location().From, what)
}
