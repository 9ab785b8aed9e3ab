// Package evalguard evaluates already-parsed guard and value expressions
// against a variable environment using expr-lang/expr, the way
// evaluator.Evaluator evaluates raw LESS expression strings. Unlike the
// teacher's evaluator, it starts from an ast.Expression tree rather than
// unparsed text, so there is no LESS-unit preprocessing pass: units are
// stripped while flattening instead of by regex over a string.
package evalguard

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/go-less/lesscore/ast"
)

// Env is the variable environment a guard or expression is evaluated
// against. Values may be float64, bool, or string.
type Env map[string]any

// Flatten renders an expression tree back to an expr-lang-compatible
// source string: numeric literals lose their unit suffix, and the
// logical/comparison operators are mapped onto expr-lang's spelling.
func Flatten(e ast.Expression) (string, error) {
	var b strings.Builder
	if err := flatten(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

func flatten(b *strings.Builder, e ast.Expression) error {
	switch v := e.(type) {
	case *ast.Numeric:
		fmt.Fprintf(b, "%v", v.Value)
		return nil
	case *ast.Ident:
		if v.Text == "true" || v.Text == "false" {
			b.WriteString(v.Text)
			return nil
		}
		fmt.Fprintf(b, "%q", v.Text)
		return nil
	case *ast.QuotedString:
		fmt.Fprintf(b, "%q", v.Text)
		return nil
	case *ast.Variable:
		b.WriteString(v.Name)
		return nil
	case *ast.Property:
		b.WriteString(v.Name)
		return nil
	case *ast.ListExpr:
		if len(v.Items) == 1 {
			return flatten(b, v.Items[0])
		}
		return fmt.Errorf("evalguard: cannot flatten a %d-item list to a scalar expression", len(v.Items))
	case *ast.UnaryOperation:
		switch v.Op {
		case ast.UnaryNot:
			b.WriteString("not (")
		case ast.UnaryNegate:
			b.WriteString("-(")
		}
		if err := flatten(b, v.Operand); err != nil {
			return err
		}
		b.WriteString(")")
		return nil
	case *ast.BinaryOperation:
		b.WriteString("(")
		if err := flatten(b, v.Left); err != nil {
			return err
		}
		op, err := flattenOp(v.Op)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, " %s ", op)
		if err := flatten(b, v.Right); err != nil {
			return err
		}
		b.WriteString(")")
		return nil
	default:
		return fmt.Errorf("evalguard: %T has no expr-lang rendering", e)
	}
}

func flattenOp(op ast.BinaryOp) (string, error) {
	switch op {
	case ast.OpAdd:
		return "+", nil
	case ast.OpSubtract:
		return "-", nil
	case ast.OpMultiply:
		return "*", nil
	case ast.OpDivide:
		return "/", nil
	case ast.OpEquality:
		return "==", nil
	case ast.OpLessThan:
		return "<", nil
	case ast.OpLessThanOrEqual:
		return "<=", nil
	case ast.OpGreaterThan:
		return ">", nil
	case ast.OpGreaterThanOrEqual:
		return ">=", nil
	case ast.OpAnd:
		return "and", nil
	case ast.OpOr:
		return "or", nil
	default:
		return "", fmt.Errorf("evalguard: unknown binary operator %d", op)
	}
}

// Eval flattens e and runs it through expr.Compile/expr.Run against env,
// matching evaluator.Evaluator.Eval's own compile-then-run sequence.
func Eval(e ast.Expression, env Env) (any, error) {
	src, err := Flatten(e)
	if err != nil {
		return nil, err
	}
	program, err := expr.Compile(src, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("evalguard: compile %q: %w", src, err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evalguard: run %q: %w", src, err)
	}
	return result, nil
}

// EvalGuard runs a `when (...)` guard expression and reports its
// truthiness, the way evaluator.Evaluator.EvalBool coerces an Eval
// result to bool.
func EvalGuard(e ast.Expression, env Env) (bool, error) {
	result, err := Eval(e, env)
	if err != nil {
		return false, err
	}
	switch v := result.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case string:
		return strings.ToLower(strings.TrimSpace(v)) == "true", nil
	default:
		return false, nil
	}
}
