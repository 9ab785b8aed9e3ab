package main

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/token"
)

// formatter reprints a stylesheet with consistent indentation, adapted
// from the teacher's Formatter to walk lesscore's own ast.Item/
// ast.Expression types instead of a pre-rendered DST.
type formatter struct {
	indentSize int
	out        bytes.Buffer
	depth      int
}

func newFormatter(indentSize int) *formatter {
	return &formatter{indentSize: indentSize}
}

func (f *formatter) format(s *ast.Stylesheet) string {
	f.out.Reset()
	f.depth = 0
	f.items(s.Items)
	return f.out.String()
}

func (f *formatter) writeIndent() {
	f.out.WriteString(strings.Repeat(" ", f.depth*f.indentSize))
}

func (f *formatter) items(items []ast.Item) {
	for _, it := range items {
		f.item(it)
	}
}

func (f *formatter) item(it ast.Item) {
	f.writeIndent()
	switch v := it.(type) {
	case *ast.AtRule:
		f.out.WriteString("@" + v.Name)
		if txt := rawText(v.Prelude); txt != "" {
			f.out.WriteString(" " + txt)
		}
		if v.HasBlock {
			f.block(v.Block)
		} else {
			f.out.WriteString(";\n")
		}
	case *ast.QualifiedRule:
		f.out.WriteString(rawText(v.Prelude))
		if v.Guard != nil {
			f.out.WriteString(" when (" + exprText(v.Guard) + ")")
		}
		f.out.WriteString(" ")
		f.block(v.Block)
	case *ast.Declaration:
		f.declaration(v)
	case *ast.MixinRule:
		f.out.WriteString(mixinSelectorText(v.Selector))
		f.out.WriteString("(")
		f.out.WriteString(mixinDeclArgsText(v.Arguments))
		f.out.WriteString(")")
		if v.Guard != nil {
			f.out.WriteString(" when (" + exprText(v.Guard) + ")")
		}
		f.out.WriteString(" ")
		f.block(v.Block)
	case *ast.MixinCall:
		f.out.WriteString(mixinSelectorText(v.Selector))
		f.out.WriteString("(")
		f.out.WriteString(mixinCallArgsText(v.Arguments))
		f.out.WriteString(")")
		if v.Important {
			f.out.WriteString(" !important")
		}
		f.out.WriteString(";\n")
	case *ast.VariableCall:
		f.out.WriteString("@" + v.Name + "();\n")
	case *ast.FunctionCallItem:
		f.out.WriteString(v.Name + "(" + exprText(v.Arguments) + ");\n")
	}
}

func (f *formatter) declaration(d *ast.Declaration) {
	switch d.Name.Kind {
	case ast.DeclNameVariable:
		f.out.WriteString("@" + d.Name.Ident)
	case ast.DeclNameIdent:
		f.out.WriteString(d.Name.Ident)
	default:
		f.out.WriteString(rawText(d.Name.Parts))
	}
	f.out.WriteString(": ")
	f.out.WriteString(rawText(d.Value))
	if d.Important {
		f.out.WriteString(" !important")
	}
	f.out.WriteString(";\n")
}

func (f *formatter) block(items []ast.Item) {
	f.out.WriteString("{\n")
	f.depth++
	f.items(items)
	f.depth--
	f.writeIndent()
	f.out.WriteString("}\n")
}

// rawText reprints a token-tree slice token by token from each token's
// own text rather than re-deriving syntax, since the formatter's job is
// indentation, not re-parsing values. Each whitespace run prints as a
// single space; comments are not reprinted.
func rawText(tts []token.TokenTree) string {
	var b strings.Builder
	for _, t := range tts {
		b.WriteString(tokenText(t))
	}
	return b.String()
}

func tokenText(t token.TokenTree) string {
	switch t.Kind {
	case token.Whitespace:
		return " "
	case token.Tree:
		inner := rawText(t.Children)
		return string(t.Delim.Open()) + inner + string(t.Delim.Close())
	case token.Ident:
		return t.Text
	case token.Hash:
		return "#" + t.Text
	case token.String:
		return string(t.Quote) + t.Text + string(t.Quote)
	case token.Number:
		if t.NumText != "" {
			return t.NumText
		}
		return strconv.FormatFloat(float64(t.Num), 'g', -1, 32)
	case token.Symbol:
		return string(t.Ch)
	default:
		return ""
	}
}

func mixinSelectorText(sel ast.MixinSelector) string {
	var b strings.Builder
	for i, seg := range sel.Segments {
		if i > 0 {
			switch seg.Combinator {
			case ast.CombinatorChild:
				b.WriteString(" > ")
			case ast.CombinatorNextSibling:
				b.WriteString(" + ")
			case ast.CombinatorSubsequent:
				b.WriteString(" ~ ")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteRune(seg.Prefix)
		b.WriteString(seg.Name)
	}
	return b.String()
}

func mixinDeclArgsText(args []ast.MixinDeclarationArgument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		switch a.Kind {
		case ast.MixinArgVariable:
			s := "@" + a.Name
			if a.Default != nil {
				s += ": " + exprText(a.Default)
			}
			parts = append(parts, s)
		case ast.MixinArgLiteral:
			parts = append(parts, exprText(a.Value))
		case ast.MixinArgVariadic:
			parts = append(parts, "@"+a.Name+"...")
		}
	}
	return strings.Join(parts, ", ")
}

func mixinCallArgsText(args []ast.MixinCallArgument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a.Name != "" {
			parts = append(parts, "@"+a.Name+": "+exprText(a.Value))
		} else {
			parts = append(parts, exprText(a.Value))
		}
	}
	return strings.Join(parts, ", ")
}

// exprText reconstructs an already-parsed expression's source text,
// the value-position counterpart to rawText's token-span reprinting:
// mixin arguments are stored as ast.Expression rather than raw spans,
// so their text has to be rebuilt from the parsed tree instead.
func exprText(e ast.Expression) string {
	switch v := e.(type) {
	case nil:
		return ""
	case *ast.ListExpr:
		sep := ", "
		switch v.Kind {
		case ast.SemicolonList:
			sep = "; "
		case ast.SpaceList:
			sep = " "
		}
		parts := make([]string, 0, len(v.Items))
		for _, it := range v.Items {
			parts = append(parts, exprText(it))
		}
		return strings.Join(parts, sep)
	case *ast.Ident:
		return v.Text
	case *ast.Numeric:
		text := strconv.FormatFloat(float64(v.Value), 'g', -1, 32)
		if v.HasUnit {
			text += v.Unit
		}
		return text
	case *ast.QuotedString:
		return string(v.Quote) + v.Text + string(v.Quote)
	case *ast.InterpolatedString:
		var b strings.Builder
		b.WriteRune(v.Quote)
		for i, part := range v.Parts {
			b.WriteString(part)
			if i < len(v.Interpolations) {
				b.WriteString(interpolationText(v.Interpolations[i]))
			}
		}
		b.WriteRune(v.Quote)
		return b.String()
	case *ast.Variable:
		return "@" + v.Name
	case *ast.Property:
		return "$" + v.Name
	case *ast.VariableLookup:
		var b strings.Builder
		b.WriteString("@" + v.Name)
		for _, l := range v.Lookups {
			b.WriteString("[" + lookupText(l) + "]")
		}
		return b.String()
	case *ast.DetachedRuleset:
		sub := newFormatter(2)
		sub.items(v.Items)
		return "{\n" + sub.out.String() + "}"
	case *ast.FunctionCall:
		args := ""
		if v.Arguments != nil {
			args = exprText(v.Arguments)
		}
		return v.Name + "(" + args + ")"
	case *ast.MixinCallExpr:
		return mixinSelectorText(v.Selector) + "(" + mixinCallArgsText(v.Arguments) + ")"
	case *ast.BinaryOperation:
		left, right := exprText(v.Left), exprText(v.Right)
		if _, ok := v.Left.(*ast.BinaryOperation); ok {
			left = "(" + left + ")"
		}
		if _, ok := v.Right.(*ast.BinaryOperation); ok {
			right = "(" + right + ")"
		}
		return left + " " + binaryOpText(v.Op) + " " + right
	case *ast.UnaryOperation:
		operand := exprText(v.Operand)
		if _, ok := v.Operand.(*ast.BinaryOperation); ok {
			operand = "(" + operand + ")"
		}
		if v.Op == ast.UnaryNot {
			return "!" + operand
		}
		return "-" + operand
	default:
		return ""
	}
}

// interpolationText renders one InterpolatedString reference back into
// its `@{name}`/`${name}` source form.
func interpolationText(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.Variable:
		return "@{" + v.Name + "}"
	case *ast.Property:
		return "${" + v.Name + "}"
	default:
		return exprText(e)
	}
}

func lookupText(l ast.Lookup) string {
	switch l.Kind {
	case ast.LookupLast:
		return ""
	case ast.LookupIdent:
		return l.Name
	case ast.LookupVariable:
		return "@" + l.Name
	case ast.LookupProperty:
		return "$" + l.Name
	case ast.LookupVariableVariable:
		return "@@" + l.Name
	case ast.LookupVariableProperty:
		return "$@" + l.Name
	default:
		return ""
	}
}

func binaryOpText(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSubtract:
		return "-"
	case ast.OpMultiply:
		return "*"
	case ast.OpDivide:
		return "/"
	case ast.OpEquality:
		return "="
	case ast.OpLessThan:
		return "<"
	case ast.OpLessThanOrEqual:
		return "<="
	case ast.OpGreaterThan:
		return ">"
	case ast.OpGreaterThanOrEqual:
		return ">="
	case ast.OpAnd:
		return "and"
	case ast.OpOr:
		return "or"
	default:
		return ""
	}
}
