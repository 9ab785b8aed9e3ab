// Package ast defines the typed syntax tree the structural and expression
// parsers produce: items, expressions, lookups, and the selector grammar
// used by mixin and qualified-rule preludes. Every closed alternative set
// (Item, Expression, SimpleSelector, ...) is expressed as an interface
// with an unexported marker method plus one concrete type per variant, so
// a type switch is the only way to inspect one — no open inheritance.
package ast

import "github.com/go-less/lesscore/token"

// Span is a half-open byte range into the original input.
type Span = token.Span

// Stylesheet is the root of a parsed document: an ordered list of items.
type Stylesheet struct {
	Items []Item
}

// Item is one of AtRule, QualifiedRule, Declaration, MixinRule, MixinCall,
// VariableCall, or FunctionCallItem.
type Item interface {
	isItem()
	Span() Span
}

type itemBase struct{ Pos Span }

func (b itemBase) Span() Span { return b.Pos }

// AtRule is `@name prelude? ( ';' | '{' block '}' | EOF )`.
type AtRule struct {
	itemBase
	Name     string
	Prelude  []token.TokenTree
	Block    []Item
	HasBlock bool
}

func (*AtRule) isItem() {}

// NewAtRule constructs an AtRule with its span.
func NewAtRule(pos Span, name string, prelude []token.TokenTree, block []Item, hasBlock bool) *AtRule {
	return &AtRule{itemBase: itemBase{Pos: pos}, Name: name, Prelude: prelude, Block: block, HasBlock: hasBlock}
}

// QualifiedRule is `prelude ( when '(' guard ')' )? '{' block '}'`.
type QualifiedRule struct {
	itemBase
	Prelude []token.TokenTree
	Guard   Expression
	Block   []Item
}

func (*QualifiedRule) isItem() {}

func NewQualifiedRule(pos Span, prelude []token.TokenTree, guard Expression, block []Item) *QualifiedRule {
	return &QualifiedRule{itemBase: itemBase{Pos: pos}, Prelude: prelude, Guard: guard, Block: block}
}

// DeclarationNameKind discriminates a declaration's name shape.
type DeclarationNameKind int

const (
	DeclNameIdent DeclarationNameKind = iota
	DeclNameVariable
	DeclNameInterpolated
)

// DeclarationName is a plain ident, a `@`-prefixed variable name, or an
// interpolated sequence mixing idents, dashes, and `@{...}` groups.
type DeclarationName struct {
	Kind  DeclarationNameKind
	Ident string
	Parts []token.TokenTree
}

// Declaration is `name ':' value ( '!' 'important' )? ( ';' | EOF )`.
type Declaration struct {
	itemBase
	Name      DeclarationName
	Value     []token.TokenTree
	Important bool
}

func (*Declaration) isItem() {}

func NewDeclaration(pos Span, name DeclarationName, value []token.TokenTree, important bool) *Declaration {
	return &Declaration{itemBase: itemBase{Pos: pos}, Name: name, Value: value, Important: important}
}

// CombinatorKind enumerates selector and mixin-selector combinators.
type CombinatorKind int

const (
	CombinatorDescendant CombinatorKind = iota
	CombinatorChild
	CombinatorNextSibling
	CombinatorSubsequent
)

// MixinSelectorSegment is one `.`/`#`-prefixed name in a mixin selector
// chain. Combinator joins this segment to the previous one; it is
// meaningless on the first segment.
type MixinSelectorSegment struct {
	Prefix     rune
	Name       string
	Combinator CombinatorKind
}

// MixinSelector is a chain of class/id segments, e.g. `.a > .b`.
type MixinSelector struct {
	Segments []MixinSelectorSegment
}

// MixinDeclArgKind discriminates a mixin-declaration argument slot.
type MixinDeclArgKind int

const (
	MixinArgVariable MixinDeclArgKind = iota
	MixinArgLiteral
	MixinArgVariadic
)

// MixinDeclarationArgument is one parameter of a mixin definition.
type MixinDeclarationArgument struct {
	Kind    MixinDeclArgKind
	Name    string     // Variable, Variadic (may be empty for Variadic)
	Default Expression // Variable only; nil if no default
	Value   Expression // Literal only
}

// MixinRule is a mixin *definition*:
// `('.'|'#') ident '(' args ')' ('when' '(' guard ')')? '{' block '}'`.
type MixinRule struct {
	itemBase
	Selector  MixinSelector
	Arguments []MixinDeclarationArgument
	Guard     Expression
	Block     []Item
}

func (*MixinRule) isItem() {}

func NewMixinRule(pos Span, sel MixinSelector, args []MixinDeclarationArgument, guard Expression, block []Item) *MixinRule {
	return &MixinRule{itemBase: itemBase{Pos: pos}, Selector: sel, Arguments: args, Guard: guard, Block: block}
}

// MixinCallArgument is one argument of a mixin invocation.
type MixinCallArgument struct {
	Name  string // empty if positional
	Value Expression
}

// MixinCall is a mixin *invocation* used as a statement: `selector '(' args
// ')' '!important'? ';'`.
type MixinCall struct {
	itemBase
	Selector  MixinSelector
	Arguments []MixinCallArgument
	Important bool
}

func (*MixinCall) isItem() {}

func NewMixinCall(pos Span, sel MixinSelector, args []MixinCallArgument, important bool) *MixinCall {
	return &MixinCall{itemBase: itemBase{Pos: pos}, Selector: sel, Arguments: args, Important: important}
}

// VariableCall is `@ident '(' ')' ';'`. Lookups is a future-compatible
// slot the grammar does not currently populate.
type VariableCall struct {
	itemBase
	Name    string
	Lookups []Lookup
}

func (*VariableCall) isItem() {}

func NewVariableCall(pos Span, name string) *VariableCall {
	return &VariableCall{itemBase: itemBase{Pos: pos}, Name: name}
}

// FunctionCallItem is `ident '(' args ')' ';'` appearing as a top-level
// item (as opposed to FunctionCall, which appears inside expressions).
type FunctionCallItem struct {
	itemBase
	Name      string
	Arguments Expression
}

func (*FunctionCallItem) isItem() {}

func NewFunctionCallItem(pos Span, name string, args Expression) *FunctionCallItem {
	return &FunctionCallItem{itemBase: itemBase{Pos: pos}, Name: name, Arguments: args}
}

// Expression is the value-tree sum type: lists, literals, references,
// composites, and operators.
type Expression interface {
	isExpr()
}

// ListKind discriminates the three list separators.
type ListKind int

const (
	SemicolonList ListKind = iota
	CommaList
	SpaceList
)

// ListExpr is a non-empty ordered sequence joined by one separator kind.
type ListExpr struct {
	Kind  ListKind
	Items []Expression
}

func (*ListExpr) isExpr() {}

// Ident is a bare identifier literal appearing in value position.
type Ident struct{ Text string }

func (*Ident) isExpr() {}

// Numeric is a number literal with an optional trailing unit or `%`.
type Numeric struct {
	Value   float32
	Unit    string
	HasUnit bool
}

func (*Numeric) isExpr() {}

// QuotedString is a plain (non-interpolated) quoted string.
type QuotedString struct {
	Text  string
	Quote rune
}

func (*QuotedString) isExpr() {}

// InterpolatedString alternates literal Parts with Interpolations such
// that len(Parts) == len(Interpolations)+1. Each interpolation is a
// *Variable or a *Property.
type InterpolatedString struct {
	Parts          []string
	Interpolations []Expression
	Quote          rune
}

func (*InterpolatedString) isExpr() {}

// Variable is `@ident` with no lookups.
type Variable struct{ Name string }

func (*Variable) isExpr() {}

// Property is `$ident`.
type Property struct{ Name string }

func (*Property) isExpr() {}

// VariableLookup is `@ident` followed by one or more `[lookup]` groups.
type VariableLookup struct {
	Name    string
	Lookups []Lookup
}

func (*VariableLookup) isExpr() {}

// DetachedRuleset is a `{...}` block used in value position.
type DetachedRuleset struct {
	Items []Item
}

func (*DetachedRuleset) isExpr() {}

// FunctionCall is `ident '(' args ')'` in value position.
type FunctionCall struct {
	Name      string
	Arguments Expression
}

func (*FunctionCall) isExpr() {}

// MixinCallExpr is a mixin call used in value position, with no
// terminating `;`.
type MixinCallExpr struct {
	Selector  MixinSelector
	Arguments []MixinCallArgument
}

func (*MixinCallExpr) isExpr() {}

// BinaryOp enumerates the binary operators the expression grammar climbs
// through, from logical down to product precedence.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpEquality
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpAnd
	OpOr
)

// BinaryOperation is a left-associative binary application.
type BinaryOperation struct {
	Op          BinaryOp
	Left, Right Expression
}

func (*BinaryOperation) isExpr() {}

// UnaryOp enumerates the unary prefix operators.
type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNegate
)

// UnaryOperation is a unary prefix application.
type UnaryOperation struct {
	Op      UnaryOp
	Operand Expression
}

func (*UnaryOperation) isExpr() {}

// LookupKind enumerates the six `[...]` lookup element shapes.
type LookupKind int

const (
	LookupLast LookupKind = iota
	LookupIdent
	LookupVariable
	LookupProperty
	LookupVariableVariable
	LookupVariableProperty
)

// Lookup is one bracketed accessor in a lookup chain. Name is empty for
// LookupLast.
type Lookup struct {
	Kind LookupKind
	Name string
}

// SimpleSelectorKind enumerates the simple-selector alternatives.
type SimpleSelectorKind int

const (
	SelUniversal SimpleSelectorKind = iota
	SelType
	SelID
	SelClass
	SelAttribute
	SelPseudoClass
	SelPseudoElement
	SelNot
)

// SimpleSelector is one non-combinator selector component.
type SimpleSelector struct {
	Kind SimpleSelectorKind
	Name string
	Not  *SimpleSelector // meaningful only when Kind == SelNot
}

// Selector is a sequence of simple-selector groups joined by combinators;
// len(Combinators) == len(Sequences)-1.
type Selector struct {
	Sequences   [][]SimpleSelector
	Combinators []CombinatorKind
}

// SelectorGroup is a non-empty, comma-joined list of selectors.
type SelectorGroup struct {
	Selectors []Selector
}
