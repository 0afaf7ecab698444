package ast

import "github.com/xs-lang/xscheck/span"

// Body is an ordered list of spanned statements, the contents of any
// brace-delimited (or single-statement) block.
type Body []span.Spanned[Stmt]

// Stmt is the closed set of top-level and local statement forms.
type Stmt interface {
	isStmt()
}

// Param is one formal parameter of a function definition. XS requires
// every parameter to carry a default value; there is no optional-default
// grammar.
type Param struct {
	Type    Type
	Name    span.Spanned[string]
	Default span.Spanned[Expr]
}

// RuleOptKind discriminates rule-option annotation forms.
type RuleOptKind int

const (
	RuleActive RuleOptKind = iota
	RuleInactive
	RuleRunImmediately
	RuleHighFrequency
	RuleMinInterval
	RuleMaxInterval
	RulePriority
	RuleGroup
)

type RuleOpt struct {
	Kind     RuleOptKind
	IntVal   span.Spanned[int64]
	GroupVal span.Spanned[string]
}

func (o RuleOpt) Render() string {
	switch o.Kind {
	case RuleActive:
		return "active"
	case RuleInactive:
		return "inactive"
	case RuleRunImmediately:
		return "runImmediately"
	case RuleHighFrequency:
		return "highFrequency"
	case RuleMinInterval:
		return "minInterval"
	case RuleMaxInterval:
		return "maxInterval"
	case RulePriority:
		return "priority"
	case RuleGroup:
		return "group " + o.GroupVal.Node
	}
	return "?"
}

type (
	IncludeStmt struct{ Path span.Spanned[string] }

	VarDefStmt struct {
		IsExtern, IsConst, IsStatic bool
		Type                        Type
		Name                        span.Spanned[string]
		Value                       *span.Spanned[Expr]
	}

	VarAssignStmt struct {
		Name  span.Spanned[string]
		Value span.Spanned[Expr]
	}

	RuleDefStmt struct {
		Name     span.Spanned[string]
		RuleOpts []span.Spanned[RuleOpt]
		Body     span.Spanned[Body]
	}

	FnDefStmt struct {
		IsMutable  bool
		ReturnType Type
		Name       span.Spanned[string]
		Params     []Param
		Body       span.Spanned[Body]
	}

	ReturnStmt struct{ Value *span.Spanned[Expr] }

	IfElseStmt struct {
		Cond       span.Spanned[Expr]
		Consequent span.Spanned[Body]
		Alternate  *span.Spanned[Body]
	}

	WhileStmt struct {
		Cond span.Spanned[Expr]
		Body span.Spanned[Body]
	}

	ForStmt struct {
		Var  span.Spanned[Stmt] // always a VarAssignStmt
		Cond span.Spanned[Expr]
		Body span.Spanned[Body]
	}

	SwitchCase struct {
		Expr *span.Spanned[Expr] // nil means "default"
		Body span.Spanned[Body]
	}

	SwitchStmt struct {
		Clause span.Spanned[Expr]
		Cases  []SwitchCase
	}

	PostDPlusStmt  struct{ Name span.Spanned[string] }
	PostDMinusStmt struct{ Name span.Spanned[string] }

	BreakStmt      struct{}
	ContinueStmt   struct{}
	BreakpointStmt struct{}

	LabelDefStmt struct{ Name span.Spanned[string] }
	GotoStmt     struct{ Name span.Spanned[string] }
	DebugStmt    struct{ Name span.Spanned[string] }

	DiscardedStmt struct{ Expr span.Spanned[Expr] }

	ClassStmt struct {
		Name       span.Spanned[string]
		MemberVars []span.Spanned[Stmt] // always VarDefStmt
	}
)

func (IncludeStmt) isStmt()    {}
func (VarDefStmt) isStmt()     {}
func (VarAssignStmt) isStmt()  {}
func (RuleDefStmt) isStmt()    {}
func (FnDefStmt) isStmt()      {}
func (ReturnStmt) isStmt()     {}
func (IfElseStmt) isStmt()     {}
func (WhileStmt) isStmt()      {}
func (ForStmt) isStmt()        {}
func (SwitchStmt) isStmt()     {}
func (PostDPlusStmt) isStmt()  {}
func (PostDMinusStmt) isStmt() {}
func (BreakStmt) isStmt()      {}
func (ContinueStmt) isStmt()   {}
func (BreakpointStmt) isStmt() {}
func (LabelDefStmt) isStmt()   {}
func (GotoStmt) isStmt()       {}
func (DebugStmt) isStmt()      {}
func (DiscardedStmt) isStmt()  {}
func (ClassStmt) isStmt()      {}
