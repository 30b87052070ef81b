// SPDX-License-Identifier: MIT
package translate

// RuleKind classifies the parse tree nodes the emitter dispatches on.
type RuleKind int

// iota is used to define an incrementing number sequence for const
// declarations
const (
	RuleUnknown RuleKind = iota // Catch-all for rule names without a kind.

	RuleProgramKeyword
	RuleProgramName
	RuleEndProgramKeyword
	RuleImplicitNone
	RuleDeclareVariable
	RuleVariableType
	RuleIdentifier
	RuleAssignToVariable
	RuleNum
	RuleAdd
	RuleCallFunction
	RuleCallKeyword
	RuleFuncName
	RuleFuncArgs
	RuleDoStatement
	RuleDoKeyword
	RuleDoVariable
	RuleRangeExpr
	RuleDoLoopBody
	RuleEndDoKeyword
	RuleNonNestNewLine
	RuleEOI
)

var ruleKinds = map[string]RuleKind{
	"program_keyword":     RuleProgramKeyword,
	"program_name":        RuleProgramName,
	"end_program_keyword": RuleEndProgramKeyword,
	"implicit_none":       RuleImplicitNone,
	"declare_variable":    RuleDeclareVariable,
	"variable_type":       RuleVariableType,
	"identifier":          RuleIdentifier,
	"assign_to_variable":  RuleAssignToVariable,
	"num":                 RuleNum,
	"add":                 RuleAdd,
	"call_function":       RuleCallFunction,
	"call_keyword":        RuleCallKeyword,
	"func_name":           RuleFuncName,
	"func_args":           RuleFuncArgs,
	"do_statement":        RuleDoStatement,
	"do_keyword":          RuleDoKeyword,
	"do_variable":         RuleDoVariable,
	"range_expr":          RuleRangeExpr,
	"do_loop_body":        RuleDoLoopBody,
	"end_do_keyword":      RuleEndDoKeyword,
	"non_nest_new_line":   RuleNonNestNewLine,
	"EOI":                 RuleEOI,
}

// KindOf classifies a rule name, unrecognised names are RuleUnknown.
func KindOf(rule string) RuleKind { return ruleKinds[rule] }

// String retrieves the rule name of a RuleKind.
func (k RuleKind) String() string {
	for name, kind := range ruleKinds {
		if kind == k {
			return name
		}
	}

	return "unknown"
}
