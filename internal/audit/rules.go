package audit

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/credage/credage/internal/config"
)

// RuleEnv is the environment an audit rule expression runs against.
type RuleEnv struct {
	ID        string
	Age       int
	Threshold int
}

// CompiledRule is an audit rule compiled to an expr program.
type CompiledRule struct {
	ID      string
	Source  string
	Program *vm.Program
}

// RuleSet evaluates optional audit rules against evaluated records. A record
// matching any rule is a violation even when its age is under the threshold.
type RuleSet struct {
	rules []CompiledRule
}

// CompileRules compiles the configured rules. A rule that does not compile is
// a configuration error: the audit must not start with a half-working policy.
func CompileRules(configs []config.Rule) (*RuleSet, error) {
	rs := &RuleSet{}
	for i, cfg := range configs {
		id := cfg.ID
		if id == "" {
			id = fmt.Sprintf("rule-%d", i+1)
		}
		if cfg.Expression == "" {
			return nil, fmt.Errorf("rule %q has no expression", id)
		}

		program, err := expr.Compile(cfg.Expression, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %q: %w (expr: %s)", id, err, cfg.Expression)
		}

		rs.rules = append(rs.rules, CompiledRule{
			ID:      id,
			Source:  cfg.Expression,
			Program: program,
		})
	}
	return rs, nil
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Match returns the ID of the first rule matching ev, or "" when none does.
// A runtime evaluation error disables the result for that record only.
func (rs *RuleSet) Match(ev *Evaluation) (string, error) {
	env := RuleEnv{
		ID:        ev.Identifier,
		Age:       ev.AgeDays,
		Threshold: ev.Threshold,
	}

	for _, r := range rs.rules {
		out, err := expr.Run(r.Program, env)
		if err != nil {
			return "", fmt.Errorf("rule %q failed for %s: %w", r.ID, ev.Identifier, err)
		}
		if matched, ok := out.(bool); ok && matched {
			return r.ID, nil
		}
	}
	return "", nil
}
