package mm

import (
	"fmt"
	"strings"
)

// CheckProof runs thm's proof as a reverse-Polish stack machine against the
// already-accepted axioms and theorems of the containing system. It
// returns the final conclusion (always equal to thm.A on success) and,
// when trace is true, a step-by-step account suitable for display.
func CheckProof(thm *Proposition, axioms, theorems map[string]*Proposition, trace bool) (*ProofResult, error) {
	if thm.P == nil {
		return nil, NewMalformedFieldError("theorem has no proof to check")
	}

	var stack []string
	var log []string
	steps := *thm.P

	for idx, step := range steps {
		pos := idx + 1

		if expr, ok := thm.T.Get(step); ok {
			stack = append(stack, expr)
			if trace {
				log = append(log, fmt.Sprintf("Step %d: push type assumption %q -> %q", pos, step, expr))
			}
			continue
		}
		if expr, ok := thm.H.Get(step); ok {
			stack = append(stack, expr)
			if trace {
				log = append(log, fmt.Sprintf("Step %d: push hypothesis %q -> %q", pos, step, expr))
			}
			continue
		}

		rule, kind, ok := lookupRule(step, axioms, theorems)
		if !ok {
			return nil, NewUnknownStepError(step, pos)
		}

		tKeys := rule.T.Keys()
		hKeys := rule.H.Keys()
		n := len(tKeys) + len(hKeys)
		if len(stack) < n {
			return nil, NewStackUnderflowError(step, pos, n, len(stack))
		}

		args := append([]string(nil), stack[len(stack)-n:]...)
		stack = stack[:len(stack)-n]
		if trace {
			log = append(log, fmt.Sprintf("Step %d: apply %s %q, pop %v", pos, kind, step, args))
		}

		subs := make(map[string]string)
		for i, lbl := range tKeys {
			pattern, _ := rule.T.Get(lbl)
			parts := strings.Fields(pattern)
			patType, variable := parts[0], parts[1]
			tokens := strings.Fields(args[i])
			if len(tokens) == 0 || tokens[0] != patType {
				got := ""
				if len(tokens) > 0 {
					got = tokens[0]
				}
				return nil, NewTypeMismatchError(step, patType, got, pos)
			}
			subs[variable] = strings.Join(tokens[1:], " ")
			if trace {
				log = append(log, fmt.Sprintf("  match %s: type %q, var %q -> %q", lbl, patType, variable, subs[variable]))
			}
		}

		// Distinct-variable check is token-set based: two substituted
		// expressions conflict if they share any atomic token. This
		// matches the standard Metamath convention of single-token
		// variables and does not attempt multi-token variable reasoning.
		for _, dLbl := range rule.D.Keys() {
			pair, _ := rule.D.Get(dLbl)
			parts := strings.Fields(pair)
			v1, v2 := parts[0], parts[1]
			s1, ok1 := subs[v1]
			s2, ok2 := subs[v2]
			if ok1 && ok2 && tokenSetsOverlap(s1, s2) {
				return nil, NewDistinctViolationError(step, pos)
			}
		}

		for i, hLbl := range hKeys {
			pattern, _ := rule.H.Get(hLbl)
			expected := substitute(pattern, subs)
			actual := args[len(tKeys)+i]
			if actual != expected {
				return nil, NewHypothesisMismatchError(step, expected, actual, pos)
			}
			if trace {
				log = append(log, fmt.Sprintf("  hypothesis %s matches %q", hLbl, actual))
			}
		}

		conclusion := substitute(rule.A, subs)
		stack = append(stack, conclusion)
		if trace {
			log = append(log, fmt.Sprintf("  conclude -> %q and push to stack", conclusion))
		}
	}

	if len(stack) != 1 || stack[0] != thm.A {
		return nil, NewMalformedProofError()
	}
	if trace {
		log = append(log, fmt.Sprintf("Proof successfully concludes with assertion %q", stack[0]))
	}

	return &ProofResult{Conclusion: stack[0], Trace: log}, nil
}

func lookupRule(label string, axioms, theorems map[string]*Proposition) (*Proposition, string, bool) {
	if rule, ok := axioms[label]; ok {
		return rule, "axiom", true
	}
	if rule, ok := theorems[label]; ok {
		return rule, "theorem", true
	}
	return nil, "", false
}

// substitute replaces every token of pattern that names a key of subs with
// its substituted (possibly multi-token, possibly empty) value, and
// leaves every other token untouched.
func substitute(pattern string, subs map[string]string) string {
	tokens := strings.Fields(pattern)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if v, ok := subs[tok]; ok {
			if v != "" {
				out = append(out, strings.Fields(v)...)
			}
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

func tokenSetsOverlap(a, b string) bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(a) {
		set[tok] = true
	}
	for _, tok := range strings.Fields(b) {
		if set[tok] {
			return true
		}
	}
	return false
}
