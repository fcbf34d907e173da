package mm

import "strings"

// Normalize validates an inbound Proposition against a system's namespace
// and returns its canonical form. It never mutates raw or ns; ns is only
// read to detect collisions with already-declared constants/labels.
//
// Shape is intentionally not axiom-vs-theorem aware here. Whether P must
// be nil or non-nil is a container-level concern (see FormalSystem.AddAxiom
// / AddTheorem); Normalize only validates the fields that are present.
func Normalize(raw *Proposition, ns *Namespace) (*Proposition, error) {
	if raw.T == nil || raw.H == nil || raw.D == nil {
		return nil, NewMalformedFieldError("t, h, and d must all be present, even if empty")
	}

	local := ns.Clone()

	// Step 2: t, each value is "typecode variable". The typecode must
	// already be a declared constant, and the variable must be fresh.
	var variables []string
	varSet := make(map[string]bool)
	for _, key := range raw.T.Keys() {
		if local.Contains(key) {
			return nil, NewDuplicateLabelError(key)
		}
		value, _ := raw.T.Get(key)
		parts := strings.Fields(value)
		if len(parts) != 2 {
			return nil, NewMalformedFieldError("t entry '" + key + "' must have exactly a typecode and a variable")
		}
		typecode, variable := parts[0], parts[1]
		kind, known := local.Kind(typecode)
		if !known || kind != KindConstant {
			return nil, NewMalformedFieldError("t entry '" + key + "' prefix '" + typecode + "' is not a declared constant")
		}
		if local.Contains(variable) || varSet[variable] {
			return nil, NewMalformedFieldError("variable name '" + variable + "' duplicates another name")
		}
		if err := local.Insert(key, KindVariable); err != nil {
			return nil, err
		}
		if err := local.Insert(variable, KindVariable); err != nil {
			return nil, err
		}
		varSet[variable] = true
		variables = append(variables, variable)
	}

	isConstOrVar := func(tok string) bool {
		if varSet[tok] {
			return true
		}
		kind, known := local.Kind(tok)
		return known && kind == KindConstant
	}

	// Step 3: h, every token must be a constant or one of this
	// proposition's variables, and hypothesis labels must be fresh.
	for _, key := range raw.H.Keys() {
		if local.Contains(key) {
			return nil, NewDuplicateLabelError(key)
		}
		value, _ := raw.H.Get(key)
		for _, tok := range strings.Fields(value) {
			if !isConstOrVar(tok) {
				return nil, NewUnknownTokenError(tok)
			}
		}
		if err := local.Insert(key, KindVariable); err != nil {
			return nil, err
		}
	}

	// Step 4: a, every token must be a constant or a variable.
	for _, tok := range strings.Fields(raw.A) {
		if !isConstOrVar(tok) {
			return nil, NewUnknownTokenError(tok)
		}
	}

	// Step 5: d, each value names exactly two distinct variables of this
	// proposition; labels must be fresh.
	for _, key := range raw.D.Keys() {
		if local.Contains(key) {
			return nil, NewDuplicateLabelError(key)
		}
		value, _ := raw.D.Get(key)
		parts := strings.Fields(value)
		if len(parts) != 2 {
			return nil, NewMalformedFieldError("distinct entry '" + key + "' must name exactly two variables")
		}
		v1, v2 := parts[0], parts[1]
		if !varSet[v1] || !varSet[v2] || v1 == v2 {
			return nil, NewDistinctShapeError(key)
		}
		if err := local.Insert(key, KindVariable); err != nil {
			return nil, err
		}
	}

	// Step 6: liveness, every declared variable must appear in h or a.
	used := make(map[string]bool)
	raw.H.Each(func(_, value string) {
		for _, tok := range strings.Fields(value) {
			if varSet[tok] {
				used[tok] = true
			}
		}
	})
	for _, tok := range strings.Fields(raw.A) {
		if varSet[tok] {
			used[tok] = true
		}
	}
	for _, v := range variables {
		if !used[v] {
			return nil, NewDeadVariableError(v)
		}
	}

	return &Proposition{
		T: raw.T.Clone(),
		H: raw.H.Clone(),
		D: raw.D.Clone(),
		A: raw.A,
		P: raw.P,
	}, nil
}
