package mm

// FormalSystem is an append-only container of constants, axioms, and
// theorems. Nothing is ever removed or overwritten: once a label is
// accepted its entry is fixed for the lifetime of the system, mirroring
// the "no retraction" stance of the original construction.
type FormalSystem struct {
	namespace *Namespace

	constants []string

	axiomLabels []string
	axioms      map[string]*Proposition

	theoremLabels []string
	theorems      map[string]*Proposition
}

// NewFormalSystem returns an empty system ready for incremental
// AddConstant/AddAxiom/AddTheorem calls, the "from scratch" construction
// mode, in which every entry is independently normalized and, for
// theorems, proof-checked as it is added.
func NewFormalSystem() *FormalSystem {
	return &FormalSystem{
		namespace: NewNamespace(),
		axioms:    make(map[string]*Proposition),
		theorems:  make(map[string]*Proposition),
	}
}

// NewFromCanonical rebuilds a system from data that has already been
// normalized and proof-checked elsewhere, the "prebuilt canonical data"
// construction mode, used when reloading a snapshot from internal/mmstore.
// It still replays label declarations in order so a corrupted or hand-
// edited snapshot surfaces as ErrDuplicateLabel rather than applying
// silently, but it does not re-run Normalize or CheckProof.
func NewFromCanonical(
	constants []string,
	axiomLabels []string, axioms map[string]*Proposition,
	theoremLabels []string, theorems map[string]*Proposition,
) (*FormalSystem, error) {
	sys := NewFormalSystem()
	for _, c := range constants {
		if err := sys.AddConstant(c); err != nil {
			return nil, err
		}
	}
	for _, label := range axiomLabels {
		prop, ok := axioms[label]
		if !ok {
			return nil, NewMalformedFieldError("axiom label '" + label + "' has no matching entry")
		}
		if err := sys.namespace.Insert(label, KindRule); err != nil {
			return nil, err
		}
		sys.axiomLabels = append(sys.axiomLabels, label)
		sys.axioms[label] = prop
	}
	for _, label := range theoremLabels {
		prop, ok := theorems[label]
		if !ok {
			return nil, NewMalformedFieldError("theorem label '" + label + "' has no matching entry")
		}
		if err := sys.namespace.Insert(label, KindRule); err != nil {
			return nil, err
		}
		sys.theoremLabels = append(sys.theoremLabels, label)
		sys.theorems[label] = prop
	}
	return sys, nil
}

// AddConstant declares a new global constant.
func (s *FormalSystem) AddConstant(label string) error {
	if err := s.namespace.Insert(label, KindConstant); err != nil {
		return err
	}
	s.constants = append(s.constants, label)
	return nil
}

// AddAxiom normalizes raw and, on success, accepts it as a new axiom.
// raw must not carry a proof: axioms are asserted, not derived.
func (s *FormalSystem) AddAxiom(label string, raw *Proposition) error {
	if s.namespace.Contains(label) {
		return NewDuplicateLabelError(label)
	}
	if raw.P != nil {
		return NewMalformedFieldError("axiom '" + label + "' must not carry a proof")
	}
	canon, err := Normalize(raw, s.namespace)
	if err != nil {
		return err
	}
	if err := s.namespace.Insert(label, KindRule); err != nil {
		return err
	}
	s.axiomLabels = append(s.axiomLabels, label)
	s.axioms[label] = canon
	return nil
}

// AddTheorem normalizes raw, runs its proof through CheckProof against
// every axiom and theorem accepted so far, and on success accepts it as a
// new theorem. raw must carry a proof.
func (s *FormalSystem) AddTheorem(label string, raw *Proposition, withTrace bool) (*ProofResult, error) {
	if s.namespace.Contains(label) {
		return nil, NewDuplicateLabelError(label)
	}
	if raw.P == nil {
		return nil, NewMalformedFieldError("theorem '" + label + "' must carry a proof")
	}
	canon, err := Normalize(raw, s.namespace)
	if err != nil {
		return nil, err
	}
	result, err := CheckProof(canon, s.axioms, s.theorems, withTrace)
	if err != nil {
		return nil, err
	}
	if err := s.namespace.Insert(label, KindRule); err != nil {
		return nil, err
	}
	s.theoremLabels = append(s.theoremLabels, label)
	s.theorems[label] = canon
	return result, nil
}

// Constants, AxiomLabels, and TheoremLabels return the declaration-ordered
// label lists. Callers must not mutate the returned slices.
func (s *FormalSystem) Constants() []string     { return s.constants }
func (s *FormalSystem) AxiomLabels() []string   { return s.axiomLabels }
func (s *FormalSystem) TheoremLabels() []string { return s.theoremLabels }

func (s *FormalSystem) Axiom(label string) (*Proposition, bool) {
	p, ok := s.axioms[label]
	return p, ok
}

func (s *FormalSystem) Theorem(label string) (*Proposition, bool) {
	p, ok := s.theorems[label]
	return p, ok
}
