package mm

// Proof is a reverse-Polish sequence of proof steps: each entry names
// either a hypothesis key of the theorem being proved, or the label of a
// constant, axiom, or previously accepted theorem in the containing
// system.
type Proof []string

// Proposition is the one record shape used for both an inbound,
// not-yet-validated declaration and the canonical, accepted form Normalize
// produces. The normalizer is the conversion function between the two,
// not a distinct type. T, H, and D are declaration-ordered; P is nil for
// an axiom and non-nil for a theorem.
type Proposition struct {
	T *OrderedMap
	H *OrderedMap
	D *OrderedMap
	A string
	P *Proof
}

// ProofResult is what a successfully checked theorem produces: the final
// stack expression (equal to the theorem's own assertion), and, when
// requested, a human-readable trace of every stack machine step.
type ProofResult struct {
	Conclusion string
	Trace      []string
	CheckID    string
}
