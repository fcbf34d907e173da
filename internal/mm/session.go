package mm

import "github.com/google/uuid"

// CheckTheorem wraps AddTheorem with a time-ordered correlation ID: every
// check attempt, pass or fail, gets a v7 UUID so a caller can line up one
// attempt across logs, traces, and stored snapshots without this package
// depending on a logger itself. On failure the same ID is attached to the
// returned error's context via checkErr.
func (s *FormalSystem) CheckTheorem(label string, raw *Proposition, withTrace bool) (*ProofResult, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, NewMalformedFieldError("could not allocate a check id: " + err.Error())
	}
	checkID := id.String()

	result, addErr := s.AddTheorem(label, raw, withTrace)
	if addErr != nil {
		return nil, &checkErr{id: checkID, label: label, cause: addErr}
	}
	result.CheckID = checkID
	return result, nil
}

// checkErr decorates a *VerifierError (or any error) with the check ID
// that was allocated for the attempt that produced it, without changing
// how the underlying error prints or compares.
type checkErr struct {
	id    string
	label string
	cause error
}

func (e *checkErr) Error() string {
	return e.cause.Error()
}

func (e *checkErr) Unwrap() error {
	return e.cause
}

// CheckID returns the correlation ID allocated for the check attempt that
// produced err, if err (or anything it wraps) is a checkErr.
func CheckID(err error) (string, bool) {
	if ce, ok := err.(*checkErr); ok {
		return ce.id, true
	}
	return "", false
}
