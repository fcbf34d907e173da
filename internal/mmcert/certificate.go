// Package mmcert exports a compact, bit-packed audit record for one
// accepted theorem: its position in the system, how many proof steps it
// took, and a digest of those steps. It is not a substitute proof format:
// re-verifying a theorem always means re-running internal/mm.CheckProof
// against the full database; a certificate only lets a caller spot-check
// that a theorem they already trust hasn't silently changed shape.
package mmcert

import (
	"fmt"
	"hash/fnv"

	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/lixiang90/formalmath/internal/mm"
)

// Certificate is the decoded form of one proof's audit record.
type Certificate struct {
	Index     int
	StepCount int
	Digest    uint32
}

// Build computes the certificate for label, an already-accepted theorem
// of sys, at the given namespace index.
func Build(sys *mm.FormalSystem, label string, index int) (*Certificate, error) {
	prop, ok := sys.Theorem(label)
	if !ok {
		return nil, fmt.Errorf("mmcert: %q is not an accepted theorem", label)
	}
	if prop.P == nil {
		return nil, fmt.Errorf("mmcert: %q has no proof to certify", label)
	}

	h := fnv.New32a()
	for _, step := range *prop.P {
		h.Write([]byte(step))
		h.Write([]byte{0})
	}

	return &Certificate{
		Index:     index,
		StepCount: len(*prop.P),
		Digest:    h.Sum32(),
	}, nil
}

// Encode bit-packs c into 12 bytes: three big-endian 32-bit fields,
// index, step count, digest, in that order.
func Encode(c *Certificate) []byte {
	b := funbit.NewBuilder()
	funbit.AddInteger(b, c.Index, funbit.WithSize(32), funbit.WithEndianness(funbit.EndiannessBig))
	funbit.AddInteger(b, c.StepCount, funbit.WithSize(32), funbit.WithEndianness(funbit.EndiannessBig))
	funbit.AddInteger(b, int(c.Digest), funbit.WithSize(32), funbit.WithEndianness(funbit.EndiannessBig), funbit.WithSigned(false))

	bs, err := funbit.Build(b)
	if err != nil {
		// The three segments above are fixed-width and always well formed;
		// a build failure here means funbit itself is broken.
		panic(fmt.Sprintf("mmcert: building fixed-width certificate: %v", err))
	}
	return bs.ToBytes()
}

// Decode reverses Encode.
func Decode(data []byte) (*Certificate, error) {
	bs := funbit.NewBitStringFromBytes(data)
	m := funbit.NewMatcher()

	var index, stepCount, digest int
	funbit.Integer(m, &index, funbit.WithSize(32), funbit.WithEndianness(funbit.EndiannessBig))
	funbit.Integer(m, &stepCount, funbit.WithSize(32), funbit.WithEndianness(funbit.EndiannessBig))
	funbit.Integer(m, &digest, funbit.WithSize(32), funbit.WithEndianness(funbit.EndiannessBig), funbit.WithSigned(false))

	if _, err := funbit.Match(m, bs); err != nil {
		return nil, fmt.Errorf("mmcert: decoding certificate: %w", err)
	}

	return &Certificate{Index: index, StepCount: stepCount, Digest: uint32(digest)}, nil
}
