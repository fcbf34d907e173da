// Package mmdb reads and writes the on-disk YAML syntax for a formal
// system database: a list of constants, and two label-ordered collections
// of propositions (axioms and theorems), each holding exactly the t/h/d/a
// fields a proposition record needs, and, for theorems, a p proof field.
//
// This is pure syntax: it produces and consumes mm.Proposition values and
// never touches verification semantics. Decoding uses yaml.Node rather
// than struct or map[string]interface{} decoding because yaml.v3 discards
// key order for both of those; a formal system's axioms and theorems must
// be added in file order; (see Normalize and FormalSystem.AddTheorem,
// which depend on build order to resolve forward references).
package mmdb

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixiang90/formalmath/internal/mm"
	"github.com/lixiang90/formalmath/internal/mmconfig"
)

// Decode parses a formal system database from YAML text.
func Decode(data []byte) (
	constants []string,
	axiomLabels []string, axioms map[string]*mm.Proposition,
	theoremLabels []string, theorems map[string]*mm.Proposition,
	err error,
) {
	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("parsing database yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil, nil, nil, nil, fmt.Errorf("empty database document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, nil, nil, nil, fmt.Errorf("database document must be a mapping")
	}

	if constNode, ok := findMappingValue(root, mmconfig.ConstantsKey); ok {
		constants, err = decodeStringSequence(constNode)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("decoding constants: %w", err)
		}
	}

	if axiomsNode, ok := findMappingValue(root, mmconfig.AxiomsKey); ok {
		axiomLabels, axioms, err = decodePropositionSet(axiomsNode)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("decoding axioms: %w", err)
		}
	} else {
		axioms = make(map[string]*mm.Proposition)
	}

	if theoremsNode, ok := findMappingValue(root, mmconfig.TheoremsKey); ok {
		theoremLabels, theorems, err = decodePropositionSet(theoremsNode)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("decoding theorems: %w", err)
		}
	} else {
		theorems = make(map[string]*mm.Proposition)
	}

	return constants, axiomLabels, axioms, theoremLabels, theorems, nil
}

// Encode renders a formal system database back to YAML text, preserving
// the given label order exactly (round-tripping Decode's output is
// order-stable).
func Encode(
	constants []string,
	axiomLabels []string, axioms map[string]*mm.Proposition,
	theoremLabels []string, theorems map[string]*mm.Proposition,
) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		scalarNode(mmconfig.ConstantsKey), sequenceNode(constants),
		scalarNode(mmconfig.AxiomsKey), propositionSetNode(axiomLabels, axioms),
		scalarNode(mmconfig.TheoremsKey), propositionSetNode(theoremLabels, theorems),
	)
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	return yaml.Marshal(doc)
}

func decodePropositionSet(node *yaml.Node) ([]string, map[string]*mm.Proposition, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("expected a mapping of label to proposition")
	}
	labels := make([]string, 0, len(node.Content)/2)
	props := make(map[string]*mm.Proposition, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		label := node.Content[i].Value
		prop, err := decodeProposition(node.Content[i+1])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", label, err)
		}
		labels = append(labels, label)
		props[label] = prop
	}
	return labels, props, nil
}

func decodeProposition(node *yaml.Node) (*mm.Proposition, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping with t/h/d/a fields")
	}

	prop := &mm.Proposition{T: mm.NewOrderedMap(), H: mm.NewOrderedMap(), D: mm.NewOrderedMap()}

	if n, ok := findMappingValue(node, mmconfig.TypingKey); ok {
		om, err := decodeOrdered(n)
		if err != nil {
			return nil, fmt.Errorf("t: %w", err)
		}
		prop.T = om
	}
	if n, ok := findMappingValue(node, mmconfig.HypothesesKey); ok {
		om, err := decodeOrdered(n)
		if err != nil {
			return nil, fmt.Errorf("h: %w", err)
		}
		prop.H = om
	}
	if n, ok := findMappingValue(node, mmconfig.DistinctKey); ok {
		om, err := decodeOrdered(n)
		if err != nil {
			return nil, fmt.Errorf("d: %w", err)
		}
		prop.D = om
	}
	if n, ok := findMappingValue(node, mmconfig.AssertionKey); ok {
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("a must be a scalar string")
		}
		prop.A = n.Value
	}
	if n, ok := findMappingValue(node, mmconfig.ProofKey); ok {
		proof, err := decodeProof(n)
		if err != nil {
			return nil, fmt.Errorf("p: %w", err)
		}
		prop.P = proof
	}

	return prop, nil
}

func decodeProof(node *yaml.Node) (*mm.Proof, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		proof := mm.Proof(strings.Fields(node.Value))
		return &proof, nil
	case yaml.SequenceNode:
		steps, err := decodeStringSequence(node)
		if err != nil {
			return nil, err
		}
		proof := mm.Proof(steps)
		return &proof, nil
	default:
		return nil, fmt.Errorf("proof must be a string or a list of steps")
	}
}

func decodeOrdered(node *yaml.Node) (*mm.OrderedMap, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping")
	}
	om := mm.NewOrderedMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("expected scalar key/value pairs")
		}
		om.Set(key.Value, value.Value)
	}
	return om, nil
}

func decodeStringSequence(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence")
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("expected a sequence of scalars")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func findMappingValue(node *yaml.Node, key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1], true
		}
	}
	return nil, false
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func sequenceNode(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		n.Content = append(n.Content, scalarNode(item))
	}
	return n
}

func orderedToNode(om *mm.OrderedMap) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	om.Each(func(key, value string) {
		n.Content = append(n.Content, scalarNode(key), scalarNode(value))
	})
	return n
}

func propositionNode(prop *mm.Proposition) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content,
		scalarNode(mmconfig.TypingKey), orderedToNode(prop.T),
		scalarNode(mmconfig.HypothesesKey), orderedToNode(prop.H),
		scalarNode(mmconfig.DistinctKey), orderedToNode(prop.D),
		scalarNode(mmconfig.AssertionKey), scalarNode(prop.A),
	)
	if prop.P != nil {
		n.Content = append(n.Content, scalarNode(mmconfig.ProofKey), sequenceNode(*prop.P))
	}
	return n
}

func propositionSetNode(labels []string, props map[string]*mm.Proposition) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, label := range labels {
		n.Content = append(n.Content, scalarNode(label), propositionNode(props[label]))
	}
	return n
}
