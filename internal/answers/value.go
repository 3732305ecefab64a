// Package answers provides the persisted answer store: a mapping from
// question id to answer value plus the intake progress bookkeeping,
// rewritten in full on every change.
package answers

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the legal shapes of an answer value.
type Kind string

// Value kinds. The question's declared type determines which kind is
// legal; that check happens at the orchestrator's validation boundary.
const (
	KindText        Kind = "text"
	KindChoice      Kind = "choice"
	KindMultiChoice Kind = "multi_choice"
	KindConfirm     Kind = "confirm"
)

// Value is a tagged union over the answer shapes: free text, a single
// canonical option value, an ordered list of option values, or a boolean.
type Value struct {
	Kind Kind
	Text string
	List []string
	Bool bool
}

// TextValue wraps free text.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// ChoiceValue wraps a single canonical option value.
func ChoiceValue(s string) Value {
	return Value{Kind: KindChoice, Text: s}
}

// MultiChoiceValue wraps an ordered list of canonical option values.
func MultiChoiceValue(items []string) Value {
	return Value{Kind: KindMultiChoice, List: items}
}

// ConfirmValue wraps a boolean.
func ConfirmValue(b bool) Value {
	return Value{Kind: KindConfirm, Bool: b}
}

// String renders the value for display and guard comparison.
// Lists join with ", "; booleans render as "yes"/"no".
func (v Value) String() string {
	switch v.Kind {
	case KindMultiChoice:
		return strings.Join(v.List, ", ")
	case KindConfirm:
		if v.Bool {
			return "yes"
		}
		return "no"
	default:
		return v.Text
	}
}

// Equals reports whether the stored value matches expected, as used by
// section guard conditions. Scalar kinds compare their text form;
// confirm compares against "yes"/"no".
func (v Value) Equals(expected string) bool {
	return v.String() == expected
}

// MarshalYAML keeps the on-disk shape natural: scalars for text and
// choice, a sequence for multi-choice, a bool for confirm.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case KindMultiChoice:
		if v.List == nil {
			return []string{}, nil
		}
		return v.List, nil
	case KindConfirm:
		return v.Bool, nil
	case KindText, KindChoice:
		return v.Text, nil
	default:
		return nil, fmt.Errorf("unknown answer kind %q", v.Kind)
	}
}

// UnmarshalYAML infers the kind from the node shape. Scalars load as
// text (choice answers are indistinguishable at rest, which is fine:
// the question type re-tags them at the validation boundary).
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("decoding multi-choice answer: %w", err)
		}
		*v = MultiChoiceValue(items)
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			var b bool
			if err := node.Decode(&b); err != nil {
				return fmt.Errorf("decoding confirm answer: %w", err)
			}
			*v = ConfirmValue(b)
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("decoding text answer: %w", err)
		}
		*v = TextValue(s)
		return nil
	default:
		return fmt.Errorf("unsupported answer node kind %v", node.Kind)
	}
}
