package intake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/groundworkhq/groundwork/internal/answers"
	"github.com/groundworkhq/groundwork/internal/catalog"
)

// ValidationCode classifies a rejected answer.
type ValidationCode string

// Validation codes.
const (
	CodeRequiredMissing ValidationCode = "required_field_missing"
	CodeInvalidOption   ValidationCode = "invalid_option"
)

// ValidationError is a recoverable rejection: the queue head is unchanged
// and the user may retry with different input.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// requiredMissing builds the error for an empty required answer.
func requiredMissing(id string) *ValidationError {
	return &ValidationError{
		Code:    CodeRequiredMissing,
		Message: fmt.Sprintf("question %s requires an answer", id),
	}
}

// invalidOption builds the error for input matching no option.
func invalidOption(id, input string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidOption,
		Message: fmt.Sprintf("%q is not a valid option for %s", input, id),
	}
}

// Validate checks raw input against a question's type and required
// contract and produces the typed answer value. The warning return
// carries non-fatal notes (dropped multi-choice tokens).
func Validate(q *catalog.Question, input string) (answers.Value, string, error) {
	switch q.Type {
	case catalog.TypeText:
		return validateText(q, input)
	case catalog.TypeSingleChoice:
		return validateSingleChoice(q, input)
	case catalog.TypeMultiChoice:
		return validateMultiChoice(q, input)
	case catalog.TypeConfirm:
		return validateConfirm(q, input)
	default:
		return answers.Value{}, "", fmt.Errorf("question %s has unsupported type %q", q.ID, q.Type)
	}
}

func validateText(q *catalog.Question, input string) (answers.Value, string, error) {
	trimmed := strings.TrimSpace(input)
	if q.Required && trimmed == "" {
		return answers.Value{}, "", requiredMissing(q.ID)
	}
	return answers.TextValue(trimmed), "", nil
}

// validateSingleChoice resolves input to a canonical option value.
// Exact (case-insensitive) value or label match wins; a 1-based numeric
// index is tried only when no string match succeeds.
func validateSingleChoice(q *catalog.Question, input string) (answers.Value, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		if q.Required {
			return answers.Value{}, "", requiredMissing(q.ID)
		}
		return answers.ChoiceValue(""), "", nil
	}

	if value, ok := matchOption(q.Options, trimmed); ok {
		return answers.ChoiceValue(value), "", nil
	}

	if index, err := strconv.Atoi(trimmed); err == nil && index >= 1 && index <= len(q.Options) {
		return answers.ChoiceValue(q.Options[index-1].Value), "", nil
	}

	return answers.Value{}, "", invalidOption(q.ID, trimmed)
}

// validateMultiChoice splits input on commas and matches each segment
// independently. Unmatched segments are silently dropped (reported via
// the warning, never an error), so the result may legitimately be an
// empty list even on a required question.
func validateMultiChoice(q *catalog.Question, input string) (answers.Value, string, error) {
	var matched []string
	var dropped []string

	for _, segment := range strings.Split(input, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if value, ok := matchOption(q.Options, segment); ok {
			matched = append(matched, value)
			continue
		}
		dropped = append(dropped, segment)
	}

	warning := ""
	if len(dropped) > 0 {
		warning = "ignored unrecognized values: " + strings.Join(dropped, ", ")
	}
	return answers.MultiChoiceValue(matched), warning, nil
}

// validateConfirm parses a yes/no answer. Empty input defaults to an
// affirmative acceptance.
func validateConfirm(q *catalog.Question, input string) (answers.Value, string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "y", "yes", "true", "1", "s", "sim":
		return answers.ConfirmValue(true), "", nil
	case "n", "no", "false", "0", "nao", "não":
		return answers.ConfirmValue(false), "", nil
	default:
		return answers.Value{}, "", invalidOption(q.ID, strings.TrimSpace(input))
	}
}

// matchOption finds the canonical value whose literal value or any
// per-language label equals input, case-insensitively. Labels match in
// every language, not only the active one.
func matchOption(options []catalog.Option, input string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(opt.Value, input) {
			return opt.Value, true
		}
		for _, label := range opt.Labels {
			if strings.EqualFold(label, input) {
				return opt.Value, true
			}
		}
	}
	return "", false
}
