// Package catalog provides the static question catalog: the versioned,
// ordered definition of every askable intake question, grouped into
// guarded sections. Catalogs are immutable after load.
package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// QuestionType enumerates the answer shapes a question can take.
type QuestionType string

// Question types.
const (
	TypeText         QuestionType = "text"
	TypeSingleChoice QuestionType = "single_choice"
	TypeMultiChoice  QuestionType = "multi_choice"
	TypeConfirm      QuestionType = "confirm"
)

// Stage names a phase of intake. The stage selects which sections
// populate the orchestrator's queue.
type Stage string

// Intake stages.
const (
	StageCore       Stage = "core"
	StageDeep       Stage = "deep"
	StageSpecialist Stage = "specialist"
)

// ParseStage maps a user-supplied stage name onto a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageCore, StageDeep, StageSpecialist:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q (want core, deep, or specialist)", s)
}

// Option is one selectable value of a choice question.
type Option struct {
	Value  string            `yaml:"value" json:"value"`
	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Label returns the display label for lang, falling back to the raw value.
func (o Option) Label(lang string) string {
	if label, ok := o.Labels[lang]; ok {
		return label
	}
	return o.Value
}

// Question is a single intake question. Defined statically at load time;
// never mutated.
type Question struct {
	ID       string            `yaml:"id" json:"id"`
	Type     QuestionType      `yaml:"type" json:"type"`
	Prompts  map[string]string `yaml:"prompt" json:"prompt"`
	Options  []Option          `yaml:"options,omitempty" json:"options,omitempty"`
	Required bool              `yaml:"required,omitempty" json:"required,omitempty"`
	// Target is a dotted path into the company profile. Empty means the
	// answer is answers-only and never projected.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

// Prompt returns the display text for lang, falling back to the catalog's
// default language and then to any defined prompt.
func (q *Question) Prompt(lang, fallback string) string {
	if text, ok := q.Prompts[lang]; ok {
		return text
	}
	if text, ok := q.Prompts[fallback]; ok {
		return text
	}
	for _, text := range q.Prompts {
		return text
	}
	return q.ID
}

// Section is an ordered group of questions gated by an optional guard.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Stage Stage  `yaml:"stage" json:"stage"`
	// When is the guard condition: every key is a prior question id whose
	// stored answer must equal the expected value for the section to be
	// included in a run. A section with no guard is always included.
	When      map[string]string `yaml:"when,omitempty" json:"when,omitempty"`
	Questions []Question        `yaml:"questions" json:"questions"`
}

// Catalog is the full, immutable question catalog.
type Catalog struct {
	ID              string    `yaml:"catalog" json:"catalog"`
	Version         int       `yaml:"version" json:"version"`
	DefaultLanguage string    `yaml:"default_language,omitempty" json:"default_language,omitempty"`
	Mode            string    `yaml:"mode,omitempty" json:"mode,omitempty"`
	RequiredCore    []string  `yaml:"required_core,omitempty" json:"required_core,omitempty"`
	Sections        []Section `yaml:"sections" json:"sections"`

	byID map[string]*Question
}

// MalformedError is returned when a catalog source cannot be used.
// It is fatal at load: without a catalog there is no orchestration.
type MalformedError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed catalog: %s: %v", e.Reason, e.Cause)
	}
	return "malformed catalog: " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, &MalformedError{Reason: "unparsable source", Cause: err}
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	cat.index()
	return &cat, nil
}

// validate checks the structural invariants of a freshly parsed catalog.
func (c *Catalog) validate() error {
	if c.ID == "" {
		return &MalformedError{Reason: "missing top-level catalog id"}
	}
	if len(c.Sections) == 0 {
		return &MalformedError{Reason: "catalog has no sections"}
	}

	seen := make(map[string]bool)
	for _, sec := range c.Sections {
		if sec.ID == "" {
			return &MalformedError{Reason: "section without id"}
		}
		if sec.Stage == "" {
			return &MalformedError{Reason: fmt.Sprintf("section %s has no stage", sec.ID)}
		}
		if _, err := ParseStage(string(sec.Stage)); err != nil {
			return &MalformedError{Reason: fmt.Sprintf("section %s: %v", sec.ID, err)}
		}
		for i := range sec.Questions {
			if err := validateQuestion(&sec.Questions[i], sec.ID, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateQuestion(q *Question, sectionID string, seen map[string]bool) error {
	if q.ID == "" {
		return &MalformedError{Reason: fmt.Sprintf("section %s: question without id", sectionID)}
	}
	if seen[q.ID] {
		return &MalformedError{Reason: "duplicate question id " + q.ID}
	}
	seen[q.ID] = true

	switch q.Type {
	case TypeText, TypeConfirm:
		// No options allowed for non-choice types.
		if len(q.Options) > 0 {
			return &MalformedError{Reason: fmt.Sprintf("question %s: type %s takes no options", q.ID, q.Type)}
		}
	case TypeSingleChoice, TypeMultiChoice:
		if len(q.Options) == 0 {
			return &MalformedError{Reason: fmt.Sprintf("question %s: choice type needs options", q.ID)}
		}
	default:
		return &MalformedError{Reason: fmt.Sprintf("question %s: unknown type %q", q.ID, q.Type)}
	}

	if len(q.Prompts) == 0 {
		return &MalformedError{Reason: "question " + q.ID + " has no prompt"}
	}
	return nil
}

// index builds the id lookup table.
func (c *Catalog) index() {
	c.byID = make(map[string]*Question)
	for si := range c.Sections {
		sec := &c.Sections[si]
		for qi := range sec.Questions {
			q := &sec.Questions[qi]
			c.byID[q.ID] = q
		}
	}
}

// Question returns the question with the given id.
func (c *Catalog) Question(id string) (*Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// SectionsForStage returns the ordered sections belonging to stage.
func (c *Catalog) SectionsForStage(stage Stage) []*Section {
	var out []*Section
	for i := range c.Sections {
		if c.Sections[i].Stage == stage {
			out = append(out, &c.Sections[i])
		}
	}
	return out
}

// RequiredCoreIDs returns the ids that must be answered for core intake to
// count as complete. An explicit required_core list wins; otherwise every
// required question in a core-stage section is implied.
func (c *Catalog) RequiredCoreIDs() []string {
	if len(c.RequiredCore) > 0 {
		return append([]string(nil), c.RequiredCore...)
	}

	var ids []string
	for _, sec := range c.SectionsForStage(StageCore) {
		for i := range sec.Questions {
			if sec.Questions[i].Required {
				ids = append(ids, sec.Questions[i].ID)
			}
		}
	}
	return ids
}

// Language returns the catalog's default language, or "en" if unset.
func (c *Catalog) Language() string {
	if c.DefaultLanguage != "" {
		return c.DefaultLanguage
	}
	return "en"
}
