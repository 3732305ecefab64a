package profile

import (
	"fmt"
	"strings"

	"github.com/groundworkhq/groundwork/internal/answers"
	"github.com/groundworkhq/groundwork/internal/catalog"
)

// setter applies an answer value to its profile field. Scalar fields take
// the value's text form; list fields take the value's list, or its text
// split on commas when the answer came from a free-text question.
type setter func(*Profile, answers.Value)

// bindings maps every supported catalog target path to its typed setter.
// Resolved once at catalog load via NewProjector; an unknown target is a
// load-time error, not a runtime surprise.
var bindings = map[string]setter{
	"identity.name":    func(p *Profile, v answers.Value) { p.Identity.Name = v.Text },
	"identity.tagline": func(p *Profile, v answers.Value) { p.Identity.Tagline = v.Text },
	"identity.stage": func(p *Profile, v answers.Value) {
		if v.Text != "" {
			p.Identity.Stage = v.Text
		}
	},
	"identity.founded_year": func(p *Profile, v answers.Value) { p.Identity.FoundedYear = v.Text },

	"market.industry":      func(p *Profile, v answers.Value) { p.Market.Industry = v.Text },
	"market.segments":      func(p *Profile, v answers.Value) { p.Market.Segments = valueList(v) },
	"market.channels":      func(p *Profile, v answers.Value) { p.Market.Channels = valueList(v) },
	"market.competitors":   func(p *Profile, v answers.Value) { p.Market.Competitors = valueList(v) },
	"market.strengths":     func(p *Profile, v answers.Value) { p.Market.Strengths = valueList(v) },
	"market.weaknesses":    func(p *Profile, v answers.Value) { p.Market.Weaknesses = valueList(v) },
	"market.opportunities": func(p *Profile, v answers.Value) { p.Market.Opportunities = valueList(v) },
	"market.threats":       func(p *Profile, v answers.Value) { p.Market.Threats = valueList(v) },

	"revenue.streams":         func(p *Profile, v answers.Value) { p.Revenue.Streams = valueList(v) },
	"revenue.pricing_model":   func(p *Profile, v answers.Value) { p.Revenue.PricingModel = v.Text },
	"revenue.monthly_revenue": func(p *Profile, v answers.Value) { p.Revenue.MonthlyRevenue = v.Text },

	"ops.headcount":  func(p *Profile, v answers.Value) { p.Ops.Headcount = v.Text },
	"ops.activities": func(p *Profile, v answers.Value) { p.Ops.Activities = valueList(v) },
	"ops.partners":   func(p *Profile, v answers.Value) { p.Ops.Partners = valueList(v) },

	"finance.fixed_costs":    func(p *Profile, v answers.Value) { p.Finance.FixedCosts = v.Text },
	"finance.variable_costs": func(p *Profile, v answers.Value) { p.Finance.VariableCosts = v.Text },
	"finance.runway_months":  func(p *Profile, v answers.Value) { p.Finance.RunwayMonths = v.Text },

	"compliance.legal_form": func(p *Profile, v answers.Value) {
		if v.Text != "" {
			p.Compliance.LegalForm = v.Text
		}
	},
	"compliance.regulated": func(p *Profile, v answers.Value) { p.Compliance.Regulated = v.Bool },

	"goals.primary":    func(p *Profile, v answers.Value) { p.Goals.Primary = v.Text },
	"goals.horizon":    func(p *Profile, v answers.Value) { p.Goals.Horizon = v.Text },
	"goals.objectives": func(p *Profile, v answers.Value) { p.Goals.Objectives = valueList(v) },

	"meta.lifecycle": func(p *Profile, v answers.Value) {
		if v.Text != "" {
			p.Meta.Lifecycle = v.Text
		}
	},
}

// valueList normalizes an answer into a list of strings: multi-choice
// answers pass through, free text splits on commas.
func valueList(v answers.Value) []string {
	if v.Kind == answers.KindMultiChoice {
		if len(v.List) == 0 {
			return nil
		}
		return append([]string(nil), v.List...)
	}

	var items []string
	for _, item := range strings.Split(v.Text, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// binding pairs a question id with its resolved setter.
type binding struct {
	questionID string
	apply      setter
}

// Projector projects an answer state into a profile through the bindings
// resolved for one catalog.
type Projector struct {
	resolved []binding
}

// NewProjector resolves every catalog target path to a typed setter.
// Questions without a target are answers-only and skipped. An unknown
// target path is a catalog defect and fails here, at load time.
func NewProjector(cat *catalog.Catalog) (*Projector, error) {
	var resolved []binding
	for _, sec := range cat.Sections {
		for _, q := range sec.Questions {
			if q.Target == "" {
				continue
			}
			apply, ok := bindings[q.Target]
			if !ok {
				return nil, fmt.Errorf("question %s: no profile field for target %q", q.ID, q.Target)
			}
			resolved = append(resolved, binding{questionID: q.ID, apply: apply})
		}
	}
	return &Projector{resolved: resolved}, nil
}

// Project derives a profile from the answer state. Pure and total: fields
// without answers keep their documented defaults, and projecting the same
// state twice yields identical output.
func (pr *Projector) Project(state *answers.State) *Profile {
	p := New()
	for _, b := range pr.resolved {
		value, ok := state.Get(b.questionID)
		if !ok {
			continue
		}
		b.apply(p, value)
	}
	return p
}

// Rebuild projects state and carries forward the patch provenance from a
// previous profile, so re-projection keeps custom-data sources visible.
// Patched field values themselves are overwritten: projection wins on
// every bound field, custom patches win only until the next rebuild
// (last-write-wins, as documented).
func (pr *Projector) Rebuild(state *answers.State, prev *Profile) *Profile {
	p := pr.Project(state)
	if prev != nil {
		p.Meta.Sources = append([]PatchSource(nil), prev.Meta.Sources...)
	}
	return p
}
