package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/groundworkhq/groundwork/internal/profile"
)

// Render substitutes {{var}} placeholders in the template with values
// derived from the profile. Unknown placeholders are left untouched so a
// custom template authoring mistake is visible in the output.
func Render(tmpl *Template, p *profile.Profile, now time.Time) string {
	vars := buildVars(p, now)

	result := tmpl.Content
	for key, val := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", val)
	}
	return result
}

// WriteDoc renders the template and writes it into docsDir.
// Returns the written path.
func WriteDoc(tmpl *Template, p *profile.Profile, docsDir string, now time.Time) (string, error) {
	content := Render(tmpl, p, now)
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return "", fmt.Errorf("preparing %s: %w", docsDir, err)
	}
	path := filepath.Join(docsDir, tmpl.OutputFile())
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// WriteDocTo renders the template and writes it to an explicit path,
// bypassing the docs directory. Returns the written path.
func WriteDocTo(tmpl *Template, p *profile.Profile, path string, now time.Time) (string, error) {
	content := Render(tmpl, p, now)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("preparing %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// buildVars derives the substitution variables from the profile.
// Every variable is a string; list fields render as markdown bullets.
func buildVars(p *profile.Profile, now time.Time) map[string]string {
	vars := map[string]string{
		"date": now.Format("2006-01-02"),

		"company_name": orPlaceholder(p.Identity.Name, "Unnamed company"),
		"tagline":      p.Identity.Tagline,
		"stage":        p.Identity.Stage,
		"founded_year": orPlaceholder(p.Identity.FoundedYear, "—"),
		"lifecycle":    p.Meta.Lifecycle,

		"industry":      orPlaceholder(p.Market.Industry, "—"),
		"segments":      bullets(p.Market.Segments),
		"channels":      bullets(p.Market.Channels),
		"competitors":   bullets(p.Market.Competitors),
		"strengths":     bullets(p.Market.Strengths),
		"weaknesses":    bullets(p.Market.Weaknesses),
		"opportunities": bullets(p.Market.Opportunities),
		"threats":       bullets(p.Market.Threats),

		"revenue_streams": bullets(p.Revenue.Streams),
		"pricing_model":   orPlaceholder(p.Revenue.PricingModel, "—"),
		"monthly_revenue": orPlaceholder(p.Revenue.MonthlyRevenue, "—"),

		"headcount":  orPlaceholder(p.Ops.Headcount, "—"),
		"activities": bullets(p.Ops.Activities),
		"partners":   bullets(p.Ops.Partners),

		"fixed_costs":    orPlaceholder(p.Finance.FixedCosts, "—"),
		"variable_costs": orPlaceholder(p.Finance.VariableCosts, "—"),
		"runway_months":  orPlaceholder(p.Finance.RunwayMonths, "—"),

		"legal_form": p.Compliance.LegalForm,
		"regulated":  yesNo(p.Compliance.Regulated),

		"primary_goal": orPlaceholder(p.Goals.Primary, "—"),
		"horizon":      orPlaceholder(p.Goals.Horizon, "—"),
		"objectives":   bullets(p.Goals.Objectives),

		"patch_sources": patchSources(p.Meta.Sources),
	}
	return vars
}

// bullets renders a list as markdown bullet lines, or an italic
// placeholder when nothing was recorded.
func bullets(items []string) string {
	if len(items) == 0 {
		return "_none recorded_"
	}
	var builder strings.Builder
	for i, item := range items {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("- " + item)
	}
	return builder.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// patchSources renders custom-data provenance lines, or empty when the
// profile is pure projection.
func patchSources(sources []profile.PatchSource) string {
	if len(sources) == 0 {
		return ""
	}
	var builder strings.Builder
	builder.WriteString("\n> Fields patched outside intake:\n")
	for _, src := range sources {
		fmt.Fprintf(&builder, "> - `%s` (%s)\n", src.Path, src.Source)
	}
	return builder.String()
}
