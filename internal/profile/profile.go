// Package profile provides the typed company profile: the denormalized
// document projected from the answer store and consumed by document
// generation. Field access is compile-time checked; the catalog's dotted
// target paths resolve to typed setters once at load time.
package profile

// Default field values applied before projection. Every scalar field has
// a documented default; list fields default to empty.
const (
	DefaultStage     = "EARLY"
	DefaultLifecycle = "UNKNOWN"
	DefaultLegalForm = "OTHER"
)

// Identity holds who the company is.
type Identity struct {
	Name        string `yaml:"name" json:"name"`
	Tagline     string `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	Stage       string `yaml:"stage" json:"stage"`
	FoundedYear string `yaml:"founded_year,omitempty" json:"founded_year,omitempty"`
}

// Market holds where the company plays.
type Market struct {
	Industry      string   `yaml:"industry,omitempty" json:"industry,omitempty"`
	Segments      []string `yaml:"segments,omitempty" json:"segments,omitempty"`
	Channels      []string `yaml:"channels,omitempty" json:"channels,omitempty"`
	Competitors   []string `yaml:"competitors,omitempty" json:"competitors,omitempty"`
	Strengths     []string `yaml:"strengths,omitempty" json:"strengths,omitempty"`
	Weaknesses    []string `yaml:"weaknesses,omitempty" json:"weaknesses,omitempty"`
	Opportunities []string `yaml:"opportunities,omitempty" json:"opportunities,omitempty"`
	Threats       []string `yaml:"threats,omitempty" json:"threats,omitempty"`
}

// Revenue holds how the company makes money.
type Revenue struct {
	Streams        []string `yaml:"streams,omitempty" json:"streams,omitempty"`
	PricingModel   string   `yaml:"pricing_model,omitempty" json:"pricing_model,omitempty"`
	MonthlyRevenue string   `yaml:"monthly_revenue,omitempty" json:"monthly_revenue,omitempty"`
}

// Ops holds how the company runs.
type Ops struct {
	Headcount  string   `yaml:"headcount,omitempty" json:"headcount,omitempty"`
	Activities []string `yaml:"activities,omitempty" json:"activities,omitempty"`
	Partners   []string `yaml:"partners,omitempty" json:"partners,omitempty"`
}

// Finance holds the cost and runway picture.
type Finance struct {
	FixedCosts    string `yaml:"fixed_costs,omitempty" json:"fixed_costs,omitempty"`
	VariableCosts string `yaml:"variable_costs,omitempty" json:"variable_costs,omitempty"`
	RunwayMonths  string `yaml:"runway_months,omitempty" json:"runway_months,omitempty"`
}

// Compliance holds the legal shape.
type Compliance struct {
	LegalForm string `yaml:"legal_form" json:"legal_form"`
	Regulated bool   `yaml:"regulated" json:"regulated"`
}

// Goals holds what the company is aiming at.
type Goals struct {
	Primary    string   `yaml:"primary,omitempty" json:"primary,omitempty"`
	Horizon    string   `yaml:"horizon,omitempty" json:"horizon,omitempty"`
	Objectives []string `yaml:"objectives,omitempty" json:"objectives,omitempty"`
}

// PatchSource records one direct patch applied outside projection:
// which field, on whose authority.
type PatchSource struct {
	Path   string `yaml:"path" json:"path"`
	Source string `yaml:"source" json:"source"`
}

// ProfileMeta carries lifecycle and provenance.
type ProfileMeta struct {
	Lifecycle string `yaml:"lifecycle" json:"lifecycle"`
	// Sources lists custom-data patches applied directly to this profile,
	// outside the answer-store projection. Free-text provenance only.
	Sources []PatchSource `yaml:"sources,omitempty" json:"sources,omitempty"`
}

// Profile is the full company profile document.
type Profile struct {
	Identity   Identity    `yaml:"identity" json:"identity"`
	Market     Market      `yaml:"market" json:"market"`
	Revenue    Revenue     `yaml:"revenue" json:"revenue"`
	Ops        Ops         `yaml:"ops" json:"ops"`
	Finance    Finance     `yaml:"finance" json:"finance"`
	Compliance Compliance  `yaml:"compliance" json:"compliance"`
	Goals      Goals       `yaml:"goals" json:"goals"`
	Meta       ProfileMeta `yaml:"meta" json:"meta"`
}

// New returns a profile with every scalar at its documented default.
func New() *Profile {
	return &Profile{
		Identity:   Identity{Stage: DefaultStage},
		Compliance: Compliance{LegalForm: DefaultLegalForm},
		Meta:       ProfileMeta{Lifecycle: DefaultLifecycle},
	}
}
