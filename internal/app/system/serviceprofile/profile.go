// internal/app/system/serviceprofile/profile.go
package serviceprofile

import (
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
)

// Step is one phase of the service workflow. Service modules share the shape.
type Step struct {
	Title  string `mapstructure:"title"`
	Detail string `mapstructure:"detail"`
	Icon   string `mapstructure:"icon"`
}

// Tool is an entry in the tool stack.
type Tool struct {
	Name string `mapstructure:"name"`
	Icon string `mapstructure:"icon"`
	Desc string `mapstructure:"desc"`
}

// Deliverable is an outcome the service commits to.
type Deliverable struct {
	Label string `mapstructure:"label"`
	Value string `mapstructure:"value"`
	Icon  string `mapstructure:"icon"`
}

// Badge is a short hero highlight.
type Badge struct {
	Icon  string `mapstructure:"icon"`
	Label string `mapstructure:"label"`
}

// IssueSolution pairs a common problem with how the service addresses it.
type IssueSolution struct {
	Issue    string `mapstructure:"issue"`
	Solution string `mapstructure:"solution"`
	Icon     string `mapstructure:"icon"`
}

// LeadTimePhase is one row of the lead time diagram.
type LeadTimePhase struct {
	Phase  string `mapstructure:"phase"`
	ETA    string `mapstructure:"eta"`
	Detail string `mapstructure:"detail"`
	Icon   string `mapstructure:"icon"`
}

// FAQ is a question and answer pair.
type FAQ struct {
	Q string `mapstructure:"q"`
	A string `mapstructure:"a"`
}

// ProofPoint is a labeled claim shown beside the narrative.
type ProofPoint struct {
	Label string `mapstructure:"label"`
	Value string `mapstructure:"value"`
	Icon  string `mapstructure:"icon"`
}

// BrandService describes brand-specific work (e.g. a vendor's devices).
type BrandService struct {
	Brand   string `mapstructure:"brand"`
	Service string `mapstructure:"service"`
	Detail  string `mapstructure:"detail"`
	Icon    string `mapstructure:"icon"`
}

// Profile is the rich content shown on a service detail page.
type Profile struct {
	Archetype Archetype

	MetaDescription  string
	MetaTitle        string
	IntroKicker      string
	PositioningBadge string
	BoardTitle       string
	ModulesTitle     string
	NarrativeTitle   string

	Keywords             []string
	RelatedTechnologies  []string
	ServiceAreaCities    []string
	ComplianceFrameworks []string
	SupportedBrands      []string
	SEOContentBlocks     []string

	Process          []Step
	Tools            []Tool
	Deliverables     []Deliverable
	HeroBadges       []Badge
	ServiceModules   []Step
	IssueSolutionMap []IssueSolution
	LeadTimeDiagram  []LeadTimePhase
	FAQs             []FAQ
	ProofPoints      []ProofPoint
	BrandServices    []BrandService
}

// LeadTimeETA is the turnaround shown for every lead time phase.
const LeadTimeETA = "1-3 business days"

const metaDescriptionLimit = 220

// Build synthesizes the profile for svc: archetype defaults overridden by
// the service's profile JSON. Malformed overrides are ignored.
func Build(svc models.Service) Profile {
	p, _ := BuildChecked(svc)
	return p
}

// BuildChecked is Build, also reporting why the override JSON was ignored.
// The returned profile is always usable.
func BuildChecked(svc models.Service) (Profile, error) {
	p := base(svc)
	err := p.merge(svc.Profile())

	p.ServiceAreaCities = models.OrangeCountyCities()
	if len(p.RelatedTechnologies) == 0 {
		p.RelatedTechnologies = toolNames(p.Tools)
	}
	return p, err
}

func base(svc models.Service) Profile {
	arch := ArchetypeFor(svc.ServiceType)
	c := arch.content()
	title := svc.Title

	desc := truncateRunes(svc.Description, metaDescriptionLimit)
	if desc == "" {
		desc = title + " service support for Orange County businesses."
	}

	p := Profile{
		Archetype:        arch,
		MetaDescription:  desc,
		MetaTitle:        title + " in Orange County | Right On Repair",
		IntroKicker:      "Solutions",
		PositioningBadge: "Service Delivery Program",
		BoardTitle:       "Service Workflow",
		ModulesTitle:     "Specialized Service Programs",
		NarrativeTitle:   "Service Scope and Delivery Standards",
		Keywords: []string{
			title + " Orange County",
			title + " services",
			"business IT support",
			"Right On Repair",
		},
		Process:      c.process,
		Tools:        c.tools,
		Deliverables: c.deliverables,
		HeroBadges:   c.heroBadges,
		FAQs: []FAQ{
			{Q: "What is included in " + strings.ToLower(title) + "?", A: "We scope your requirements, deliver with clear milestones, and provide post-delivery support and optimization guidance."},
			{Q: "Can this be tailored to our environment?", A: "Yes. Every engagement is adapted to your business workflows, constraints, and growth goals."},
			{Q: "Do you provide post-delivery support?", A: "Yes. We offer ongoing support, reporting, and improvement cycles after implementation."},
		},
		SEOContentBlocks:  []string{},
		ServiceAreaCities: models.OrangeCountyCities(),
		ComplianceFrameworks: []string{
			"NIST-aligned controls",
			"Least-privilege access principles",
			"Routine security review cadences",
		},
		ProofPoints: []ProofPoint{
			{Label: "Scope", Value: "Clear objectives and accountable ownership"},
			{Label: "Reliability", Value: "Stability-first implementation and testing"},
			{Label: "Visibility", Value: "Actionable reporting and communication cadence"},
		},
		RelatedTechnologies: toolNames(c.tools),
		SupportedBrands:     []string{},
		BrandServices:       []BrandService{},
	}

	for _, s := range c.process {
		p.ServiceModules = append(p.ServiceModules, Step{Title: s.Title, Detail: s.Detail, Icon: s.Icon})
		p.IssueSolutionMap = append(p.IssueSolutionMap, IssueSolution{
			Issue:    s.Title + " gaps creating inconsistent outcomes",
			Solution: s.Detail,
			Icon:     s.Icon,
		})
		p.LeadTimeDiagram = append(p.LeadTimeDiagram, LeadTimePhase{
			Phase:  s.Title,
			ETA:    LeadTimeETA,
			Detail: s.Detail,
			Icon:   s.Icon,
		})
	}
	return p
}

func toolNames(tools []Tool) []string {
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		out = append(out, t.Name)
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
