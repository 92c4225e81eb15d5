// internal/app/system/serviceprofile/archetype.go
package serviceprofile

import (
	"strings"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
)

// Archetype selects the default content a profile starts from. The set is
// closed: "professional" selects Professional and every other service type
// selects Diagnostic.
type Archetype int

const (
	Diagnostic Archetype = iota
	Professional
)

// ArchetypeFor classifies a service type, ignoring case and surrounding space.
func ArchetypeFor(serviceType string) Archetype {
	if strings.EqualFold(strings.TrimSpace(serviceType), models.ServiceTypeProfessional) {
		return Professional
	}
	return Diagnostic
}

func (a Archetype) String() string {
	switch a {
	case Professional:
		return "professional"
	default:
		return "diagnostic"
	}
}

type archetypeContent struct {
	process      []Step
	tools        []Tool
	deliverables []Deliverable
	heroBadges   []Badge
}

func (a Archetype) content() archetypeContent {
	switch a {
	case Professional:
		return archetypeContent{
			process: []Step{
				{Title: "Discovery", Detail: "Map requirements, risks, and success criteria.", Icon: "fa-solid fa-clipboard-check"},
				{Title: "Architecture", Detail: "Design secure workflows, integrations, and standards.", Icon: "fa-solid fa-diagram-project"},
				{Title: "Implementation", Detail: "Deliver in milestones with validation at each stage.", Icon: "fa-solid fa-gears"},
				{Title: "Optimization", Detail: "Refine performance and outcomes with measurable reporting.", Icon: "fa-solid fa-chart-line"},
			},
			tools: []Tool{
				{Name: "Microsoft 365", Icon: "fa-brands fa-microsoft", Desc: "Identity, productivity, and endpoint workflows"},
				{Name: "Cloudflare", Icon: "fa-solid fa-cloud", Desc: "Edge networking, security, and performance controls"},
				{Name: "Endpoint Monitoring", Icon: "fa-solid fa-desktop", Desc: "Visibility into uptime, incidents, and drift"},
				{Name: "Secure Access", Icon: "fa-solid fa-shield-halved", Desc: "Policy-based authentication and access control"},
			},
			deliverables: []Deliverable{
				{Label: "Coverage", Value: "Strategic delivery aligned to business goals", Icon: "fa-solid fa-layer-group"},
				{Label: "Security", Value: "Risk-aware controls and compliance alignment", Icon: "fa-solid fa-shield-halved"},
				{Label: "Performance", Value: "Stable operations with optimization visibility", Icon: "fa-solid fa-gauge-high"},
				{Label: "Support", Value: "Structured escalation and accountable communication", Icon: "fa-solid fa-headset"},
			},
			heroBadges: []Badge{
				{Icon: "fa-solid fa-layer-group", Label: "Strategic Discovery and Planning"},
				{Icon: "fa-solid fa-gears", Label: "Milestone-Based Implementation"},
				{Icon: "fa-solid fa-chart-line", Label: "Continuous Performance Optimization"},
			},
		}
	default:
		return archetypeContent{
			process: []Step{
				{Title: "Intake & Diagnostics", Detail: "Capture symptoms and run root-cause tests.", Icon: "fa-solid fa-stethoscope"},
				{Title: "Repair Plan", Detail: "Confirm scope, parts, and expected turnaround.", Icon: "fa-solid fa-screwdriver-wrench"},
				{Title: "Repair Execution", Detail: "Apply component-level fixes with QA checkpoints.", Icon: "fa-solid fa-microchip"},
				{Title: "Validation", Detail: "Stress test and verify full functional readiness.", Icon: "fa-solid fa-circle-check"},
			},
			tools: []Tool{
				{Name: "Bench Diagnostics", Icon: "fa-solid fa-laptop-medical", Desc: "Hardware and subsystem verification workflows"},
				{Name: "Data-Safe Handling", Icon: "fa-solid fa-user-lock", Desc: "Minimized risk during repair and recovery handling"},
				{Name: "Thermal + Power Tests", Icon: "fa-solid fa-temperature-half", Desc: "Performance and stability validation under load"},
				{Name: "Post-Repair QA", Icon: "fa-solid fa-list-check", Desc: "Final checklist before customer handoff"},
			},
			deliverables: []Deliverable{
				{Label: "Diagnostics", Value: "Root-cause confirmation before repairs", Icon: "fa-solid fa-stethoscope"},
				{Label: "Turnaround", Value: "Clear checkpoints and status visibility", Icon: "fa-solid fa-stopwatch"},
				{Label: "Parts Quality", Value: "Verified components and repair standards", Icon: "fa-solid fa-microchip"},
				{Label: "Validation", Value: "Functional and stress testing complete", Icon: "fa-solid fa-circle-check"},
			},
			heroBadges: []Badge{
				{Icon: "fa-solid fa-stethoscope", Label: "Diagnostics-First Workflow"},
				{Icon: "fa-solid fa-screwdriver-wrench", Label: "Component-Level Repair Paths"},
				{Icon: "fa-solid fa-circle-check", Label: "Validation Before Handoff"},
			},
		}
	}
}
