// internal/app/system/serviceprofile/merge.go
package serviceprofile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// ErrOverrideNotObject is returned when the override JSON is valid but is
// not an object.
var ErrOverrideNotObject = errors.New("profile override is not a JSON object")

// merge applies the override JSON onto p field by field. Scalars replace
// only when non-blank and lists replace wholesale only when non-empty.
// Any value of the wrong shape leaves the base value in place.
func (p *Profile) merge(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return fmt.Errorf("decode profile override: %w", err)
	}
	in, ok := decoded.(map[string]any)
	if !ok {
		return ErrOverrideNotObject
	}

	setString(&p.MetaDescription, in["meta_description"])
	setString(&p.MetaTitle, in["meta_title"])
	setString(&p.IntroKicker, in["intro_kicker"])
	setString(&p.PositioningBadge, in["positioning_badge"])
	setString(&p.BoardTitle, in["board_title"])
	setString(&p.ModulesTitle, in["modules_title"])
	setString(&p.NarrativeTitle, in["narrative_title"])

	setStrings(&p.Keywords, in["keywords"])
	setStrings(&p.RelatedTechnologies, in["related_technologies"])
	setStrings(&p.ServiceAreaCities, in["service_area_cities"])
	setStrings(&p.ComplianceFrameworks, in["compliance_frameworks"])
	setStrings(&p.SupportedBrands, in["supported_brands"])

	if blocks, ok := nonEmptyList(in["seo_content_blocks"]); ok {
		out := []string{}
		for _, b := range blocks {
			if s := strings.TrimSpace(cast.ToString(b)); s != "" {
				out = append(out, s)
			}
		}
		p.SEOContentBlocks = out
	}

	setStructs(&p.Process, in["process"])
	setStructs(&p.Tools, in["tools"])
	setStructs(&p.Deliverables, in["deliverables"])
	setStructs(&p.HeroBadges, in["hero_badges"])
	setStructs(&p.ServiceModules, in["service_modules"])
	setStructs(&p.IssueSolutionMap, in["issue_solution_map"])
	setStructs(&p.LeadTimeDiagram, in["lead_time_diagram"])
	setStructs(&p.FAQs, in["faqs"])
	setStructs(&p.ProofPoints, in["proof_points"])
	setStructs(&p.BrandServices, in["brand_services"])
	return nil
}

func setString(dst *string, v any) {
	if v == nil {
		return
	}
	s, err := cast.ToStringE(v)
	if err != nil || strings.TrimSpace(s) == "" {
		return
	}
	*dst = s
}

func nonEmptyList(v any) ([]any, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	return list, true
}

func setStrings(dst *[]string, v any) {
	list, ok := nonEmptyList(v)
	if !ok {
		return
	}
	out, err := cast.ToStringSliceE(list)
	if err != nil {
		return
	}
	*dst = out
}

// setStructs decodes a list of objects into dst. Numbers and booleans are
// accepted where strings are expected; anything else keeps the base list.
func setStructs[T any](dst *[]T, v any) {
	list, ok := nonEmptyList(v)
	if !ok {
		return
	}
	var out []T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return
	}
	if err := dec.Decode(list); err != nil {
		return
	}
	*dst = out
}
