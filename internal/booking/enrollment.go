package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

// EnrollmentSpec describes a health-plan browsing flow on a state exchange.
type EnrollmentSpec struct {
	// SiteURL defaults to https://www.coveredca.com.
	SiteURL string
	// ZipCode locates available plans. Required.
	ZipCode string
	// HouseholdSize and AnnualIncome feed the subsidy estimate when set.
	HouseholdSize int
	AnnualIncome  int
	// PlanTier narrows results, e.g. "Silver".
	PlanTier string
}

func (s EnrollmentSpec) withDefaults() EnrollmentSpec {
	if s.SiteURL == "" {
		s.SiteURL = "https://www.coveredca.com"
	}
	return s
}

// BuildEnrollmentInstruction renders a plan-browsing flow. The zip code
// always appears in the rendered text. Pure.
func BuildEnrollmentInstruction(spec EnrollmentSpec) (string, error) {
	if strings.TrimSpace(spec.ZipCode) == "" {
		return "", fmt.Errorf("%w: zip code is required", instruction.ErrIncompleteTask)
	}
	spec = spec.withDefaults()

	var b instruction.Builder
	b.Line("Browse available health insurance plans.")
	b.Blank()
	b.Stepf("Navigate to %s", spec.SiteURL)
	b.Step("Open the 'Shop and Compare' tool")
	b.Stepf("Enter the zip code '%s'", spec.ZipCode)
	b.StepIf(spec.HouseholdSize > 0, fmt.Sprintf("Set the household size to %d", spec.HouseholdSize))
	b.StepIf(spec.AnnualIncome > 0, fmt.Sprintf("Enter the annual household income $%d", spec.AnnualIncome))
	b.StepIf(spec.PlanTier != "", fmt.Sprintf("Filter to '%s' tier plans", spec.PlanTier))
	b.Step("Record the name and monthly premium of each listed plan")
	return b.String(), nil
}

// BrowsePlans runs the plan-browsing flow once, without retry. Browsing is
// read-only and safe to rerun by hand.
func (bk *Booker) BrowsePlans(ctx context.Context, spec EnrollmentSpec) oagi.Outcome {
	name := fmt.Sprintf("plans for %s", spec.ZipCode)
	instr, err := BuildEnrollmentInstruction(spec)
	if err != nil {
		return oagi.Outcome{Name: name, Error: err.Error()}
	}
	return oagi.Invoke(ctx, bk.Agent, name, instr, bk.Handler, bk.Images)
}
