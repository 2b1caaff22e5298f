// Package booking automates appointment scheduling and benefit enrollment
// flows. Booking sites are flaky under automation, so bookings run through a
// fixed-attempt retry wrapper.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi"
)

const (
	// DefaultMaxAttempts is how many times a booking is tried.
	DefaultMaxAttempts = 3
	// DefaultRetryPause is the flat pause between attempts.
	DefaultRetryPause = 5 * time.Second
)

// AppointmentInfo holds the personal details keyed into a booking form.
type AppointmentInfo struct {
	FirstName string
	LastName  string
	BirthDate string
	Email     string
	Phone     string
	ZipCode   string
}

func (a AppointmentInfo) validate() error {
	switch {
	case strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "":
		return fmt.Errorf("%w: first and last name are required", instruction.ErrIncompleteTask)
	case strings.TrimSpace(a.ZipCode) == "":
		return fmt.Errorf("%w: zip code is required", instruction.ErrIncompleteTask)
	}
	return nil
}

// AppointmentSpec describes one appointment booking.
type AppointmentSpec struct {
	// SiteURL is the booking site. Defaults to https://www.cvs.com.
	SiteURL string
	// Service is the appointment type, e.g. "flu shot".
	Service string
	// Info is keyed into the scheduling form.
	Info AppointmentInfo
	// PreferredDate narrows the slot search when set.
	PreferredDate string
	// MaxAttempts and RetryPause tune the retry wrapper. Zero values take
	// the package defaults.
	MaxAttempts int
	RetryPause  time.Duration
}

func (s AppointmentSpec) withDefaults() AppointmentSpec {
	if s.SiteURL == "" {
		s.SiteURL = "https://www.cvs.com"
	}
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = DefaultMaxAttempts
	}
	if s.RetryPause <= 0 {
		s.RetryPause = DefaultRetryPause
	}
	return s
}

// BuildAppointmentInstruction renders one booking flow. Pure.
func BuildAppointmentInstruction(spec AppointmentSpec) (string, error) {
	if strings.TrimSpace(spec.Service) == "" {
		return "", fmt.Errorf("%w: service is required", instruction.ErrIncompleteTask)
	}
	if err := spec.Info.validate(); err != nil {
		return "", err
	}
	spec = spec.withDefaults()

	var b instruction.Builder
	b.Linef("Book a %s appointment.", spec.Service)
	b.Blank()
	b.Stepf("Navigate to %s", spec.SiteURL)
	b.Stepf("Find the scheduling page for '%s'", spec.Service)
	b.Stepf("Enter the zip code '%s' and pick the nearest location", spec.Info.ZipCode)
	b.StepIf(spec.PreferredDate != "", fmt.Sprintf("Choose an available time slot on or after %s", spec.PreferredDate))
	b.StepIf(spec.PreferredDate == "", "Choose the earliest available time slot")
	b.Stepf("Fill in the patient details: name '%s %s'", spec.Info.FirstName, spec.Info.LastName)
	b.StepIf(spec.Info.BirthDate != "", fmt.Sprintf("Enter the date of birth '%s'", spec.Info.BirthDate))
	b.StepIf(spec.Info.Email != "", fmt.Sprintf("Enter the email address '%s'", spec.Info.Email))
	b.StepIf(spec.Info.Phone != "", fmt.Sprintf("Enter the phone number '%s'", spec.Info.Phone))
	b.Step("Submit the booking and wait for the confirmation page")
	return b.String(), nil
}

// Booker schedules appointments through an agent.
type Booker struct {
	Agent   oagi.Agent
	Handler oagi.ActionHandler
	Images  oagi.ImageProvider
}

// Book runs one booking, retrying failed attempts with a flat pause.
func (bk *Booker) Book(ctx context.Context, spec AppointmentSpec) oagi.Outcome {
	name := fmt.Sprintf("book %s", spec.Service)
	instr, err := BuildAppointmentInstruction(spec)
	if err != nil {
		return oagi.Outcome{Name: name, Error: err.Error()}
	}
	spec = spec.withDefaults()
	return oagi.InvokeWithRetry(ctx, bk.Agent, name, instr, bk.Handler, bk.Images, spec.MaxAttempts, spec.RetryPause)
}
