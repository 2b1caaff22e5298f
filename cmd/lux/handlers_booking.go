// Package main provides the lux CLI.
//
// handlers_booking.go implements the appointment and enrollment commands.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/openagi/lux-go/internal/booking"
	"github.com/openagi/lux-go/internal/oagi"
)

// =============================================================================
// Book Command Handler
// =============================================================================

func runBook(cmd *cobra.Command, service, site, firstName, lastName, birthDate, email, phone, zip, date string, attempts int, retryPause time.Duration) error {
	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelActor)
	if err != nil {
		return err
	}
	defer rt.Close()

	booker := &booking.Booker{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	spec := booking.AppointmentSpec{
		SiteURL: site,
		Service: service,
		Info: booking.AppointmentInfo{
			FirstName: firstName,
			LastName:  lastName,
			BirthDate: birthDate,
			Email:     email,
			Phone:     phone,
			ZipCode:   zip,
		},
		PreferredDate: date,
		MaxAttempts:   attempts,
		RetryPause:    retryPause,
	}

	out := booker.Book(cmd.Context(), spec)
	printOutcome(cmd, out)
	return failure(out)
}

// =============================================================================
// Plans Command Handler
// =============================================================================

func runPlans(cmd *cobra.Command, site, zip string, household, income int, tier string) error {
	rt, err := newRuntime(cmd.Context(), cmd, oagi.ModelActor)
	if err != nil {
		return err
	}
	defer rt.Close()

	booker := &booking.Booker{Agent: rt.agent, Handler: rt.handler, Images: rt.images}
	spec := booking.EnrollmentSpec{
		SiteURL:       site,
		ZipCode:       zip,
		HouseholdSize: household,
		AnnualIncome:  income,
		PlanTier:      tier,
	}

	out := booker.BrowsePlans(cmd.Context(), spec)
	printOutcome(cmd, out)
	return failure(out)
}
