package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openagi/lux-go/internal/instruction"
	"github.com/openagi/lux-go/internal/oagi/oagitest"
)

func fluShot() AppointmentSpec {
	return AppointmentSpec{
		Service: "flu shot",
		Info: AppointmentInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			BirthDate: "1990-12-10",
			Email:     "ada@example.com",
			Phone:     "555-0100",
			ZipCode:   "94107",
		},
	}
}

func TestBuildAppointmentInstruction(t *testing.T) {
	instr, err := BuildAppointmentInstruction(fluShot())
	if err != nil {
		t.Fatalf("BuildAppointmentInstruction: %v", err)
	}

	for _, want := range []string{
		"Book a flu shot appointment.",
		"1. Navigate to https://www.cvs.com",
		"2. Find the scheduling page for 'flu shot'",
		"3. Enter the zip code '94107' and pick the nearest location",
		"4. Choose the earliest available time slot",
		"5. Fill in the patient details: name 'Ada Lovelace'",
		"6. Enter the date of birth '1990-12-10'",
		"7. Enter the email address 'ada@example.com'",
		"8. Enter the phone number '555-0100'",
		"9. Submit the booking and wait for the confirmation page",
	} {
		if !strings.Contains(instr, want) {
			t.Errorf("instruction missing %q:\n%s", want, instr)
		}
	}
}

func TestBuildAppointmentInstructionPreferredDate(t *testing.T) {
	spec := fluShot()
	spec.PreferredDate = "2025-10-01"

	instr, err := BuildAppointmentInstruction(spec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(instr, "time slot on or after 2025-10-01") {
		t.Errorf("preferred date missing:\n%s", instr)
	}
	if strings.Contains(instr, "earliest available") {
		t.Errorf("both slot steps rendered:\n%s", instr)
	}
}

func TestBuildAppointmentInstructionIncomplete(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AppointmentSpec)
	}{
		{"no service", func(s *AppointmentSpec) { s.Service = "" }},
		{"no name", func(s *AppointmentSpec) { s.Info.FirstName = "" }},
		{"no zip", func(s *AppointmentSpec) { s.Info.ZipCode = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := fluShot()
			tc.mutate(&spec)
			if _, err := BuildAppointmentInstruction(spec); !errors.Is(err, instruction.ErrIncompleteTask) {
				t.Errorf("err = %v, want ErrIncompleteTask", err)
			}
		})
	}
}

func TestBookSucceedsFirstAttempt(t *testing.T) {
	agent := oagitest.Succeed()
	bk := &Booker{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	out := bk.Book(context.Background(), fluShot())
	if !out.Success {
		t.Fatalf("out.Success = false, error %q", out.Error)
	}
	if agent.Calls() != 1 {
		t.Errorf("agent ran %d times, want 1", agent.Calls())
	}
}

func TestBookRetriesUntilExhausted(t *testing.T) {
	agent := oagitest.Fail(errors.New("no slots shown"))
	bk := &Booker{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	spec := fluShot()
	spec.RetryPause = time.Millisecond

	out := bk.Book(context.Background(), spec)
	if out.Success {
		t.Fatal("out.Success = true after persistent failure")
	}
	if agent.Calls() != DefaultMaxAttempts {
		t.Errorf("agent ran %d times, want %d", agent.Calls(), DefaultMaxAttempts)
	}
	if !strings.Contains(out.Error, "retry attempts exhausted after 3 attempts") {
		t.Errorf("out.Error = %q", out.Error)
	}
	if !strings.Contains(out.Error, "no slots shown") {
		t.Errorf("out.Error = %q, want last failure included", out.Error)
	}
}

func TestBookBadSpecSkipsAgent(t *testing.T) {
	agent := oagitest.Succeed()
	bk := &Booker{Agent: agent, Handler: oagitest.NoopHandler{}, Images: oagitest.BlankProvider{}}

	out := bk.Book(context.Background(), AppointmentSpec{})
	if out.Success {
		t.Error("out.Success = true for empty spec")
	}
	if agent.Calls() != 0 {
		t.Errorf("agent ran %d times, want 0", agent.Calls())
	}
}
