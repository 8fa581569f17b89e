package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	leadErrors "foamparty/internal/leads/errors"
	"foamparty/internal/leads/validator"
	"foamparty/pkg/model"
	"foamparty/pkg/sanitizer"
)

type Submitter interface {
	Submit(ctx context.Context, lead model.BookingRequest) model.SubmissionOutcome
	Failed(reason string, fields map[string]string) model.SubmissionOutcome
}

type Validator interface {
	Validate(lead *model.BookingRequest) error
}

// Form holds the values of one mounted booking form and its submission state.
type Form struct {
	mu        sync.Mutex
	values    model.BookingRequest
	state     model.SubmissionState
	flow      Submitter
	validator Validator
}

func New(flow Submitter, v Validator) *Form {
	return &Form{
		state:     model.StateIdle,
		flow:      flow,
		validator: v,
	}
}

// Set stores value under the field's JSON name. The last write wins and
// nothing is validated until Submit.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case "name":
		f.values.Name = sanitizer.NormalizeName(value)
	case "email":
		f.values.Email = sanitizer.NormalizeEmail(value)
	case "phone":
		f.values.Phone = strings.TrimSpace(value)
	case "date":
		f.values.Date = strings.TrimSpace(value)
	case "time":
		f.values.Time = sanitizer.NormalizeChoice(value)
	case "partySize":
		f.values.PartySize = sanitizer.NormalizeChoice(value)
	case "location":
		f.values.Location = sanitizer.NormalizeLocation(value)
	case "package":
		f.values.Package = sanitizer.NormalizeChoice(value)
	default:
		return fmt.Errorf("%w: %q", leadErrors.ErrUnknownField, field)
	}
	return nil
}

// Fill sets every field of lead.
func (f *Form) Fill(lead model.BookingRequest) {
	for field, value := range map[string]string{
		"name":      lead.Name,
		"email":     lead.Email,
		"phone":     lead.Phone,
		"date":      lead.Date,
		"time":      lead.Time,
		"partySize": lead.PartySize,
		"location":  lead.Location,
		"package":   lead.Package,
	} {
		_ = f.Set(field, value)
	}
}

func (f *Form) Values() model.BookingRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) State() model.SubmissionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit checks the form and hands a frozen copy of its values to the flow.
// A form that was submitted stays submitted; a failed one may be retried.
func (f *Form) Submit(ctx context.Context) (model.SubmissionOutcome, error) {
	f.mu.Lock()
	switch f.state {
	case model.StateSubmitting:
		f.mu.Unlock()
		return model.SubmissionOutcome{}, leadErrors.ErrSubmitInProgress
	case model.StateSubmitted:
		f.mu.Unlock()
		return model.SubmissionOutcome{}, leadErrors.ErrAlreadySubmitted
	}
	f.state = model.StateSubmitting
	lead := f.values
	f.mu.Unlock()

	outcome := f.submit(ctx, lead)

	f.mu.Lock()
	f.state = outcome.State
	f.mu.Unlock()
	return outcome, nil
}

func (f *Form) submit(ctx context.Context, lead model.BookingRequest) model.SubmissionOutcome {
	err := f.validator.Validate(&lead)
	if err == nil {
		return f.flow.Submit(ctx, lead)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return f.flow.Failed(err.Error(), validationErrs.Fields())
	}
	return f.flow.Failed(err.Error(), nil)
}
