package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foamparty/internal/leads/notify"
	"foamparty/pkg/logger"
	"foamparty/pkg/model"
	"foamparty/pkg/sanitizer"

	"github.com/google/uuid"
)

const (
	ChannelLocal = "local"
	ChannelMail  = "mail"
	ChannelRelay = "relay"
	ChannelShare = "share"
)

const confirmationMessage = "We've received your foam party request and will contact you within 1 hour to confirm all details!"

type Repository interface {
	Append(ctx context.Context, lead model.BookingRequest) error
}

type Notifier interface {
	Notify(ctx context.Context, lead model.BookingRequest) error
}

type Deliverer interface {
	Deliver(ctx context.Context, lead model.BookingRequest) error
}

// Observer receives the result of every submission and channel attempt.
type Observer interface {
	SubmissionFinished(state model.SubmissionState)
	ChannelFinished(channel string, took time.Duration, err error)
}

type Config struct {
	Inbox         string
	BusinessPhone string
	BusinessEmail string
	Now           func() time.Time
	NewID         func() string
}

// Channels are the collaborators a submission fans out to. Share and
// Observer may be nil.
type Channels struct {
	Store    Repository
	Mail     Notifier
	Relay    Deliverer
	Share    Notifier
	Observer Observer
}

// Flow runs the lead submission steps. Every delivery channel is best effort:
// once the local step has started, the outcome is Submitted.
type Flow struct {
	cfg      Config
	channels Channels
	log      *logger.Logger
	wg       sync.WaitGroup
}

func New(cfg Config, channels Channels, log *logger.Logger) *Flow {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if channels.Observer == nil {
		channels.Observer = nopObserver{}
	}
	return &Flow{
		cfg:      cfg,
		channels: channels,
		log:      log,
	}
}

// Submit persists, notifies and relays a single lead.
func (f *Flow) Submit(ctx context.Context, lead model.BookingRequest) model.SubmissionOutcome {
	lead, err := f.prepare(ctx, lead)
	if err != nil {
		f.log.Error("lead submission failed before delivery", "error", err)
		return f.Failed(err.Error(), nil)
	}

	log := f.log.With("lead_id", lead.ID)
	outcome := model.SubmissionOutcome{Booking: &lead}

	outcome.Channels = append(outcome.Channels, f.run(ctx, ChannelLocal, func(ctx context.Context) error {
		return f.channels.Store.Append(ctx, lead)
	}))

	outcome.ComposeURL = notify.NewMessage(f.cfg.Inbox, lead).URL()
	outcome.Channels = append(outcome.Channels, f.dispatch(ctx, ChannelMail, func(ctx context.Context) error {
		return f.channels.Mail.Notify(ctx, lead)
	}))

	outcome.Channels = append(outcome.Channels, f.run(ctx, ChannelRelay, func(ctx context.Context) error {
		return f.channels.Relay.Deliver(ctx, lead)
	}))

	if f.channels.Share != nil {
		outcome.Channels = append(outcome.Channels, f.run(ctx, ChannelShare, func(ctx context.Context) error {
			return f.channels.Share.Notify(ctx, lead)
		}))
	} else {
		outcome.Channels = append(outcome.Channels, model.ChannelResult{Channel: ChannelShare})
	}

	outcome.State = model.StateSubmitted
	outcome.Confirmation = f.confirmation()
	f.channels.Observer.SubmissionFinished(outcome.State)

	log.Info("lead submitted", "channels", summarize(outcome.Channels))
	return outcome
}

// Failed builds the outcome shown when a lead could not be submitted at all.
func (f *Flow) Failed(reason string, fields map[string]string) model.SubmissionOutcome {
	f.channels.Observer.SubmissionFinished(model.StateFailed)
	return model.SubmissionOutcome{
		State:   model.StateFailed,
		Reason:  reason,
		Message: fmt.Sprintf("There was an issue submitting your booking. Please call us directly at %s", f.cfg.BusinessPhone),
		Fields:  fields,
	}
}

// Wait blocks until every fire-and-forget notification has returned.
func (f *Flow) Wait() {
	f.wg.Wait()
}

func (f *Flow) prepare(ctx context.Context, lead model.BookingRequest) (prepared model.BookingRequest, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("prepare lead: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return lead, err
	}
	if lead.ID == "" {
		lead.ID = f.cfg.NewID()
	}
	if lead.Timestamp == "" {
		lead = lead.Stamp(f.cfg.Now())
	}
	return lead, nil
}

// run executes one channel step and never lets its failure escape.
func (f *Flow) run(ctx context.Context, channel string, step func(context.Context) error) model.ChannelResult {
	start := time.Now()
	err := guard(ctx, step)
	f.channels.Observer.ChannelFinished(channel, time.Since(start), err)

	if err != nil {
		f.log.Warn("lead channel failed", "channel", channel, "error", err)
	}
	return model.ChannelResult{Channel: channel, Attempted: true, Err: err}
}

// dispatch starts a step without waiting for it. The step keeps running after
// the caller's context is cancelled.
func (f *Flow) dispatch(ctx context.Context, channel string, step func(context.Context) error) model.ChannelResult {
	detached := context.WithoutCancel(ctx)

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.run(detached, channel, step)
	}()

	return model.ChannelResult{Channel: channel, Attempted: true}
}

func (f *Flow) confirmation() *model.Confirmation {
	return &model.Confirmation{
		Phone:   f.cfg.BusinessPhone,
		TelURI:  sanitizer.TelURI(f.cfg.BusinessPhone),
		Email:   f.cfg.BusinessEmail,
		Message: confirmationMessage,
	}
}

func guard(ctx context.Context, step func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return step(ctx)
}

func summarize(results []model.ChannelResult) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		switch {
		case !r.Attempted:
			out[r.Channel] = "skipped"
		case r.Err != nil:
			out[r.Channel] = "failed"
		default:
			out[r.Channel] = "ok"
		}
	}
	return out
}

type nopObserver struct{}

func (nopObserver) SubmissionFinished(model.SubmissionState) {}
func (nopObserver) ChannelFinished(string, time.Duration, error) {}
