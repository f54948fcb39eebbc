// Package registration holds the registration state machine and the HTTP
// handlers that drive it. The machine itself talks only to the narrow
// collaborator interfaces below, so it can be exercised without a router,
// Mongo, or a payment gateway.
package registration

import (
	"context"
	"strings"
	"time"

	"gatherly/events"
	"gatherly/globals"
	"gatherly/models"
)

// State of a single registration attempt.
type State string

const (
	StateNotLoggedIn       State = "NOT_LOGGED_IN"
	StateWrongRole         State = "LOGGED_IN_WRONG_ROLE"
	StateChecking          State = "CHECKING"
	StateAlreadyRegistered State = "ALREADY_REGISTERED"
	StateClosed            State = "REGISTRATION_CLOSED"
	StateOpen              State = "REGISTRATION_OPEN"
	StateSubmitting        State = "SUBMITTING"
	StateSuccess           State = "SUCCESS"
	StateFailed            State = "FAILED"
)

// Checker answers whether the participant already holds a registration.
type Checker interface {
	IsRegistered(ctx context.Context, participantID, eventID string) (bool, error)
}

// Registrar performs the direct (free) registration.
type Registrar interface {
	Register(ctx context.Context, participantID, eventID string) error
}

// OrderCreator starts a paid registration. The implementation performs its
// own duplicate check and may reject with a conflict.
type OrderCreator interface {
	CreateOrder(ctx context.Context, participantID, eventID string, amount float64) (*models.PaymentOrder, error)
}

// PaymentVerifier finalizes a paid registration after the gateway reports
// success.
type PaymentVerifier interface {
	VerifyAndRegister(ctx context.Context, orderID, paymentID, signature string) error
}

// Flow runs one registration attempt. It is not safe for concurrent use;
// callers process one attempt at a time.
type Flow struct {
	checker  Checker
	registry Registrar
	orders   OrderCreator
	verifier PaymentVerifier

	state   State
	message string
	order   *models.PaymentOrder
}

func NewFlow(checker Checker, registry Registrar, orders OrderCreator, verifier PaymentVerifier) *Flow {
	return &Flow{
		checker:  checker,
		registry: registry,
		orders:   orders,
		verifier: verifier,
		state:    StateNotLoggedIn,
	}
}

func (f *Flow) State() State { return f.state }

// Message is the last user-facing message, carried verbatim from whichever
// collaborator produced it.
func (f *Flow) Message() string { return f.message }

// Order is the pending payment order, set while a paid attempt awaits the
// gateway callback.
func (f *Flow) Order() *models.PaymentOrder { return f.order }

// IsDuplicate reports whether the failure was a duplicate-registration
// conflict, which gets its own call-to-action instead of a retry.
func (f *Flow) IsDuplicate() bool {
	return strings.Contains(strings.ToLower(f.message), "already registered")
}

// Begin gates on the session. Anything but a participant session lands in a
// terminal non-open state without touching any backend collaborator.
func (f *Flow) Begin(session *models.Session) State {
	switch {
	case session == nil || session.UserID == "":
		f.state = StateNotLoggedIn
	case session.Role != globals.RoleParticipant:
		f.state = StateWrongRole
	default:
		f.state = StateChecking
	}
	return f.state
}

// Check issues the single already-registered lookup, then consults the
// eligibility evaluator for the open/closed decision.
func (f *Flow) Check(ctx context.Context, session *models.Session, event models.Event, now time.Time) State {
	if f.state != StateChecking {
		return f.state
	}

	registered, err := f.checker.IsRegistered(ctx, session.UserID, event.EventID)
	if err != nil {
		f.fail(err.Error())
		return f.state
	}
	if registered {
		f.state = StateAlreadyRegistered
		return f.state
	}

	if !events.IsRegistrationOpen(event, now) {
		f.state = StateClosed
		return f.state
	}
	f.state = StateOpen
	return f.state
}

// Submit dispatches on the fee. Free events register directly; paid events
// create an order and wait for a payment event. Any non-success answer is a
// FAILED transition carrying the collaborator's message verbatim; nothing
// is retried automatically.
func (f *Flow) Submit(ctx context.Context, session *models.Session, event models.Event) State {
	if f.state != StateOpen {
		return f.state
	}
	f.state = StateSubmitting

	if event.RegistrationFees == 0 {
		if err := f.registry.Register(ctx, session.UserID, event.EventID); err != nil {
			f.fail(err.Error())
			return f.state
		}
		f.state = StateSuccess
		return f.state
	}

	order, err := f.orders.CreateOrder(ctx, session.UserID, event.EventID, event.RegistrationFees)
	if err != nil {
		f.fail(err.Error())
		return f.state
	}
	f.order = order
	// Stay in SUBMITTING until the payment widget reports back.
	return f.state
}

// PaymentSucceeded is the one-shot success event from the payment widget.
// The gateway's answer still has to be verified server-side before the
// attempt counts as registered.
func (f *Flow) PaymentSucceeded(ctx context.Context, paymentID, signature string) State {
	if f.state != StateSubmitting || f.order == nil {
		return f.state
	}
	if err := f.verifier.VerifyAndRegister(ctx, f.order.OrderID, paymentID, signature); err != nil {
		f.fail(err.Error())
		return f.state
	}
	f.state = StateSuccess
	return f.state
}

// PaymentFailed is the one-shot failure/cancellation event from the widget.
func (f *Flow) PaymentFailed(reason string) State {
	if f.state != StateSubmitting {
		return f.state
	}
	f.fail(reason)
	return f.state
}

// Retry returns a failed attempt to the open state. Only generic failures
// are retryable; duplicate conflicts and the other terminal states stay put.
func (f *Flow) Retry() State {
	if f.state == StateFailed && !f.IsDuplicate() {
		f.state = StateOpen
		f.message = ""
		f.order = nil
	}
	return f.state
}

func (f *Flow) fail(message string) {
	f.state = StateFailed
	f.message = message
	f.order = nil
}
