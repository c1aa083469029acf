package signup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/signup/pkg/vango"
)

// FocusSubmit is the focus target passed to the focus callback.
const FocusSubmit = "submit"

// DefaultFocusDelay is how long the form must stay valid before focus moves
// to the submit button.
const DefaultFocusDelay = 100 * time.Millisecond

// Option configures a Controller.
type Option func(*Controller)

// WithSink sets where valid submissions go. Defaults to LogSink.
func WithSink(s Sink) Option {
	return func(c *Controller) { c.sink = s }
}

// WithFocus sets the callback that moves input focus. It runs on the event
// loop.
func WithFocus(fn func(target string)) Option {
	return func(c *Controller) { c.focus = fn }
}

// WithFocusDelay overrides DefaultFocusDelay.
func WithFocusDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithRules overrides DefaultRules.
func WithRules(r Rules) Option {
	return func(c *Controller) { c.reducer = NewReducer(r) }
}

// WithReducer shares a compiled reducer between controllers.
func WithReducer(r *Reducer) Option {
	return func(c *Controller) { c.reducer = r }
}

// WithCatalog sets the language used by Render. Defaults to Russian.
func WithCatalog(cat *Catalog) Option {
	return func(c *Controller) { c.catalog = cat }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns one mounted form.
type Controller struct {
	ctx     vango.Ctx
	owner   *vango.Owner
	state   *vango.Signal[State]
	reducer *Reducer
	catalog *Catalog

	sink   Sink
	focus  func(target string)
	delay  time.Duration
	logger *slog.Logger
}

// New mounts an empty form on ctx. Call Dispose to unmount it.
func New(ctx vango.Ctx, opts ...Option) *Controller {
	c := &Controller{
		ctx:   ctx,
		owner: vango.NewOwner(nil),
		state: vango.NewSignal(State{}).WithEquals(func(a, b State) bool { return a == b }),
		delay: DefaultFocusDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.reducer == nil {
		c.reducer = defaultReducer
	}
	if c.catalog == nil {
		c.catalog = russian
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.sink == nil {
		c.sink = LogSink(c.logger)
	}

	vango.WithCtx(ctx, func() {
		vango.WithOwner(c.owner, func() {
			vango.CreateEffect(c.scheduleFocus, vango.EffectTxName("signup.focus"))
		})
	})
	return c
}

// scheduleFocus re-runs on every snapshot change. Returning the timer's
// cancel as cleanup keeps at most one focus pending.
func (c *Controller) scheduleFocus() vango.Cleanup {
	if !c.state.Get().Valid() || c.focus == nil {
		return nil
	}
	return vango.Timeout(c.delay, c.fireFocus, vango.TimeoutTxName("signup.focus"))
}

func (c *Controller) fireFocus() {
	if c.owner.IsDisposed() || !c.state.Peek().Valid() {
		return
	}
	c.logger.Debug("signup focus", "target", FocusSubmit)
	c.focus(FocusSubmit)
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return c.state.Peek()
}

// Catalog returns the catalog used by Render.
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// IsFormValid reports whether Submit would reach the sink.
func (c *Controller) IsFormValid() bool {
	return c.state.Peek().Valid()
}

// Handle routes an event to its handler. Submit events are submitted with
// the loop's context.
func (c *Controller) Handle(e Event) error {
	if _, err := ParseEventKind(string(e.Kind)); err != nil {
		return err
	}
	if e.Kind == KindSubmit {
		return c.Submit(c.ctx.StdContext())
	}
	if _, err := ParseField(string(e.Field)); err != nil {
		return err
	}
	c.apply(e)
	return nil
}

func (c *Controller) apply(e Event) {
	if c.owner.IsDisposed() {
		return
	}
	vango.TxNamed("signup."+string(e.Kind), func() {
		c.state.Set(c.reducer.Apply(c.state.Peek(), e))
	})
	vango.WithCtx(c.ctx, c.owner.RunPendingEffects)
}

// OnEmailChange stores the email and checks its length and "..".
func (c *Controller) OnEmailChange(v string) {
	c.apply(Event{Kind: KindChange, Field: FieldEmail, Value: v})
}

// OnEmailBlur checks that v is present and shaped like an email.
func (c *Controller) OnEmailBlur(v string) {
	c.apply(Event{Kind: KindBlur, Field: FieldEmail, Value: v})
}

// OnPasswordChange stores the password, checks it and rescores strength.
func (c *Controller) OnPasswordChange(v string) {
	c.apply(Event{Kind: KindChange, Field: FieldPassword, Value: v})
}

// OnPasswordBlur applies the blur-time length rule.
func (c *Controller) OnPasswordBlur(v string) {
	c.apply(Event{Kind: KindBlur, Field: FieldPassword, Value: v})
}

// OnRepeatPasswordChange stores the confirmation without checking it.
func (c *Controller) OnRepeatPasswordChange(v string) {
	c.apply(Event{Kind: KindChange, Field: FieldRepeatPassword, Value: v})
}

// OnPasswordRepeatBlur compares the confirmation with the password.
func (c *Controller) OnPasswordRepeatBlur(v string) {
	c.apply(Event{Kind: KindBlur, Field: FieldRepeatPassword, Value: v})
}

// Submit hands the form to the sink if it is valid and returns
// ErrFormInvalid otherwise.
func (c *Controller) Submit(ctx context.Context) error {
	s := c.state.Peek()
	if !s.Valid() {
		c.logger.Debug("signup submit rejected", "errors", s.Errors)
		return ErrFormInvalid
	}
	if err := c.sink.Submit(ctx, s.Form); err != nil {
		return fmt.Errorf("signup: sink: %w", err)
	}
	return nil
}

// onSubmit is bound to the form's submit event.
func (c *Controller) onSubmit() {
	if err := c.Submit(c.ctx.StdContext()); err != nil {
		c.logger.Debug("signup submit", "error", err)
	}
}

// Dispose unmounts the form and cancels a pending focus. It is idempotent.
func (c *Controller) Dispose() {
	c.owner.Dispose()
}
