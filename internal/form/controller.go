// Package form implements the read, request, render cycle of the scoring
// form: it reads the input field, posts non-empty text to the scoring
// endpoint and writes the returned grade and score into two displays.
package form

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/f3rmion/flesch/internal/logging"
	"github.com/f3rmion/flesch/internal/scoring"
)

// Field is the user-editable text input.
type Field interface {
	Value() string
}

// Display is an element whose text is set from a result.
type Display interface {
	SetText(text string)
}

// Scorer computes a readability result for a text.
type Scorer interface {
	Score(ctx context.Context, text string) (scoring.Result, error)
}

// SubmitEvent is fired when the form is submitted.
type SubmitEvent struct {
	defaultPrevented bool
}

// PreventDefault cancels the event's default action.
func (e *SubmitEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *SubmitEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Task performs one scoring request. It blocks until the response arrives
// or the request fails.
type Task func() Completion

// Binder is the host page: it delivers submit and click events to the
// handlers registered on it.
type Binder interface {
	OnSubmit(handler func(e *SubmitEvent))
	OnClick(handler func(ctx context.Context) (Task, bool))
}

// Controller ties the input field and the two displays to a Scorer.
// Create one per page.
type Controller struct {
	input  Field
	grade  Display
	score  Display
	scorer Scorer
	logger *slog.Logger

	pending atomic.Int64
	seq     atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController creates a controller for the given elements.
func NewController(input Field, grade, score Display, scorer Scorer, opts ...Option) *Controller {
	c := &Controller{
		input:  input,
		grade:  grade,
		score:  score,
		scorer: scorer,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadInputText returns the current input value. ok is false exactly when
// the value is the empty string; whitespace counts as text.
func (c *Controller) ReadInputText() (text string, ok bool) {
	text = c.input.Value()
	if text == "" {
		return "", false
	}
	return text, true
}

// SubmitForScore posts text to the scorer and waits for the answer. The
// displays are not touched until the returned Completion is applied.
func (c *Controller) SubmitForScore(ctx context.Context, text string) Completion {
	c.pending.Add(1)
	return c.submit(ctx, text)
}

func (c *Controller) submit(ctx context.Context, text string) Completion {
	seq := c.seq.Add(1)
	id := scoring.RequestID(ctx)
	ctx = scoring.WithRequestID(ctx, id)

	c.logger.Debug("score request",
		"request_id", id,
		"seq", seq,
		"chars", len(text),
	)

	start := time.Now()
	res, err := c.scorer.Score(ctx, text)

	c.logger.Debug("score response",
		"request_id", id,
		"seq", seq,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err,
	)

	return Completion{
		Seq:       seq,
		RequestID: id,
		Result:    res,
		Err:       err,
		c:         c,
	}
}

// HandleSubmit is the form submit handler. It only suppresses the default
// action.
func (c *Controller) HandleSubmit(e *SubmitEvent) {
	e.PreventDefault()
}

// HandleClick is the button click handler. It returns the request to run
// when the input holds text, and false otherwise. The controller counts as
// awaiting from the click on, so the returned Task must be run.
func (c *Controller) HandleClick(ctx context.Context) (Task, bool) {
	text, ok := c.ReadInputText()
	if !ok {
		return nil, false
	}
	c.pending.Add(1)
	return func() Completion {
		return c.submit(ctx, text)
	}, true
}

// Bind registers the controller's handlers on the page.
func (c *Controller) Bind(b Binder) {
	b.OnSubmit(c.HandleSubmit)
	b.OnClick(c.HandleClick)
}

// Pending returns the number of requests awaiting a response.
func (c *Controller) Pending() int {
	return int(c.pending.Load())
}

// Awaiting reports whether any request is in flight.
func (c *Controller) Awaiting() bool {
	return c.Pending() > 0
}

// Completion is the outcome of one scoring request.
type Completion struct {
	Seq       uint64
	RequestID string
	Result    scoring.Result
	Err       error

	c *Controller
}

// Apply writes a successful result into the displays and marks the request
// as arrived. Failed requests change nothing on the page. Completions are
// applied in arrival order, so the last one applied wins. Apply must be
// called once per Completion. It reports whether any display was written.
func (r Completion) Apply() bool {
	if r.c == nil {
		return false
	}
	r.c.pending.Add(-1)

	if r.Err != nil {
		return false
	}

	wrote := false
	if r.Result.Grade.Present() {
		r.c.grade.SetText(r.Result.Grade.Text())
		wrote = true
	}
	if r.Result.Score.Present() {
		r.c.score.SetText(r.Result.Score.Text())
		wrote = true
	}
	return wrote
}
