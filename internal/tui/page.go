package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/flesch/internal/form"
)

// inputField is the text input the controller reads from.
type inputField struct {
	model textinput.Model
}

func newInputField() *inputField {
	ti := textinput.New()
	ti.Placeholder = "Paste or type text to score..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(ColorText)
	return &inputField{model: ti}
}

// Value implements form.Field.
func (f *inputField) Value() string {
	return f.model.Value()
}

// textDisplay is a result element on the page.
type textDisplay struct {
	label string
	text  string
	set   bool
}

// SetText implements form.Display.
func (d *textDisplay) SetText(text string) {
	d.text = text
	d.set = true
}

// Text returns the current text of the element.
func (d *textDisplay) Text() string {
	return d.text
}

func (d *textDisplay) render() string {
	value := DisplayEmptyStyle.Render("-")
	if d.set && d.text != "" {
		value = DisplayValueStyle.Render(d.text)
	}
	return DisplayBoxStyle.Render(
		DisplayLabelStyle.Render(d.label) + "\n\n" + value,
	)
}

// page holds the form elements and the handlers bound to them.
type page struct {
	input *inputField
	grade *textDisplay
	score *textDisplay

	submit func(e *form.SubmitEvent)
	click  func(ctx context.Context) (form.Task, bool)
}

func newPage() *page {
	return &page{
		input: newInputField(),
		grade: &textDisplay{label: "Grade level"},
		score: &textDisplay{label: "Reading ease"},
	}
}

// OnSubmit implements form.Binder.
func (p *page) OnSubmit(handler func(e *form.SubmitEvent)) {
	p.submit = handler
}

// OnClick implements form.Binder.
func (p *page) OnClick(handler func(ctx context.Context) (form.Task, bool)) {
	p.click = handler
}

// fireSubmit dispatches a submit event and reports whether the default
// action should run.
func (p *page) fireSubmit() bool {
	e := &form.SubmitEvent{}
	if p.submit != nil {
		p.submit(e)
	}
	return !e.DefaultPrevented()
}

// fireClick dispatches a click on the Score button.
func (p *page) fireClick(ctx context.Context) (form.Task, bool) {
	if p.click == nil {
		return nil, false
	}
	return p.click(ctx)
}

// reset is the form's default submit action: clear the input and the
// displays.
func (p *page) reset() {
	p.input.model.Reset()
	p.grade.text, p.grade.set = "", false
	p.score.text, p.score.set = "", false
}
