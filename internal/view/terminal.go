package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"go-column-rules/internal/model"
)

// ErrInterrupted is returned when the user aborts a prompt.
var ErrInterrupted = errors.New("prompt interrupted")

// Prompter asks the user for one line of text.
type Prompter interface {
	Input(ctx context.Context, message, help string) (string, error)
}

type surveyPrompter struct{}

// SurveyPrompter prompts on the controlling terminal.
func SurveyPrompter() Prompter { return surveyPrompter{} }

func (surveyPrompter) Input(ctx context.Context, message, help string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{Message: message, Help: help}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return out, nil
}

// Terminal is a View that asks for form values interactively and prints page
// state changes as text.
type Terminal struct {
	*Recorder

	layout []model.FieldSpec
	prompt Prompter
	out    io.Writer
}

// NewTerminal builds a terminal view for the given form layout. files is the
// dataset selection, if any.
func NewTerminal(layout []model.FieldSpec, files []string, p Prompter, out io.Writer) *Terminal {
	return &Terminal{
		Recorder: NewRecorder(nil, files),
		layout:   layout,
		prompt:   p,
		out:      out,
	}
}

// FormFields prompts for every field of the layout in order. Range inputs
// always yield a field, possibly empty, like an unfilled form input;
// categorical inputs take a comma separated list and yield one field per
// value.
func (t *Terminal) FormFields(ctx context.Context) ([]model.FormField, error) {
	var fields []model.FormField
	for _, input := range t.layout {
		help := ""
		if input.Kind == model.KindCategorical {
			help = "comma separated values to exclude"
		}
		answer, err := t.prompt.Input(ctx, fmt.Sprintf("%s (%s)", input.Column, input.Suffix), help)
		if err != nil {
			return nil, err
		}

		if input.Kind != model.KindCategorical {
			fields = append(fields, model.FormField{Key: input.Name, Value: strings.TrimSpace(answer)})
			continue
		}
		for _, v := range strings.Split(answer, ",") {
			if v = strings.TrimSpace(v); v != "" {
				fields = append(fields, model.FormField{Key: input.Name, Value: v})
			}
		}
	}
	return fields, nil
}

// Value prompts for a text input the first time it is read.
func (t *Terminal) Value(id string) string {
	if v := t.Recorder.Value(id); v != "" {
		return v
	}
	answer, err := t.prompt.Input(context.Background(), id, "")
	if err != nil {
		return ""
	}
	t.Recorder.mu.Lock()
	t.Recorder.Inputs[id] = answer
	t.Recorder.mu.Unlock()
	return answer
}

func (t *Terminal) SetText(region, text string) {
	t.Recorder.SetText(region, text)
	fmt.Fprintln(t.out, text)
}

func (t *Terminal) Alert(msg string) {
	t.Recorder.Alert(msg)
	fmt.Fprintln(t.out, "! "+msg)
}

func (t *Terminal) Navigate(path string) {
	t.Recorder.Navigate(path)
	fmt.Fprintln(t.out, "-> "+path)
}
