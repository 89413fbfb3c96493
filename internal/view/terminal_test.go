package view

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-column-rules/internal/columns"
	"go-column-rules/internal/model"
)

type scriptedPrompter struct {
	answers  []string
	messages []string
}

func (p *scriptedPrompter) Input(_ context.Context, message, _ string) (string, error) {
	p.messages = append(p.messages, message)
	if len(p.answers) == 0 {
		return "", ErrInterrupted
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func TestTerminalFormFields(t *testing.T) {
	layout := columns.Fields(model.ColumnSet{
		Numeric:     []string{"age"},
		Categorical: []string{"region"},
	})
	p := &scriptedPrompter{answers: []string{"10", " ", "north, south,"}}
	term := NewTerminal(layout, nil, p, &bytes.Buffer{})

	fields, err := term.FormFields(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.FormField{
		{Key: "age_floor", Value: "10"},
		{Key: "age_ceil", Value: ""},
		{Key: "region_category", Value: "north"},
		{Key: "region_category", Value: "south"},
	}, fields)
	assert.Equal(t, []string{"age (floor)", "age (ceil)", "region (category)"}, p.messages)
}

func TestTerminalFormFieldsInterrupted(t *testing.T) {
	layout := columns.Fields(model.ColumnSet{Numeric: []string{"age"}})
	term := NewTerminal(layout, nil, &scriptedPrompter{}, &bytes.Buffer{})

	_, err := term.FormFields(context.Background())
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestTerminalPrintsStateChanges(t *testing.T) {
	var out bytes.Buffer
	p := &scriptedPrompter{answers: []string{"http://example.test/data.csv"}}
	term := NewTerminal(nil, nil, p, &out)

	assert.Equal(t, "http://example.test/data.csv", term.Value(InputDatasetURL))
	assert.Equal(t, "http://example.test/data.csv", term.Value(InputDatasetURL))
	assert.Len(t, p.messages, 1)

	term.SetText(RegionDatasetInfo, "Retrieving")
	term.Alert("careful")
	term.Navigate(PathNext)

	assert.Equal(t, "Retrieving\n! careful\n-> /next\n", out.String())
	assert.Equal(t, []string{PathNext}, term.Navigations())
}
