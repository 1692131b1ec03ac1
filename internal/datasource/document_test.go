package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/hackboard/internal/model"
)

func TestDecodeFullDocument(t *testing.T) {
	raw := `{
		"hackathon": {
			"title": "Code Sprint",
			"subtitle": "Main Campus",
			"tagline": "Build things",
			"dates": [{"value": "1/9/25", "label": "Day 1"}, {"value": "2/9/25"}]
		},
		"timer": {"initialHours": 12, "initialMinutes": 30, "initialSeconds": 5},
		"teams": [{"id": 1, "name": " A ", "date": "1"}, {"id": 2, "name": "B", "date": "2"}]
	}`

	doc, err := Decode([]byte(raw), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "Code Sprint", doc.Event.Title)
	assert.Equal(t, "Main Campus", doc.Event.Subtitle)
	assert.Equal(t, "Build things", doc.Event.Tagline)
	assert.Equal(t, []model.DateOption{{Value: "1/9/25", Label: "Day 1"}, {Value: "2/9/25", Label: "2/9/25"}}, doc.Event.Dates)
	assert.Equal(t, model.TimerSpec{Hours: 12, Minutes: 30, Seconds: 5}, doc.Timer)
	assert.Equal(t, []model.Team{{ID: 1, Name: "A", Date: "1"}, {ID: 2, Name: "B", Date: "2"}}, doc.Teams)
}

func TestDecodeDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no hackathon block", raw: `{"timer": {"initialHours": 1, "initialMinutes": 0, "initialSeconds": 0}}`},
		{name: "empty dates", raw: `{"hackathon": {"dates": []}, "timer": {"initialHours": 1, "initialMinutes": 0, "initialSeconds": 0}}`},
		{name: "blank date values", raw: `{"hackathon": {"dates": [{"value": " "}]}, "timer": {"initialHours": 1, "initialMinutes": 0, "initialSeconds": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.raw), FormatJSON)
			require.NoError(t, err)
			assert.Equal(t, model.DefaultDates(), doc.Event.Dates)
			assert.Equal(t, model.DefaultEventInfo().Title, doc.Event.Title)
			assert.NotNil(t, doc.Teams)
			assert.Empty(t, doc.Teams)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `<html>`},
		{name: "missing timer", raw: `{"teams": []}`},
		{name: "missing seconds", raw: `{"timer": {"initialHours": 1, "initialMinutes": 0}}`},
		{name: "negative hours", raw: `{"timer": {"initialHours": -1, "initialMinutes": 0, "initialSeconds": 0}}`},
		{name: "minutes out of range", raw: `{"timer": {"initialHours": 1, "initialMinutes": 60, "initialSeconds": 0}}`},
		{name: "seconds out of range", raw: `{"timer": {"initialHours": 1, "initialMinutes": 0, "initialSeconds": 75}}`},
		{name: "duplicate team id", raw: `{"timer": {"initialHours": 1, "initialMinutes": 0, "initialSeconds": 0}, "teams": [{"id": 1}, {"id": 1}]}`},
		{name: "trailing garbage", raw: `{"timer": {"initialHours": 1, "initialMinutes": 0, "initialSeconds": 0}, "teams": []} this is not json`},
		{name: "second document", raw: `{"timer": {"initialHours": 1, "initialMinutes": 0, "initialSeconds": 0}} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw), FormatJSON)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeAllowsTrailingWhitespace(t *testing.T) {
	raw := "{\"timer\": {\"initialHours\": 1, \"initialMinutes\": 0, \"initialSeconds\": 0}}\n\t \n"
	doc, err := Decode([]byte(raw), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, model.TimerSpec{Hours: 1}, doc.Timer)
}

func TestDecodeYAML(t *testing.T) {
	raw := `
hackathon:
  title: YAML Jam
timer:
  initialHours: 0
  initialMinutes: 45
  initialSeconds: 0
teams:
  - id: 7
    name: Yamlers
    date: "25"
`
	doc, err := Decode([]byte(raw), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "YAML Jam", doc.Event.Title)
	assert.Equal(t, model.DefaultDates(), doc.Event.Dates)
	assert.Equal(t, model.TimerSpec{Minutes: 45}, doc.Timer)
	assert.Equal(t, []model.Team{{ID: 7, Name: "Yamlers", Date: "25"}}, doc.Teams)
}

func TestEncodeRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	doc, err := BuiltinLoader{}.Load(ctx)
	require.NoError(t, err)

	data, err := Encode(doc)
	require.NoError(t, err)

	again, err := Decode(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}
