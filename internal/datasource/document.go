package datasource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/hackboard/internal/model"
)

var (
	// ErrLoad marks transport failures and non-success responses.
	ErrLoad = errors.New("datasource: load failed")
	// ErrMalformed marks documents that decode but cannot drive a session.
	ErrMalformed = errors.New("datasource: malformed document")
)

// Format selects the document decoder.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// The wire shape of the data source. Pointers distinguish absent from zero.
type document struct {
	Hackathon *hackathonDoc `json:"hackathon" yaml:"hackathon"`
	Timer     *timerDoc     `json:"timer" yaml:"timer"`
	Teams     []teamDoc     `json:"teams" yaml:"teams"`
}

type hackathonDoc struct {
	Title    string    `json:"title" yaml:"title"`
	Subtitle string    `json:"subtitle" yaml:"subtitle"`
	Tagline  string    `json:"tagline" yaml:"tagline"`
	Dates    []dateDoc `json:"dates" yaml:"dates"`
}

type dateDoc struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type timerDoc struct {
	InitialHours   *int `json:"initialHours" yaml:"initialHours"`
	InitialMinutes *int `json:"initialMinutes" yaml:"initialMinutes"`
	InitialSeconds *int `json:"initialSeconds" yaml:"initialSeconds"`
}

type teamDoc struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Date string `json:"date" yaml:"date"`
}

// Decode parses raw bytes into a Document, filling defaults for the event
// block and rejecting documents without a usable timer.
func Decode(data []byte, format Format) (*model.Document, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: trailing data after document", ErrMalformed)
		}
	}
	return doc.toModel()
}

func (d document) toModel() (*model.Document, error) {
	timer, err := d.Timer.toModel()
	if err != nil {
		return nil, err
	}

	teams := make([]model.Team, 0, len(d.Teams))
	seen := make(map[int]bool, len(d.Teams))
	for _, t := range d.Teams {
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: duplicate team id %d", ErrMalformed, t.ID)
		}
		seen[t.ID] = true
		teams = append(teams, model.Team{
			ID:   t.ID,
			Name: strings.TrimSpace(t.Name),
			Date: strings.TrimSpace(t.Date),
		})
	}

	return &model.Document{
		Event: d.Hackathon.toModel(),
		Timer: timer,
		Teams: teams,
	}, nil
}

func (t *timerDoc) toModel() (model.TimerSpec, error) {
	if t == nil {
		return model.TimerSpec{}, fmt.Errorf("%w: missing timer", ErrMalformed)
	}
	if t.InitialHours == nil || t.InitialMinutes == nil || t.InitialSeconds == nil {
		return model.TimerSpec{}, fmt.Errorf("%w: timer needs initialHours, initialMinutes and initialSeconds", ErrMalformed)
	}
	ts := model.TimerSpec{
		Hours:   *t.InitialHours,
		Minutes: *t.InitialMinutes,
		Seconds: *t.InitialSeconds,
	}
	if err := ts.Validate(); err != nil {
		return model.TimerSpec{}, fmt.Errorf("%w: timer: %v", ErrMalformed, err)
	}
	return ts, nil
}

func (h *hackathonDoc) toModel() model.EventInfo {
	info := model.DefaultEventInfo()
	if h == nil {
		return info
	}
	if h.Title != "" {
		info.Title = h.Title
	}
	if h.Subtitle != "" {
		info.Subtitle = h.Subtitle
	}
	if h.Tagline != "" {
		info.Tagline = h.Tagline
	}

	var dates []model.DateOption
	for _, d := range h.Dates {
		value := strings.TrimSpace(d.Value)
		if value == "" {
			continue
		}
		label := d.Label
		if label == "" {
			label = value
		}
		dates = append(dates, model.DateOption{Value: value, Label: label})
	}
	if len(dates) > 0 {
		info.Dates = dates
	}
	return info
}
