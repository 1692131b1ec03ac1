package datasource

import (
	"encoding/json"

	"github.com/tinytelemetry/hackboard/internal/model"
)

// Encode renders doc in the JSON wire shape, defaults included.
func Encode(doc *model.Document) ([]byte, error) {
	h, m, s := doc.Timer.Hours, doc.Timer.Minutes, doc.Timer.Seconds
	out := document{
		Hackathon: &hackathonDoc{
			Title:    doc.Event.Title,
			Subtitle: doc.Event.Subtitle,
			Tagline:  doc.Event.Tagline,
			Dates:    make([]dateDoc, 0, len(doc.Event.Dates)),
		},
		Timer: &timerDoc{InitialHours: &h, InitialMinutes: &m, InitialSeconds: &s},
		Teams: make([]teamDoc, 0, len(doc.Teams)),
	}
	for _, d := range doc.Event.Dates {
		out.Hackathon.Dates = append(out.Hackathon.Dates, dateDoc{Value: d.Value, Label: d.Label})
	}
	for _, t := range doc.Teams {
		out.Teams = append(out.Teams, teamDoc{ID: t.ID, Name: t.Name, Date: t.Date})
	}
	return json.MarshalIndent(out, "", "  ")
}
