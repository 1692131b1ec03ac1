package httpserver

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/tinytelemetry/hackboard/internal/model"
)

const productID = "-//hackboard//event calendar//EN"

// parseEventDate parses a "D/M/YY" or "D/M/YYYY" option value.
func parseEventDate(value string) (time.Time, error) {
	for _, layout := range []string{"2/1/06", "2/1/2006"} {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// buildCalendar emits one all-day event per selectable date. UIDs are
// derived from the title and date so subscribers see stable events.
func buildCalendar(info model.EventInfo, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText("X-WR-CALNAME", info.Title)

	for _, d := range info.Dates {
		day, err := parseEventDate(d.Value)
		if err != nil {
			continue
		}

		ev := ical.NewEvent()
		uid := uuid.NewSHA1(uuid.NameSpaceURL, []byte(info.Title+"/"+d.Value))
		ev.Props.SetText(ical.PropUID, uid.String())
		ev.Props.Set(dateTimeProp(ical.PropDateTimeStamp, now.UTC()))
		ev.Props.Set(dateProp(ical.PropDateTimeStart, day))
		ev.Props.Set(dateProp(ical.PropDateTimeEnd, day.AddDate(0, 0, 1)))
		ev.Props.SetText(ical.PropSummary, info.Title+" - "+d.Label)
		if info.Subtitle != "" {
			ev.Props.SetText(ical.PropLocation, info.Subtitle)
		}
		if info.Tagline != "" {
			ev.Props.SetText(ical.PropDescription, info.Tagline)
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dateProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.SetDate(t)
	return p
}

func dateTimeProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.SetDateTime(t)
	return p
}
