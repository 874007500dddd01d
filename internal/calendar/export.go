package calendar

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/showcall/showcall-backend/internal/models"
)

const icsProdID = "-//Showcall//Booking Calendar//EN"

// WriteICS renders events as an iCalendar document. Field formatting follows
// RFC 5545: CRLF line endings and escaped text values, so existing calendar
// apps can import the file.
func WriteICS(w io.Writer, events []models.CalendarEvent, now time.Time) error {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:" + icsProdID)
	line("CALSCALE:GREGORIAN")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, ev := range events {
		line("BEGIN:VEVENT")
		line("UID:" + ev.ID.String() + "@showcall")
		line("DTSTAMP:" + stamp)

		if ev.AllDay || ev.StartTime == "" {
			// all-day DTEND is exclusive
			line("DTSTART;VALUE=DATE:" + ev.StartDate.Format("20060102"))
			line("DTEND;VALUE=DATE:" + ev.EndDate.AddDate(0, 0, 1).Format("20060102"))
		} else {
			line("DTSTART:" + ev.StartDate.Format("20060102") + "T" + compactTime(ev.StartTime) + "00")
			endTime := ev.EndTime
			if endTime == "" {
				endTime = ev.StartTime
			}
			line("DTEND:" + ev.EndDate.Format("20060102") + "T" + compactTime(endTime) + "00")
		}

		line("SUMMARY:" + escapeICS(ev.EventTitle))
		if loc := eventLocation(ev); loc != "" {
			line("LOCATION:" + escapeICS(loc))
		}
		if ev.NotesPublic != "" {
			line("DESCRIPTION:" + escapeICS(ev.NotesPublic))
		}
		if ev.URL != "" {
			line("URL:" + ev.URL)
		}
		line("STATUS:" + icsStatus(ev.Status))
		line("END:VEVENT")
	}

	line("END:VCALENDAR")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV renders events as RFC 4180 CSV with a header row.
func WriteCSV(w io.Writer, events []models.CalendarEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"event_title", "start_date", "end_date", "start_time", "end_time",
		"all_day", "status", "venue_name", "city", "state", "country",
		"notes", "url",
	}); err != nil {
		return err
	}

	for _, ev := range events {
		rec := []string{
			ev.EventTitle,
			ev.StartDate.Format("2006-01-02"),
			ev.EndDate.Format("2006-01-02"),
			ev.StartTime,
			ev.EndTime,
			fmt.Sprintf("%t", ev.AllDay),
			ev.Status,
			ev.VenueName,
			ev.LocationCity,
			ev.LocationState,
			ev.LocationCountry,
			ev.NotesPublic,
			ev.URL,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func eventLocation(ev models.CalendarEvent) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{ev.VenueName, ev.LocationCity, ev.LocationState, ev.LocationCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func icsStatus(status string) string {
	switch status {
	case models.StatusBooked, models.StatusAvailable:
		return "CONFIRMED"
	case models.StatusCancelled, models.StatusNotAvailable:
		return "CANCELLED"
	default:
		return "TENTATIVE"
	}
}

// escapeICS escapes backslash, semicolon, comma and newlines per RFC 5545.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// compactTime turns "15:04" into "1504".
func compactTime(t string) string {
	return strings.ReplaceAll(t, ":", "")
}
