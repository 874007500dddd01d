package calendar

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showcall/showcall-backend/internal/models"
)

func sampleEvent() models.CalendarEvent {
	return models.CalendarEvent{
		ID:           uuid.New(),
		EventTitle:   "Corporate Gala",
		StartDate:    time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		StartTime:    "19:30",
		EndTime:      "23:00",
		Status:       models.StatusBooked,
		VenueName:    "Grand Hall",
		LocationCity: "Austin",
	}
}

func TestWriteICS(t *testing.T) {
	ev := sampleEvent()
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, []models.CalendarEvent{ev}, fixedNow))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Contains(t, out, "UID:"+ev.ID.String()+"@showcall\r\n")
	assert.Contains(t, out, "DTSTART:20260314T193000\r\n")
	assert.Contains(t, out, "DTEND:20260314T230000\r\n")
	assert.Contains(t, out, "SUMMARY:Corporate Gala\r\n")
	assert.Contains(t, out, "STATUS:CONFIRMED\r\n")
	// no bare LF lines
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")
}

func TestWriteICSAllDayEndIsExclusive(t *testing.T) {
	ev := sampleEvent()
	ev.AllDay = true
	ev.StartTime = ""
	ev.EndTime = ""

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, []models.CalendarEvent{ev}, fixedNow))
	out := buf.String()

	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260314\r\n")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20260315\r\n")
}

func TestWriteICSEscapesText(t *testing.T) {
	ev := sampleEvent()
	ev.EventTitle = "Dinner, drinks; show"
	ev.NotesPublic = "line one\nline two"

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, []models.CalendarEvent{ev}, fixedNow))
	out := buf.String()

	assert.Contains(t, out, `SUMMARY:Dinner\, drinks\; show`)
	assert.Contains(t, out, `DESCRIPTION:line one\nline two`)
}

func TestWriteICSStatusMapping(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{models.StatusBooked, "CONFIRMED"},
		{models.StatusAvailable, "CONFIRMED"},
		{models.StatusCancelled, "CANCELLED"},
		{models.StatusNotAvailable, "CANCELLED"},
		{models.StatusHold, "TENTATIVE"},
		{models.StatusTentative, "TENTATIVE"},
	}
	for _, tt := range tests {
		ev := sampleEvent()
		ev.Status = tt.status
		var buf bytes.Buffer
		require.NoError(t, WriteICS(&buf, []models.CalendarEvent{ev}, fixedNow))
		assert.Contains(t, buf.String(), "STATUS:"+tt.want+"\r\n", "status %s", tt.status)
	}
}

func TestWriteCSV(t *testing.T) {
	ev := sampleEvent()
	ev.NotesPublic = `quoted "notes", with comma`

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.CalendarEvent{ev}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "event_title", rows[0][0])
	assert.Equal(t, "Corporate Gala", rows[1][0])
	assert.Equal(t, "2026-03-14", rows[1][1])
	assert.Equal(t, models.StatusBooked, rows[1][6])
	assert.Equal(t, `quoted "notes", with comma`, rows[1][11])
}
