package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResume(t *testing.T) {
	t.Run("title and company on the date line", func(t *testing.T) {
		text := `Software Engineer at Initech    Jan 2019 - Mar 2021
- Built internal billing tools
- Led migration to managed databases

Senior Engineer at Globex    Apr 2021 - Present
* Owns the payments platform`

		entries, err := ParseResume(text)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		first := entries[0]
		assert.Equal(t, "Software Engineer", first.Title)
		assert.Equal(t, "Initech", first.Company)
		assert.Equal(t, "01/2019", first.StartDate)
		assert.Equal(t, []string{
			"Built internal billing tools",
			"Led migration to managed databases",
		}, first.Responsibilities)

		second := entries[1]
		assert.Equal(t, "Senior Engineer", second.Title)
		assert.Equal(t, "Globex", second.Company)
		assert.Equal(t, "04/2021", second.StartDate)
		assert.Equal(t, []string{"Owns the payments platform"}, second.Responsibilities)
	})

	t.Run("company on the following bare line", func(t *testing.T) {
		text := `Data Analyst   06/2018 - 09/2020
Acme Corp
- Weekly KPI reporting`

		entries, err := ParseResume(text)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Data Analyst", entries[0].Title)
		assert.Equal(t, "Acme Corp", entries[0].Company)
		assert.Equal(t, "06/2018", entries[0].StartDate)
	})

	t.Run("comma and dash separated headers", func(t *testing.T) {
		entries, err := ParseResume("Product Manager, Hooli\tSep 2017 to Dec 2018")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Product Manager", entries[0].Title)
		assert.Equal(t, "Hooli", entries[0].Company)
		assert.Equal(t, "09/2017", entries[0].StartDate)
	})

	t.Run("bullets before any entry are ignored", func(t *testing.T) {
		text := `- stray bullet
Engineer at Stark    Feb 2020 - Present`

		entries, err := ParseResume(text)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Empty(t, entries[0].Responsibilities)
	})

	t.Run("unparseable text is an error not an empty result", func(t *testing.T) {
		_, err := ParseResume("just some prose with no dates at all")
		assert.Error(t, err)
	})

	t.Run("empty input is an error", func(t *testing.T) {
		_, err := ParseResume("")
		assert.Error(t, err)
	})
}

func TestNormalizeDateToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jan 2019", "01/2019"},
		{"January 2019", "01/2019"},
		{"sep 2020", "09/2020"},
		{"Sept. 2020", "09/2020"},
		{"3/2021", "03/2021"},
		{"11/2021", "11/2021"},
		{"nonsense", "nonsense"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDateToken(tt.in))
		})
	}
}

func TestJobEntryTimelineEvent(t *testing.T) {
	t.Run("formats title, company and bullets", func(t *testing.T) {
		entry := JobEntry{
			Title:            "Engineer",
			Company:          "Initech",
			StartDate:        "01/2019",
			Responsibilities: []string{"did a thing"},
		}

		event, err := entry.TimelineEvent()
		require.NoError(t, err)
		assert.Equal(t, "01/2019", event.MonthYear().String())
		assert.Equal(t, "**Engineer** at Initech\n• did a thing", event.ProfessionalEvent())
	})

	t.Run("bad start date falls back to the current month", func(t *testing.T) {
		entry := JobEntry{Title: "Engineer", StartDate: "unknown"}

		event, err := entry.TimelineEvent()
		require.NoError(t, err)
		assert.False(t, event.MonthYear().IsZero())
	})
}
