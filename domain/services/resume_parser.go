package services

import (
	"regexp"
	"strings"
	"time"

	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	pkgerrors "lifemap-backend/pkg/errors"
)

// JobEntry is one job extracted from pasted resume text
type JobEntry struct {
	Title            string
	Company          string
	StartDate        string
	Responsibilities []string
}

const dateToken = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}`

var (
	dateRangeRe = regexp.MustCompile(`(?i)(` + dateToken + `)\s*(?:-|–|—|\bto\b)\s*(` + dateToken + `|present|current|now)`)
	bulletRe    = regexp.MustCompile(`^[-*•·]\s*`)
	monthNameRe = regexp.MustCompile(`(?i)^([a-z]+)\.?\s+(\d{4})$`)
	numericRe   = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// ParseResume extracts job entries from freeform pasted text. The scan is
// heuristic and order-dependent, line by line: a line containing a date
// range starts a new entry and flushes the previous one, bullet lines
// accumulate as responsibilities, and a bare undated line fills in a
// missing company name. It is best-effort, not exhaustive.
func ParseResume(text string) ([]JobEntry, error) {
	var entries []JobEntry
	var current *JobEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if bulletRe.MatchString(line) {
			if current != nil {
				resp := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
				if resp != "" {
					current.Responsibilities = append(current.Responsibilities, resp)
				}
			}
			continue
		}

		if m := dateRangeRe.FindStringSubmatchIndex(line); m != nil {
			flush()
			header := strings.Trim(line[:m[0]], " \t,;|-–—(")
			title, company := splitJobHeader(header)
			current = &JobEntry{
				Title:     title,
				Company:   company,
				StartDate: NormalizeDateToken(line[m[2]:m[3]]),
			}
			continue
		}

		// A bare line right after a header usually carries the company
		// the header line didn't.
		if current != nil && current.Company == "" {
			current.Company = line
		}
	}
	flush()

	if len(entries) == 0 {
		return nil, pkgerrors.NewValidationError("could not parse any job entries from the pasted text")
	}

	return entries, nil
}

// splitJobHeader splits "Title at Company" style headers on the first
// recognized separator
func splitJobHeader(header string) (title, company string) {
	for _, sep := range []string{" at ", " @ ", ", ", " - ", " – ", " | "} {
		if idx := strings.Index(header, sep); idx >= 0 {
			return strings.TrimSpace(header[:idx]), strings.TrimSpace(header[idx+len(sep):])
		}
	}
	return strings.TrimSpace(header), ""
}

// NormalizeDateToken converts "Mon YYYY" and "M/YYYY" tokens to MM/YYYY.
// Unparseable tokens pass through unchanged.
func NormalizeDateToken(token string) string {
	token = strings.TrimSpace(token)

	if m := monthNameRe.FindStringSubmatch(token); m != nil {
		name := strings.ToLower(m[1])
		if len(name) >= 3 {
			if num, ok := monthNumbers[name[:3]]; ok {
				return num + "/" + m[2]
			}
		}
		return token
	}

	if m := numericRe.FindStringSubmatch(token); m != nil {
		month := m[1]
		if len(month) == 1 {
			month = "0" + month
		}
		return month + "/" + m[2]
	}

	return token
}

// TimelineEvent converts the job entry into a professional timeline event.
// Entries whose start date did not normalize to MM/YYYY fall back to the
// current month so they still land on the timeline.
func (j JobEntry) TimelineEvent() (*entities.TimelineEvent, error) {
	monthYear, err := valueobjects.ParseMonthYear(j.StartDate)
	if err != nil {
		now := time.Now()
		monthYear, _ = valueobjects.NewMonthYear(int(now.Month()), now.Year())
	}

	var b strings.Builder
	b.WriteString("**" + j.Title + "**")
	if j.Company != "" {
		b.WriteString(" at " + j.Company)
	}
	for _, resp := range j.Responsibilities {
		b.WriteString("\n• " + resp)
	}

	return entities.NewTimelineEvent(monthYear, b.String(), "", "")
}
