package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"health-tracker-backend/models"
)

// EntityExtractor pulls candidate field values out of an utterance. Numeric
// and date fields are pattern-matched anywhere in the text; free-text fields
// are only ever captured when that exact field was just asked for. Guessing
// names out of unrelated text is the documented source of fabricated
// records, so that rule is hard.
type EntityExtractor struct {
	now func() time.Time
}

// NewEntityExtractor builds an extractor using the wall clock.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{now: time.Now}
}

var (
	severityRe    = regexp.MustCompile(`\b([0-9]|10)\s*(?:/|out of)\s*10\b|\b([1-9]|10)\b`)
	durationRe    = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(minutes?|mins?|hours?|hrs?|days?|weeks?)\b`)
	dosageRe      = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(mg|ml|g|mcg|units?|drops?|puffs?)\b`)
	isoDateRe     = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	clockTimeRe   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	meridiemRe    = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	freeTextAsked = map[string]bool{
		models.FieldName:       true,
		models.FieldLocation:   true,
		models.FieldDoctorName: true,
		models.FieldReason:     true,
		models.FieldFrequency:  true,
		models.FieldTriggers:   true,
		models.FieldDesc:       true,
	}
)

// Extract returns best-effort values keyed by field name. askedField is the
// field the previous prompt requested, empty on an opening utterance.
func (e *EntityExtractor) Extract(text, askedField string, recordType models.RecordType) map[string]string {
	found := make(map[string]string)
	normalized := Normalize(text)

	if recordType == models.RecordSymptom {
		remaining := normalized
		if hours, ok := e.duration(normalized); ok {
			found[models.FieldDuration] = hours
			// Keep the duration's number from reading as a severity.
			remaining = durationRe.ReplaceAllString(normalized, " ")
		} else if askedField == models.FieldDuration {
			if n, err := strconv.ParseFloat(strings.TrimSpace(normalized), 64); err == nil && n > 0 {
				found[models.FieldDuration] = strconv.FormatFloat(n, 'f', -1, 64)
				remaining = ""
			}
		}
		if sev, ok := e.severity(remaining); ok {
			found[models.FieldSeverity] = strconv.Itoa(sev)
		}
		if name, ok := e.symptomName(normalized); ok {
			found[models.FieldName] = name
		}
	}

	// Dates and clock times carry "-" and ":", which normalization strips,
	// so those patterns run on the lowercased raw text instead.
	lower := strings.ToLower(text)

	if recordType == models.RecordTreatment {
		if m := dosageRe.FindStringSubmatch(normalized); m != nil {
			found[models.FieldDosage] = m[1] + " " + m[2]
		}
		if askedField == models.FieldStartDate {
			if d, ok := e.date(lower, normalized); ok {
				found[models.FieldStartDate] = d
			}
		}
	}

	if recordType == models.RecordAppointment {
		if ts, ok := e.dateTime(lower, normalized); ok {
			found[models.FieldDateTime] = ts
		}
	}

	// Free-text answers only count when the question asked for them.
	if freeTextAsked[askedField] {
		if _, taken := found[askedField]; !taken {
			if v := e.answerText(text); v != "" {
				found[askedField] = v
			}
		}
	}

	return found
}

// Confirmation classifies a reply as yes, no or unclear. Negative phrases
// are checked first so "that's not right" never reads as agreement.
func (e *EntityExtractor) Confirmation(text string) models.ConfirmState {
	normalized := Normalize(text)
	for _, phrase := range NegativePhrases() {
		if ContainsPhrase(normalized, phrase) {
			return models.ConfirmNo
		}
	}
	for _, phrase := range AffirmativePhrases() {
		if ContainsPhrase(normalized, phrase) {
			return models.ConfirmYes
		}
	}
	return models.ConfirmUnclear
}

func (e *EntityExtractor) severity(normalized string) (int, bool) {
	if m := severityRe.FindStringSubmatch(normalized); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		if n, err := strconv.Atoi(digits); err == nil && n >= 1 && n <= 10 {
			return n, true
		}
	}
	for _, word := range strings.Fields(normalized) {
		if n, ok := SeverityWord(word); ok {
			return n, true
		}
	}
	return 0, false
}

func (e *EntityExtractor) symptomName(normalized string) (string, bool) {
	best := ""
	for _, name := range SymptomNames() {
		if ContainsPhrase(normalized, name) && len(name) > len(best) {
			best = name
		}
	}
	return best, best != ""
}

func (e *EntityExtractor) duration(normalized string) (string, bool) {
	m := durationRe.FindStringSubmatch(normalized)
	if m == nil {
		return "", false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", false
	}
	mult, ok := DurationUnit(m[2])
	if !ok {
		return "", false
	}
	return strconv.FormatFloat(n*mult, 'f', -1, 64), true
}

func (e *EntityExtractor) date(lower, normalized string) (string, bool) {
	if m := isoDateRe.FindStringSubmatch(lower); m != nil {
		return m[1], true
	}
	switch {
	case ContainsPhrase(normalized, "today"):
		return e.now().Format("2006-01-02"), true
	case ContainsPhrase(normalized, "yesterday"):
		return e.now().AddDate(0, 0, -1).Format("2006-01-02"), true
	case ContainsPhrase(normalized, "tomorrow"):
		return e.now().AddDate(0, 0, 1).Format("2006-01-02"), true
	}
	return "", false
}

func (e *EntityExtractor) dateTime(lower, normalized string) (string, bool) {
	day, ok := e.date(lower, normalized)
	if !ok {
		return "", false
	}
	hour, minute := 9, 0
	if m := clockTimeRe.FindStringSubmatch(lower); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
	} else if m := meridiemRe.FindStringSubmatch(normalized); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if m[2] == "pm" && hour < 12 {
			hour += 12
		}
		if m[2] == "am" && hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%s %02d:%02d", day, hour, minute), true
}

// answerText trims conversational filler from the edges of a direct answer
// and returns what remains, preserving the user's own wording.
func (e *EntityExtractor) answerText(text string) string {
	tokens := strings.Fields(strings.TrimFunc(text, func(r rune) bool {
		return r == '.' || r == ',' || r == '!' || r == '?'
	}))
	start, end := 0, len(tokens)
	for start < end && IsFiller(tokens[start]) {
		start++
	}
	for end > start && IsFiller(tokens[end-1]) {
		end--
	}
	return strings.Join(tokens[start:end], " ")
}
