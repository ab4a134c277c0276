// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"time"
)

// Icon is the symbol that introduces a temporal annotation in task text.
type Icon string

const (
	// DeadlineIcon tags the date a task is due.
	DeadlineIcon Icon = "📅"
	// CompletedIcon tags the date a task was finished.
	CompletedIcon Icon = "✅"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// annotationForm is one accepted shape of an annotation: a pattern to find
// the literal and a layout to parse the literal with.
type annotationForm struct {
	re     *regexp.Regexp
	layout string
}

// patterns holds the date-time form before the date-only form for each icon.
var patterns = map[Icon][]annotationForm{
	DeadlineIcon:  formsFor(DeadlineIcon),
	CompletedIcon: formsFor(CompletedIcon),
}

func formsFor(icon Icon) []annotationForm {
	// Any Unicode decimal digit matches; non-ASCII digits then fail to parse.
	prefix := regexp.QuoteMeta(string(icon)) + ` *`
	return []annotationForm{
		{re: regexp.MustCompile(prefix + `\p{Nd}{4}-\p{Nd}{2}-\p{Nd}{2} \p{Nd}{2}:\p{Nd}{2}:\p{Nd}{2}`), layout: dateTimeLayout},
		{re: regexp.MustCompile(prefix + `\p{Nd}{4}-\p{Nd}{2}-\p{Nd}{2}`), layout: dateLayout},
	}
}

// ParseAnnotation looks for the first icon-tagged date-time, then the first
// icon-tagged date, in text. On success it returns the parsed time (midnight
// for a bare date) and text with every copy of the matched substring
// removed. When neither form yields a valid calendar value it returns
// ok == false and text unchanged.
func ParseAnnotation(text string, icon Icon) (ts time.Time, rest string, ok bool) {
	forms, known := patterns[icon]
	if !known {
		forms = formsFor(icon)
	}
	for _, f := range forms {
		if t, r, matched := f.apply(text, icon); matched {
			return t, r, true
		}
	}
	return time.Time{}, text, false
}

// apply only ever considers the first match; a malformed first occurrence is
// not retried further along the text.
func (f annotationForm) apply(text string, icon Icon) (time.Time, string, bool) {
	match := f.re.FindString(text)
	if match == "" {
		return time.Time{}, text, false
	}
	literal := strings.TrimSpace(strings.TrimPrefix(match, string(icon)))
	ts, err := parseLiteral(f.layout, literal)
	if err != nil {
		return time.Time{}, text, false
	}
	// ReplaceAll, not a positional cut: identical copies elsewhere in the
	// text go too.
	return ts, strings.ReplaceAll(text, match, ""), true
}

// parseLiteral is time.Parse that also accepts a leap second (":60"). Go
// times cannot hold one, so it becomes the last instant of that minute.
func parseLiteral(layout, literal string) (time.Time, error) {
	if layout != dateTimeLayout || !strings.HasSuffix(literal, ":60") {
		return time.Parse(layout, literal)
	}
	ts, err := time.Parse(layout, strings.TrimSuffix(literal, "60")+"59")
	if err != nil {
		return time.Time{}, err
	}
	return ts.Add(time.Second - time.Nanosecond), nil
}
