package untis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"substplan/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	substTableSelector    = "table.subst"
	noSubstitutionsMarker = "Keine Vertretungen"
)

var entryRowClass = regexp.MustCompile(`list (odd|even)`)

// Parse extracts the substitutions of every weekday from a plan page.
//
// Every `table.subst` belongs to one weekday. The weekday is taken from the
// text right before the table when it names one that comes after the previous
// table's weekday and still leaves a weekday for every following table.
// Otherwise the table is assumed to follow the previous table's weekday (so the
// N-th unlabelled table of a page is the N-th weekday). A page that skips a
// weekday without labelling its tables therefore shifts every later label.
//
// Days stating "Keine Vertretungen" are dropped. A table that cannot be read
// is skipped and reported as a *ParseError in the returned (joined) error while
// the remaining days are still returned. A page without any substitution table
// returns no days and a *ParseError wrapping ErrNoTables.
func Parse(ctx context.Context, page string) ([]Day, error) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		parseErr := &ParseError{Table: -1, Err: fmt.Errorf("parse html: %w", err)}
		span.RecordError(parseErr)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, parseErr
	}

	tables := doc.Find(substTableSelector)
	span.SetAttributes(attribute.Int("tables", tables.Length()))
	if tables.Length() == 0 {
		parseErr := &ParseError{Table: -1, Err: ErrNoTables}
		span.RecordError(parseErr)
		span.SetStatus(codes.Error, "no substitution tables")
		return nil, parseErr
	}

	var days []Day
	var errs []error
	previous := -1
	tables.Each(func(i int, table *goquery.Selection) {
		weekday, ok := weekdayOf(table, previous, tables.Length()-i-1)
		if !ok {
			errs = append(errs, &ParseError{Table: i, Err: ErrNoWeekdayLeft})
			return
		}
		previous = weekday
		label := Weekdays[weekday]

		if strings.Contains(htmlutil.CleanText(table.Text()), noSubstitutionsMarker) {
			return
		}

		day, err := parseDay(label, table)
		if err != nil {
			errs = append(errs, &ParseError{Weekday: label, Table: i, Err: err})
			return
		}
		days = append(days, day)
	})

	err = errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
	}
	return days, err
}

// weekdayOf resolves the index into Weekdays of a table, previous is the
// index of the table before it (-1 for the first one) and following the number
// of tables after it.
func weekdayOf(table *goquery.Selection, previous, following int) (int, bool) {
	labelled, ok := labelBefore(table)
	if ok && labelled > previous && labelled+following < len(Weekdays) {
		return labelled, true
	}
	next := previous + 1
	if next >= len(Weekdays) {
		return 0, false
	}
	return next, true
}

// labelBefore looks at the closest preceding sibling that has any text, if it
// names exactly one weekday that weekday is the table's label.
func labelBefore(table *goquery.Selection) (int, bool) {
	for _, node := range table.PrevAll().Nodes {
		sibling := goquery.NewDocumentFromNode(node).Selection
		if sibling.Is(substTableSelector) || sibling.Find(substTableSelector).Length() > 0 {
			return 0, false
		}

		text := htmlutil.CleanText(htmlutil.GetText(node))
		if text == "" {
			continue
		}
		return findWeekday(text)
	}
	return 0, false
}

func findWeekday(text string) (int, bool) {
	found := -1
	for _, word := range strings.FieldsFunc(text, isWordSeparator) {
		for i, weekday := range Weekdays {
			if !strings.EqualFold(word, weekday) {
				continue
			}
			if found >= 0 && found != i {
				return 0, false
			}
			found = i
		}
	}
	return found, found >= 0
}

func isWordSeparator(r rune) bool {
	switch r {
	case ' ', ',', '.', ':', ';', '(', ')', '/', '-':
		return true
	}
	return false
}

func parseDay(label string, table *goquery.Selection) (Day, error) {
	day := Day{Date: label, Rows: []ScheduleRow{}}

	entries := table.Find("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return entryRowClass.MatchString(row.AttrOr("class", ""))
	})

	var rowErr error
	entries.EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 8 {
			rowErr = fmt.Errorf("row %d: %w (got %d cells)", i, ErrShortRow, cells.Length())
			return false
		}

		var fields [7]string
		for col := 1; col <= 7; col++ {
			fields[col-1] = cells.Eq(col).Text()
		}
		day.Rows = append(day.Rows, rowFromFields(fields))
		return true
	})
	if rowErr != nil {
		return Day{}, rowErr
	}

	return day, nil
}
