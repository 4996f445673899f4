package service

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"strings"
	"substplan/internal/scrapers/untis"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	page  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) (string, error) {
	f.calls++
	return f.page, f.err
}

func subst(rows ...string) string {
	return `<table class="subst">` + strings.Join(rows, "") + `</table>`
}

func entry(period string) string {
	return `<tr class="list odd"><td>10a</td><td>` + period + `</td><td>Hm</td><td>M</td><td>Vertretung</td><td>Kr</td><td>M</td><td>201</td></tr>`
}

const shortEntry = `<tr class="list even"><td>10a</td><td>2</td></tr>`

const noSubstitutions = `<tr class="list odd"><td colspan="8">Keine Vertretungen</td></tr>`

func TestPlan(t *testing.T) {
	fetcher := &fakeFetcher{page: subst(entry("1"), entry("2")) + subst(noSubstitutions) + subst(entry("5"))}
	svc := NewPlanService(fetcher)

	plan, err := svc.Plan(context.Background())
	require.NoError(t, err)
	require.False(t, plan.Empty())
	require.Empty(t, plan.Skipped)
	require.Len(t, plan.Days, 2)
	require.Equal(t, "Montag", plan.Days[0].Date)
	require.Equal(t, "Mittwoch", plan.Days[1].Date)
	require.Len(t, strings.Split(plan.Text, "\n"), 2+3)

	data, err := plan.PNG()
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Greater(t, img.Bounds().Dy(), 0)
}

func TestPlanFetchError(t *testing.T) {
	fetchErr := &untis.FetchError{URL: "http://plan/05/w/w00022.htm", StatusCode: http.StatusServiceUnavailable}
	svc := NewPlanService(&fakeFetcher{err: fetchErr})

	plan, err := svc.Plan(context.Background())
	require.ErrorIs(t, err, fetchErr)
	require.Empty(t, plan.Text)
	require.Empty(t, plan.Days)
}

func TestPlanWithoutTables(t *testing.T) {
	svc := NewPlanService(&fakeFetcher{page: "<html><body>Login</body></html>"})

	_, err := svc.Plan(context.Background())
	require.ErrorIs(t, err, untis.ErrNoTables)
}

func TestPlanSkipsBrokenDays(t *testing.T) {
	page := subst(entry("1")) + subst(shortEntry) + `<p>Freitag</p>` + subst(entry("6"), shortEntry)
	svc := NewPlanService(&fakeFetcher{page: page})

	plan, err := svc.Plan(context.Background())
	require.NoError(t, err)
	require.Len(t, plan.Days, 1)
	require.Equal(t, []string{"Dienstag", "Freitag"}, plan.SkippedLabels())
	require.Contains(t, plan.Text, "Montag")
}

func TestPlanEmpty(t *testing.T) {
	svc := NewPlanService(&fakeFetcher{page: subst(noSubstitutions) + subst()})

	plan, err := svc.Plan(context.Background())
	require.NoError(t, err)
	require.True(t, plan.Empty())

	data, err := plan.PNG()
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestHTML(t *testing.T) {
	fetcher := &fakeFetcher{page: "<html>raw</html>"}
	svc := NewPlanService(fetcher)

	page, err := svc.HTML(context.Background())
	require.NoError(t, err)
	require.Equal(t, "<html>raw</html>", page)
	require.Equal(t, 1, fetcher.calls)
}

func TestSkippedLabelsWithoutWeekday(t *testing.T) {
	plan := Plan{Skipped: []*untis.ParseError{{Table: 5, Err: untis.ErrNoWeekdayLeft}}}
	require.Equal(t, []string{"Tabelle 6"}, plan.SkippedLabels())
}
