package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvents(t *testing.T) []EventRecord {
	t.Helper()
	events, err := DefaultEvents()
	require.NoError(t, err)
	return events
}

func ids(events []EventRecord) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestSearch_JazzMatchesRegardlessOfLanguage(t *testing.T) {
	events := testEvents(t)

	assert.Equal(t, []string{"1"}, ids(Search(events, "jazz", 5)))
	assert.Equal(t, []string{"1"}, ids(Search(events, "JAZZ", 5)))
	assert.Equal(t, []string{"19"}, ids(Search(events, "Novogodišnji", 0)))
}

func TestSearch_MatchesCategoryLocationAndVenue(t *testing.T) {
	events := testEvents(t)

	assert.Equal(t, []string{"1", "5", "9", "10", "11", "19"}, ids(Search(events, "concert", 0)))
	assert.Equal(t, []string{"2", "5", "8", "10", "13", "15", "16"}, ids(Search(events, "prijedor", 0)))
	assert.Equal(t, []string{"6", "17"}, ids(Search(events, "fair", 0)))
}

func TestSearch_LimitKeepsCatalogOrder(t *testing.T) {
	events := testEvents(t)

	assert.Equal(t, []string{"1", "5"}, ids(Search(events, "concert", 2)))
}

func TestSearch_BlankTermMatchesNothing(t *testing.T) {
	events := testEvents(t)

	assert.Empty(t, Search(events, "", 0))
	assert.Empty(t, Search(events, "   ", 0))
	assert.Empty(t, Search(events, "xyz", 0))
}

func TestFilterByCategory(t *testing.T) {
	events := testEvents(t)

	assert.Equal(t, []string{"2", "8", "12", "13"}, ids(FilterByCategory(events, "Festivali")))
	assert.Len(t, FilterByCategory(events, FilterAll), 20)
	assert.Len(t, FilterByCategory(events, ""), 20)
	assert.Empty(t, FilterByCategory(events, "Opera"))
}

func TestFilterByLocation(t *testing.T) {
	events := testEvents(t)

	assert.Equal(t, []string{"2", "5", "8", "10", "13", "15", "16"}, ids(FilterByLocation(events, "Prijedor", LanguageEN)))
	assert.Len(t, FilterByLocation(events, FilterAll, LanguageSR), 20)
}

func TestSortBy_PriceIsStable(t *testing.T) {
	events := testEvents(t)

	low := ids(SortBy(events, SortByPriceLow, LanguageSR))
	assert.Equal(t, []string{"19", "17", "6", "15", "12", "13", "7", "3", "8", "10", "1"}, low[:11])

	high := ids(SortBy(events, SortByPriceHigh, LanguageSR))
	assert.Equal(t, []string{"20", "4", "2", "16", "11"}, high[:5])
	assert.Equal(t, []string{"3", "8", "10"}, high[10:13])
}

func TestSortBy_DateDefaultAndTies(t *testing.T) {
	events := testEvents(t)

	sorted := ids(SortBy(events, ParseSortKey("unknown"), LanguageSR))
	assert.Equal(t, []string{"1", "7", "3", "4"}, sorted[:4])
	assert.Equal(t, []string{"19", "20"}, sorted[18:])
}

func TestSortBy_TitleUsesDisplayLanguage(t *testing.T) {
	events := testEvents(t)

	sorted := SortBy(events, SortByTitle, LanguageEN)
	assert.Equal(t, "17", sorted[0].ID)
	assert.Equal(t, "3", sorted[len(sorted)-1].ID)
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	events := testEvents(t)
	before := ids(events)

	_ = SortBy(events, SortByPriceHigh, LanguageSR)

	assert.Equal(t, before, ids(events))
}

func TestLocalize(t *testing.T) {
	events := testEvents(t)
	source := events[0]

	en := Localize(source, LanguageEN)
	assert.Equal(t, "Night Jazz Concert", en.Title)
	assert.Equal(t, "Cultural Center Banja Luka", en.Venue)
	assert.Equal(t, "Concerts", en.CategoryLabel)
	assert.Equal(t, []LocalizedTicketType{
		{Name: "Regular Ticket", Price: 25, Available: 100},
		{Name: "VIP Ticket", Price: 45, Available: 25},
	}, en.TicketTypes)

	sr := Localize(source, LanguageSR)
	assert.Equal(t, "Dom kulture Banja Luka", sr.Venue)
	assert.Equal(t, "Regularna karta", sr.TicketTypes[0].Name)

	assert.Equal(t, "Night Jazz Concert", events[0].Title.EN)
	assert.Equal(t, "Noćni koncer jazz muzike", events[0].Title.SR)
}

func TestFeaturedAndUpcoming(t *testing.T) {
	events := testEvents(t)

	assert.Equal(t, []string{"1", "2", "5", "8", "11", "14", "19", "20"}, ids(Featured(events)))

	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"17", "11", "12", "19", "20"}, ids(Upcoming(events, now)))
	assert.Empty(t, Upcoming(events, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCategoriesAndLocations(t *testing.T) {
	events := testEvents(t)

	cats := Categories(events, LanguageEN)
	require.Len(t, cats, len(AllCategories))
	assert.Equal(t, CategorySummary{Key: CategoryConcerts, Label: "Concerts", Count: 5}, cats[0])
	assert.Equal(t, CategorySummary{Key: CategoryNewYear, Label: "New Year", Count: 2}, cats[5])

	assert.Equal(t, []string{"Banja Luka", "Prijedor"}, Locations(events, LanguageSR))
}

func TestQueryApply(t *testing.T) {
	events := testEvents(t)

	q := Query{Category: "Koncerti", Location: "Banja Luka", Sort: SortByPriceHigh, Language: LanguageSR}
	assert.Equal(t, []string{"11", "9", "1"}, ids(q.Apply(events)))

	q = Query{Search: "festival", Sort: SortByPriceLow, Limit: 2}
	assert.Equal(t, []string{"12", "13"}, ids(q.Apply(events)))

	assert.Len(t, Query{}.Apply(events), 20)
}
