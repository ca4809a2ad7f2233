package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll disables a category or location filter.
const FilterAll = "all"

type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
	SortByTitle     SortKey = "title"
)

// ParseSortKey maps unknown or empty keys to SortByDate.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortByPriceLow, SortByPriceHigh, SortByTitle:
		return k
	default:
		return SortByDate
	}
}

// Search returns events whose title, description, category, location or venue
// contains term in either language, ignoring case. Results keep catalog order
// and are truncated to limit when limit > 0. A blank term matches nothing.
func Search(events []EventRecord, term string, limit int) []EventRecord {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []EventRecord{}
	}

	out := make([]EventRecord, 0)
	for _, e := range events {
		if !matches(e, needle) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func matches(e EventRecord, needle string) bool {
	fields := []string{
		e.Title.SR, e.Title.EN,
		e.Description.SR, e.Description.EN,
		string(e.Category), e.Category.Label(LanguageEN),
		e.Location.SR, e.Location.EN,
		e.Venue.SR, e.Venue.EN,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// FilterByCategory keeps events in category; "" and "all" keep everything.
func FilterByCategory(events []EventRecord, category string) []EventRecord {
	if category == "" || category == FilterAll {
		return slices.Clone(events)
	}
	out := make([]EventRecord, 0)
	for _, e := range events {
		if string(e.Category) == category {
			out = append(out, e)
		}
	}
	return out
}

// FilterByLocation keeps events whose location in lang equals location;
// "" and "all" keep everything.
func FilterByLocation(events []EventRecord, location string, lang Language) []EventRecord {
	if location == "" || location == FilterAll {
		return slices.Clone(events)
	}
	out := make([]EventRecord, 0)
	for _, e := range events {
		if e.Location.Get(lang) == location {
			out = append(out, e)
		}
	}
	return out
}

// SortBy returns a sorted copy. The sort is stable so ties keep catalog order.
func SortBy(events []EventRecord, key SortKey, lang Language) []EventRecord {
	out := slices.Clone(events)

	switch key {
	case SortByPriceLow:
		slices.SortStableFunc(out, func(a, b EventRecord) int { return cmp.Compare(a.Price, b.Price) })
	case SortByPriceHigh:
		slices.SortStableFunc(out, func(a, b EventRecord) int { return cmp.Compare(b.Price, a.Price) })
	case SortByTitle:
		col := collatorFor(lang)
		slices.SortStableFunc(out, func(a, b EventRecord) int {
			return col.CompareString(a.Title.Get(lang), b.Title.Get(lang))
		})
	default:
		slices.SortStableFunc(out, func(a, b EventRecord) int { return a.Date.Compare(b.Date.Time) })
	}
	return out
}

// collate.Collator keeps scratch buffers, so each sort gets its own.
func collatorFor(lang Language) *collate.Collator {
	if lang == LanguageEN {
		return collate.New(language.English)
	}
	return collate.New(language.MustParse("sr-Latn"))
}

// Localize flattens e into lang.
func Localize(e EventRecord, lang Language) LocalizedEvent {
	tickets := make([]LocalizedTicketType, len(e.TicketTypes))
	for i, tt := range e.TicketTypes {
		tickets[i] = LocalizedTicketType{
			Name:      tt.Name.Get(lang),
			Price:     tt.Price,
			Available: tt.Available,
		}
	}

	return LocalizedEvent{
		ID:            e.ID,
		Language:      lang,
		Title:         e.Title.Get(lang),
		Description:   e.Description.Get(lang),
		Category:      e.Category,
		CategoryLabel: e.Category.Label(lang),
		Date:          e.Date,
		Time:          e.Time,
		Location:      e.Location.Get(lang),
		Venue:         e.Venue.Get(lang),
		Price:         e.Price,
		Image:         e.Image,
		Featured:      e.Featured,
		TicketTypes:   tickets,
	}
}

func LocalizeAll(events []EventRecord, lang Language) []LocalizedEvent {
	out := make([]LocalizedEvent, len(events))
	for i, e := range events {
		out[i] = Localize(e, lang)
	}
	return out
}

func FindByID(events []EventRecord, id string) (EventRecord, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return EventRecord{}, false
}

func Featured(events []EventRecord) []EventRecord {
	out := make([]EventRecord, 0)
	for _, e := range events {
		if e.Featured {
			out = append(out, e)
		}
	}
	return out
}

// Upcoming returns events dated on or after the calendar day of now, soonest
// first.
func Upcoming(events []EventRecord, now time.Time) []EventRecord {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	out := make([]EventRecord, 0)
	for _, e := range events {
		if !e.Date.Before(today) {
			out = append(out, e)
		}
	}
	return SortBy(out, SortByDate, DefaultLanguage)
}

type CategorySummary struct {
	Key   Category `json:"key"`
	Label string   `json:"label"`
	Count int      `json:"count"`
}

// Categories lists every known category with its label and event count.
func Categories(events []EventRecord, lang Language) []CategorySummary {
	counts := make(map[Category]int)
	for _, e := range events {
		counts[e.Category]++
	}
	out := make([]CategorySummary, len(AllCategories))
	for i, c := range AllCategories {
		out[i] = CategorySummary{Key: c, Label: c.Label(lang), Count: counts[c]}
	}
	return out
}

// Locations lists distinct locations in lang, in first-seen order.
func Locations(events []EventRecord, lang Language) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range events {
		loc := e.Location.Get(lang)
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	return out
}

// Query is the combined listing used by the events page.
type Query struct {
	Search   string
	Category string
	Location string
	Sort     SortKey
	Language Language
	Limit    int
}

// Apply runs search, category, location, sort and limit in that order. Unlike
// Search, a blank search term here means no search filter.
func (q Query) Apply(events []EventRecord) []EventRecord {
	lang := q.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	result := events
	if strings.TrimSpace(q.Search) != "" {
		result = Search(result, q.Search, 0)
	}
	result = FilterByCategory(result, q.Category)
	result = FilterByLocation(result, q.Location, lang)
	result = SortBy(result, q.Sort, lang)
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result
}
