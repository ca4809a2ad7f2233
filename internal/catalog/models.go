package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidRecord = errors.New("invalid event record")
)

type Language string

const (
	LanguageSR Language = "sr"
	LanguageEN Language = "en"

	DefaultLanguage = LanguageSR
)

// ParseLanguage accepts "sr" or "en" in any case.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageSR:
		return LanguageSR, true
	case LanguageEN:
		return LanguageEN, true
	default:
		return "", false
	}
}

// LanguageOrDefault is ParseLanguage falling back to Serbian.
func LanguageOrDefault(s string) Language {
	if lang, ok := ParseLanguage(s); ok {
		return lang
	}
	return DefaultLanguage
}

// Text is a string carried in both storefront languages.
type Text struct {
	SR string `json:"sr"`
	EN string `json:"en"`
}

func (t Text) Get(lang Language) string {
	if lang == LanguageEN {
		return t.EN
	}
	return t.SR
}

func (t Text) complete() bool {
	return strings.TrimSpace(t.SR) != "" && strings.TrimSpace(t.EN) != ""
}

// Category values are the Serbian keys used by the catalog; Label gives the
// display form per language.
type Category string

const (
	CategoryConcerts    Category = "Koncerti"
	CategoryFestivals   Category = "Festivali"
	CategoryShows       Category = "Predstave"
	CategoryConferences Category = "Konferencije"
	CategoryFairs       Category = "Sajmovi"
	CategoryNewYear     Category = "Nova godina"
	CategoryOther       Category = "Ostalo"
)

// AllCategories lists categories in display order.
var AllCategories = []Category{
	CategoryConcerts,
	CategoryFestivals,
	CategoryShows,
	CategoryConferences,
	CategoryFairs,
	CategoryNewYear,
	CategoryOther,
}

var categoryLabels = map[Category]Text{
	CategoryConcerts:    {SR: "Koncerti", EN: "Concerts"},
	CategoryFestivals:   {SR: "Festivali", EN: "Festivals"},
	CategoryShows:       {SR: "Predstave", EN: "Shows"},
	CategoryConferences: {SR: "Konferencije", EN: "Conferences"},
	CategoryFairs:       {SR: "Sajmovi", EN: "Fairs"},
	CategoryNewYear:     {SR: "Nova godina", EN: "New Year"},
	CategoryOther:       {SR: "Ostalo", EN: "Other"},
}

func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label(lang Language) string {
	if label, ok := categoryLabels[c]; ok {
		return label.Get(lang)
	}
	return string(c)
}

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TicketType is a price tier of an event. Available is display data only.
type TicketType struct {
	Name      Text `json:"name"`
	Price     int  `json:"price"`
	Available int  `json:"available"`
}

// EventRecord is one catalog entry. Records are read-only once loaded.
type EventRecord struct {
	ID          string       `json:"id"`
	Title       Text         `json:"title"`
	Description Text         `json:"description"`
	Category    Category     `json:"category"`
	Date        Date         `json:"date"`
	Time        string       `json:"time"`
	Location    Text         `json:"location"`
	Venue       Text         `json:"venue"`
	Price       int          `json:"price"`
	Image       string       `json:"image"`
	Featured    bool         `json:"featured"`
	TicketTypes []TicketType `json:"ticket_types"`
}

// Validate checks the record invariants: id present, every bilingual field
// carries both languages, known category, non-negative prices and counts.
func (e EventRecord) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	for name, text := range map[string]Text{
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"venue":       e.Venue,
	} {
		if !text.complete() {
			return fmt.Errorf("%w: event %s: %s must have sr and en", ErrInvalidRecord, e.ID, name)
		}
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: event %s: unknown category %q", ErrInvalidRecord, e.ID, e.Category)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: event %s: missing date", ErrInvalidRecord, e.ID)
	}
	if e.Price < 0 {
		return fmt.Errorf("%w: event %s: negative price", ErrInvalidRecord, e.ID)
	}
	for i, tt := range e.TicketTypes {
		if !tt.Name.complete() {
			return fmt.Errorf("%w: event %s: ticket type %d name must have sr and en", ErrInvalidRecord, e.ID, i)
		}
		if tt.Price < 0 || tt.Available < 0 {
			return fmt.Errorf("%w: event %s: ticket type %d has negative price or availability", ErrInvalidRecord, e.ID, i)
		}
	}
	return nil
}

// FindTicketType looks a tier up by its name in either language.
func (e EventRecord) FindTicketType(name string) (TicketType, bool) {
	for _, tt := range e.TicketTypes {
		if tt.Name.SR == name || tt.Name.EN == name {
			return tt, true
		}
	}
	return TicketType{}, false
}

type LocalizedTicketType struct {
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Available int    `json:"available"`
}

// LocalizedEvent is an EventRecord with every bilingual field resolved.
type LocalizedEvent struct {
	ID            string                `json:"id"`
	Language      Language              `json:"language"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Category      Category              `json:"category"`
	CategoryLabel string                `json:"category_label"`
	Date          Date                  `json:"date"`
	Time          string                `json:"time"`
	Location      string                `json:"location"`
	Venue         string                `json:"venue"`
	Price         int                   `json:"price"`
	Image         string                `json:"image"`
	Featured      bool                  `json:"featured"`
	TicketTypes   []LocalizedTicketType `json:"ticket_types"`
}
