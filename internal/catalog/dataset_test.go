package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEvents_LoadsBundledCatalog(t *testing.T) {
	events, err := DefaultEvents()
	require.NoError(t, err)
	require.Len(t, events, 20)

	first := events[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Night Jazz Concert", first.Title.EN)
	assert.Equal(t, "Noćni koncer jazz muzike", first.Title.SR)
	assert.Equal(t, CategoryConcerts, first.Category)
	assert.Equal(t, "2025-02-15", first.Date.String())
	assert.True(t, first.Featured)
	require.Len(t, first.TicketTypes, 2)
	assert.Equal(t, TicketType{Name: Text{SR: "VIP karta", EN: "VIP Ticket"}, Price: 45, Available: 25}, first.TicketTypes[1])
}

func TestParseEvents_RejectsMissingTranslation(t *testing.T) {
	data := []byte(`[{"id":"1","title":{"sr":"Koncert","en":""},"description":{"sr":"a","en":"b"},
		"category":"Koncerti","date":"2025-01-01","time":"20:00","location":{"sr":"Banja Luka","en":"Banja Luka"},
		"venue":{"sr":"Dom","en":"Hall"},"price":10,"image":"","featured":false,"ticket_types":[]}]`)

	_, err := ParseEvents(data)

	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseEvents_RejectsUnknownCategoryAndBadDate(t *testing.T) {
	base := `{"id":"1","title":{"sr":"a","en":"a"},"description":{"sr":"a","en":"b"},
		"time":"20:00","location":{"sr":"x","en":"x"},"venue":{"sr":"v","en":"v"},"price":10,"ticket_types":[],`

	_, err := ParseEvents([]byte(`[` + base + `"category":"Opera","date":"2025-01-01"}]`))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = ParseEvents([]byte(`[` + base + `"category":"Ostalo","date":"01/01/2025"}]`))
	assert.Error(t, err)
}

func TestValidateEvents_RejectsDuplicateIDs(t *testing.T) {
	events, err := DefaultEvents()
	require.NoError(t, err)

	err = ValidateEvents([]EventRecord{events[0], events[0]})

	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestValidate_NegativeTicketPrice(t *testing.T) {
	events, err := DefaultEvents()
	require.NoError(t, err)

	record := events[0]
	record.TicketTypes = []TicketType{{Name: Text{SR: "a", EN: "a"}, Price: -1}}

	assert.ErrorIs(t, record.Validate(), ErrInvalidRecord)
}

func TestParseLanguage(t *testing.T) {
	lang, ok := ParseLanguage(" EN ")
	assert.True(t, ok)
	assert.Equal(t, LanguageEN, lang)

	_, ok = ParseLanguage("de")
	assert.False(t, ok)
	assert.Equal(t, LanguageSR, LanguageOrDefault("de"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "New Year", CategoryNewYear.Label(LanguageEN))
	assert.Equal(t, "Nova godina", CategoryNewYear.Label(LanguageSR))
	assert.Equal(t, "Opera", Category("Opera").Label(LanguageEN))
}

func TestFindTicketType(t *testing.T) {
	events, err := DefaultEvents()
	require.NoError(t, err)

	tt, ok := events[0].FindTicketType("VIP Ticket")
	require.True(t, ok)
	assert.Equal(t, 45, tt.Price)

	tt, ok = events[0].FindTicketType("Regularna karta")
	require.True(t, ok)
	assert.Equal(t, 25, tt.Price)

	_, ok = events[0].FindTicketType("Balcony")
	assert.False(t, ok)
}

func TestEventRecord_JSONUsesSnakeCaseTicketTypes(t *testing.T) {
	events, err := DefaultEvents()
	require.NoError(t, err)

	data, err := json.Marshal(events[0])
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "ticket_types")
	assert.NotContains(t, fields, "ticketTypes")

	parsed, err := ParseEvents([]byte("[" + string(data) + "]"))
	require.NoError(t, err)
	assert.Equal(t, events[0].TicketTypes, parsed[0].TicketTypes)
}
