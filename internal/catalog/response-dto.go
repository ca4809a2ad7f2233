package catalog

type EventListResponse struct {
	Events   []LocalizedEvent `json:"events"`
	Total    int              `json:"total"`
	Language Language         `json:"language"`
}

type CategoriesResponse struct {
	Categories []CategorySummary `json:"categories"`
	Language   Language          `json:"language"`
}

type LocationsResponse struct {
	Locations []string `json:"locations"`
	Language  Language `json:"language"`
}

func newEventListResponse(events []LocalizedEvent, lang Language) EventListResponse {
	return EventListResponse{Events: events, Total: len(events), Language: lang}
}
