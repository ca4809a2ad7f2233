package preferences

type SetLanguageRequest struct {
	Language string `json:"language" binding:"required,oneof=sr en"`
}

// SaveCookiesRequest omits necessary; it cannot be turned off.
type SaveCookiesRequest struct {
	Functional bool `json:"functional"`
	Analytics  bool `json:"analytics"`
	Marketing  bool `json:"marketing"`
}
