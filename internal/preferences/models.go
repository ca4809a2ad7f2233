package preferences

import "tvojakarta/internal/catalog"

// CookiePreferences are the visitor's cookie choices. Necessary is always
// true; the other categories are opt-in or opt-out.
type CookiePreferences struct {
	Necessary  bool `json:"necessary"`
	Functional bool `json:"functional"`
	Analytics  bool `json:"analytics"`
	Marketing  bool `json:"marketing"`
}

func DefaultCookiePreferences() CookiePreferences {
	return CookiePreferences{Necessary: true, Functional: true}
}

func (p CookiePreferences) normalized() CookiePreferences {
	p.Necessary = true
	return p
}

// Preferences is everything remembered about a visitor.
type Preferences struct {
	Language     catalog.Language  `json:"language"`
	ConsentGiven bool              `json:"consent_given"`
	Cookies      CookiePreferences `json:"cookies"`
}

func Defaults() Preferences {
	return Preferences{
		Language: catalog.DefaultLanguage,
		Cookies:  DefaultCookiePreferences(),
	}
}
