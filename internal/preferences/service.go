package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/shared/constants"
	"tvojakarta/pkg/logger"
)

type Service interface {
	// Load never fails: missing, unreadable or corrupt values fall back to
	// their defaults.
	Load(ctx context.Context, clientID string) Preferences
	SetLanguage(ctx context.Context, clientID string, lang catalog.Language) (Preferences, error)
	AcceptAll(ctx context.Context, clientID string) (Preferences, error)
	RejectAll(ctx context.Context, clientID string) (Preferences, error)
	SaveSelected(ctx context.Context, clientID string, cookies CookiePreferences) (Preferences, error)
}

type service struct {
	kv  KV
	log *logger.Logger
}

func NewService(kv KV) Service {
	return &service{kv: kv, log: logger.GetDefault()}
}

func (s *service) Load(ctx context.Context, clientID string) Preferences {
	prefs := Defaults()

	var lang string
	if s.read(ctx, clientID, constants.PREFERENCE_KEY_LANGUAGE, &lang) {
		if parsed, ok := catalog.ParseLanguage(lang); ok {
			prefs.Language = parsed
		} else {
			s.discard(ctx, clientID, constants.PREFERENCE_KEY_LANGUAGE, fmt.Errorf("unknown language %q", lang))
		}
	}

	var consent bool
	if s.read(ctx, clientID, constants.PREFERENCE_KEY_COOKIE_CONSENT, &consent) {
		prefs.ConsentGiven = consent
	}

	var cookies CookiePreferences
	if s.read(ctx, clientID, constants.PREFERENCE_KEY_COOKIE_PREFERENCES, &cookies) {
		prefs.Cookies = cookies.normalized()
	}
	return prefs
}

// read decodes a stored JSON value into dst and reports whether it did.
func (s *service) read(ctx context.Context, clientID, name string, dst any) bool {
	raw, ok, err := s.kv.Get(ctx, constants.BuildPreferenceKey(clientID, name))
	if err != nil {
		s.discard(ctx, clientID, name, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.discard(ctx, clientID, name, err)
		return false
	}
	return true
}

func (s *service) discard(ctx context.Context, clientID, name string, err error) {
	s.log.ErrorWithContext(ctx, "Ignoring stored preference", err, map[string]interface{}{
		"client_id": clientID,
		"key":       name,
	})
}

func (s *service) write(ctx context.Context, clientID, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, constants.BuildPreferenceKey(clientID, name), string(raw)); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	s.log.LogPreferencesChanged(ctx, clientID, name)
	return nil
}

func (s *service) SetLanguage(ctx context.Context, clientID string, lang catalog.Language) (Preferences, error) {
	if _, ok := catalog.ParseLanguage(string(lang)); !ok {
		return Preferences{}, fmt.Errorf("unsupported language %q", lang)
	}
	if err := s.write(ctx, clientID, constants.PREFERENCE_KEY_LANGUAGE, lang); err != nil {
		return Preferences{}, err
	}
	return s.Load(ctx, clientID), nil
}

func (s *service) AcceptAll(ctx context.Context, clientID string) (Preferences, error) {
	return s.saveConsent(ctx, clientID, CookiePreferences{
		Necessary:  true,
		Functional: true,
		Analytics:  true,
		Marketing:  true,
	})
}

func (s *service) RejectAll(ctx context.Context, clientID string) (Preferences, error) {
	return s.saveConsent(ctx, clientID, CookiePreferences{Necessary: true})
}

func (s *service) SaveSelected(ctx context.Context, clientID string, cookies CookiePreferences) (Preferences, error) {
	return s.saveConsent(ctx, clientID, cookies)
}

// saveConsent stores the choice and marks consent as given.
func (s *service) saveConsent(ctx context.Context, clientID string, cookies CookiePreferences) (Preferences, error) {
	if err := s.write(ctx, clientID, constants.PREFERENCE_KEY_COOKIE_CONSENT, true); err != nil {
		return Preferences{}, err
	}
	if err := s.write(ctx, clientID, constants.PREFERENCE_KEY_COOKIE_PREFERENCES, cookies.normalized()); err != nil {
		return Preferences{}, err
	}
	return s.Load(ctx, clientID), nil
}
