// Package codec converts an AppData value to and from the share token that
// rides in a URL fragment. The token is canonical JSON wrapped in raw
// URL-safe base64, so names and titles may contain arbitrary Unicode.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"pricecard/internal/models"
)

// ErrDecode is returned when a share token cannot be turned back into a
// configuration. Callers fall through to the cache or the built-in defaults.
var ErrDecode = fmt.Errorf("codec: malformed share token")

// Encode serializes the configuration into a URL-fragment-safe token.
// It returns the empty string on failure; callers treat that as
// "sharing unavailable" rather than an error.
func Encode(cfg *models.AppData) string {
	if cfg == nil {
		return ""
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a share token back into a configuration. A payload that is a
// bare JSON array is accepted as the legacy shape: a category list with no
// modifiers. Any transform or parse error yields (nil, ErrDecode), never a
// partially populated value.
func Decode(token string) (*models.AppData, error) {
	if token == "" {
		return nil, ErrDecode
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Tolerate tokens produced with padded encoders.
		raw, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return nil, ErrDecode
		}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cats []models.Category
		if err := json.Unmarshal(trimmed, &cats); err != nil {
			return nil, ErrDecode
		}
		return &models.AppData{Categories: cats, Modifiers: []models.Modifier{}}, nil
	}

	var cfg models.AppData
	if err := json.Unmarshal(trimmed, &cfg); err != nil {
		return nil, ErrDecode
	}
	if cfg.Categories == nil {
		cfg.Categories = []models.Category{}
	}
	if cfg.Modifiers == nil {
		cfg.Modifiers = []models.Modifier{}
	}
	return &cfg, nil
}
