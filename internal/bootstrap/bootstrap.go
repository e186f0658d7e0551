// Package bootstrap orchestrates where the configuration comes from and
// keeps the share fragment and the local cache in step with every edit.
package bootstrap

import (
	"github.com/sirupsen/logrus"

	"pricecard/internal/codec"
	"pricecard/internal/models"
	"pricecard/internal/persist"
)

// Source identifies where the hydrated configuration came from
type Source string

const (
	SourceFragment Source = "fragment"
	SourceCache    Source = "cache"
	SourceDefaults Source = "defaults"
)

// Controller wires the configuration lifecycle to the environment ports
type Controller struct {
	cache    persist.ConfigCache
	fragment persist.FragmentStore
	log      *logrus.Logger
}

// New creates a controller over the given ports
func New(cache persist.ConfigCache, fragment persist.FragmentStore, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{cache: cache, fragment: fragment, log: log}
}

// Hydrate resolves the starting configuration: a usable fragment token wins,
// then the local cache, then the built-in defaults. A fragment source also
// selects customer mode by default. Decode and cache-read failures are
// logged and skipped, never surfaced.
func (c *Controller) Hydrate() (*models.AppData, Source) {
	if token := c.fragment.Read(); token != "" {
		cfg, err := codec.Decode(token)
		if err == nil {
			return cfg, SourceFragment
		}
		c.log.WithError(err).Warn("ignoring malformed share token")
	}

	cfg, err := c.cache.Load()
	if err != nil {
		c.log.WithError(err).Warn("ignoring unreadable cached configuration")
	} else if cfg != nil {
		return cfg, SourceCache
	}

	return models.DefaultAppData(), SourceDefaults
}

// Publish re-serializes the configuration into the fragment and the cache.
// Both writes are best-effort; failures are logged and swallowed so an edit
// never fails because persistence did.
func (c *Controller) Publish(cfg *models.AppData) {
	token := codec.Encode(cfg)
	if token == "" {
		c.log.Warn("configuration did not serialize; sharing unavailable")
	} else if c.fragment.Supported() {
		if err := c.fragment.Write(token); err != nil {
			c.log.WithError(err).Warn("fragment update failed")
		}
	}

	if err := c.cache.Store(cfg); err != nil {
		c.log.WithError(err).Warn("cache write failed")
	}
}

// ShareToken returns the current share token and whether sharing is
// available at all. Sharing is off when the environment cannot update the
// fragment or the configuration does not serialize.
func (c *Controller) ShareToken(cfg *models.AppData) (string, bool) {
	if !c.fragment.Supported() {
		return "", false
	}
	token := codec.Encode(cfg)
	return token, token != ""
}
