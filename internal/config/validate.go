package config

import (
	"fmt"
	"net/url"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("api_base_url", c.APIBaseURL, isHTTPURL),
		criterio.Run("anchor_mode", c.AnchorMode, isAnchorMode),
		atLeastOne("story_limit", c.StoryLimit),
		atLeastOne("max_concurrent", c.MaxConcurrent),
		c.validateTimeout(),
		c.validateHistory(),
		c.validateKeys(),
	)
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func isAnchorMode(mode string) error {
	switch mode {
	case AnchorModePositional, AnchorModeHref:
		return nil
	}
	return fmt.Errorf("must be %q or %q", AnchorModePositional, AnchorModeHref)
}

func atLeastOne(field string, v int) error {
	if v < 1 {
		return criterio.NewFieldErrors(field, fmt.Errorf("must be at least 1, got %d", v))
	}
	return nil
}

func (c *Config) validateTimeout() error {
	if c.RequestTimeout <= 0 {
		return criterio.NewFieldErrors("request_timeout", fmt.Errorf("must be positive"))
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return criterio.NewFieldErrors("history.path", fmt.Errorf("required when history is enabled"))
	}
	return nil
}

func (c *Config) validateKeys() error {
	for action, keys := range c.Keys {
		if !isValidAction(action) {
			return criterio.NewFieldErrors("keys", fmt.Errorf("unknown action %q", action))
		}
		if len(keys) == 0 {
			return criterio.NewFieldErrors("keys", fmt.Errorf("action %q has no keys", action))
		}
	}
	return nil
}
