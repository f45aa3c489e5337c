// Package filter implements the inline content filter applied to passthrough streams.
package filter

import "strings"

// Config contains content filter settings.
type Config struct {
	BannedToken string `env:"FILTER_BANNED_TOKEN" envDefault:"Sponsor"`
}

// SubstringFilter suppresses fragments containing a banned token.
type SubstringFilter struct {
	token string
}

// NewSubstringFilter creates a filter from config. An empty token disables it.
func NewSubstringFilter(cfg *Config) *SubstringFilter {
	if cfg == nil {
		return &SubstringFilter{}
	}
	return &SubstringFilter{token: cfg.BannedToken}
}

// ShouldSuppress reports whether fragment contains the banned token (case-sensitive).
func (f *SubstringFilter) ShouldSuppress(fragment string) bool {
	if f.token == "" {
		return false
	}
	return strings.Contains(fragment, f.token)
}
