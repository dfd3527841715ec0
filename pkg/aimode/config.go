package aimode

import (
	"time"

	"github.com/spf13/viper"
)

/*
Config holds the page heuristics that track Google's unversioned AI Mode
markup. They live in the user config file rather than code so a page
structure change is a config edit, not a rebuild.
*/
type Config struct {
	// Endpoint is the search URL the query params are appended to.
	Endpoint string
	// Markers is the selector group whose appearance signals the answer
	// started rendering.
	Markers string
	// SettleDelay runs after navigation, before the challenge check.
	SettleDelay time.Duration
	// AnswerTimeout bounds the wait for Markers.
	AnswerTimeout time.Duration
	// RenderDelay gives late dynamic content a moment before extraction.
	RenderDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Endpoint:      "https://www.google.com/search",
		Markers:       "div.Y3BBE, div.kCrYT, div.hgKElc",
		SettleDelay:   3 * time.Second,
		AnswerTimeout: 10 * time.Second,
		RenderDelay:   2 * time.Second,
	}
}

// FromViper overlays configured values on the defaults.
func FromViper() Config {
	v := viper.GetViper()
	cfg := DefaultConfig()

	if s := v.GetString("aimode.endpoint"); s != "" {
		cfg.Endpoint = s
	}
	if s := v.GetString("aimode.markers"); s != "" {
		cfg.Markers = s
	}
	if d := v.GetDuration("aimode.settle_delay"); d > 0 {
		cfg.SettleDelay = d
	}
	if d := v.GetDuration("aimode.answer_timeout"); d > 0 {
		cfg.AnswerTimeout = d
	}
	if d := v.GetDuration("aimode.render_delay"); d > 0 {
		cfg.RenderDelay = d
	}

	return cfg
}
