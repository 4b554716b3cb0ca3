package entity

import "time"

// Visit is one URL load recorded in the visit journal.
type Visit struct {
	ID        int64
	SessionID string
	Role      Role
	URL       string
	VisitedAt time.Time
}

// Preset is a landing-state shortcut to a site.
type Preset struct {
	Name  string `mapstructure:"name" json:"name" toml:"name"`
	URL   string `mapstructure:"url" json:"url" toml:"url"`
	Glyph string `mapstructure:"glyph" json:"glyph,omitempty" toml:"glyph"`
}
