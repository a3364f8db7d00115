// Package profile stores the local player's display name and avatar.
package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/miniplay/internal/score"
)

const (
	DefaultName   = "Player"
	DefaultAvatar = "user"
	MaxNameLen    = 20
)

// Avatars lists the selectable avatar identifiers with their glyphs.
var Avatars = []struct {
	ID    string
	Glyph string
}{
	{"user", "☺"},
	{"rocket", "➶"},
	{"star", "★"},
	{"heart", "♥"},
	{"crown", "♛"},
	{"bolt", "ϟ"},
}

// Profile is the persisted player record.
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Default returns the profile used when nothing is stored.
func Default() Profile {
	return Profile{Name: DefaultName, Avatar: DefaultAvatar}
}

// Normalize trims the name, falls back to defaults for empty fields and
// unknown avatars, and caps the name length.
func (p Profile) Normalize() Profile {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = DefaultName
	}
	if r := []rune(p.Name); len(r) > MaxNameLen {
		p.Name = string(r[:MaxNameLen])
	}
	if Glyph(p.Avatar) == "" {
		p.Avatar = DefaultAvatar
	}
	return p
}

// Glyph returns the display glyph for an avatar ID, or "" if unknown.
func Glyph(avatar string) string {
	for _, a := range Avatars {
		if a.ID == avatar {
			return a.Glyph
		}
	}
	return ""
}

// Load reads the profile from kv. Missing or malformed data yields Default.
func Load(kv score.KV) Profile {
	raw, ok, err := kv.Get(score.KeyProfile)
	if err != nil || !ok {
		return Default()
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Default()
	}
	return p.Normalize()
}

// Save normalizes p and writes it to kv, returning what was stored.
func Save(kv score.KV, p Profile) (Profile, error) {
	p = p.Normalize()
	data, err := json.Marshal(p)
	if err != nil {
		return p, err
	}
	if err := kv.Set(score.KeyProfile, string(data)); err != nil {
		return p, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}
