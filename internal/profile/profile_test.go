package profile

import (
	"strings"
	"testing"

	"github.com/vovakirdan/miniplay/internal/score"
)

func TestLoadDefaults(t *testing.T) {
	kv := score.NewMemoryKV()
	if got := Load(kv); got != Default() {
		t.Errorf("Load() on empty store = %+v, want %+v", got, Default())
	}

	kv.Set(score.KeyProfile, "not json")
	if got := Load(kv); got != Default() {
		t.Errorf("Load() on malformed data = %+v, want %+v", got, Default())
	}
}

func TestSaveAndLoad(t *testing.T) {
	kv := score.NewMemoryKV()
	saved, err := Save(kv, Profile{Name: "  Ana  ", Avatar: "rocket"})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if saved.Name != "Ana" {
		t.Errorf("saved name = %q, want %q", saved.Name, "Ana")
	}
	if got := Load(kv); got != saved {
		t.Errorf("Load() = %+v, want %+v", got, saved)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Profile
		want Profile
	}{
		{"empty name", Profile{Name: "", Avatar: "star"}, Profile{Name: DefaultName, Avatar: "star"}},
		{"blank name", Profile{Name: "   ", Avatar: "star"}, Profile{Name: DefaultName, Avatar: "star"}},
		{"unknown avatar", Profile{Name: "Kim", Avatar: "dragon"}, Profile{Name: "Kim", Avatar: DefaultAvatar}},
		{"long name", Profile{Name: strings.Repeat("é", 30), Avatar: "user"}, Profile{Name: strings.Repeat("é", MaxNameLen), Avatar: "user"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestGlyph(t *testing.T) {
	for _, a := range Avatars {
		if Glyph(a.ID) == "" {
			t.Errorf("Glyph(%q) is empty", a.ID)
		}
	}
	if Glyph("nope") != "" {
		t.Error("Glyph() of unknown avatar should be empty")
	}
}
