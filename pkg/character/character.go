package character

import (
	"fmt"
	"slices"
)

// Config is the typed actor configuration record consumed when resolving
// speaker-bound directives. It is authored as JSON alongside the
// character's sprite folders.
type Config struct {
	Name        string   `json:"name"`
	Outfit      string   `json:"outfit"`
	Emotion     string   `json:"emotion"`
	Description string   `json:"description"`
	Emotions    []string `json:"emotions"`
	Outfits     []string `json:"outfits"`
}

// Validate checks the record's internal consistency: the default outfit
// and emotion must appear in the declared lists.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("character has no name")
	}
	if len(c.Emotions) == 0 {
		return fmt.Errorf("character %q declares no emotions", c.Name)
	}
	if len(c.Outfits) == 0 {
		return fmt.Errorf("character %q declares no outfits", c.Name)
	}
	if !slices.Contains(c.Emotions, c.Emotion) {
		return fmt.Errorf("character %q: default emotion %q is not in the emotions list", c.Name, c.Emotion)
	}
	if !slices.Contains(c.Outfits, c.Outfit) {
		return fmt.Errorf("character %q: default outfit %q is not in the outfits list", c.Name, c.Outfit)
	}
	return nil
}

// HasEmotion reports whether the character declares the emotion.
func (c *Config) HasEmotion(emotion string) bool {
	return slices.Contains(c.Emotions, emotion)
}
