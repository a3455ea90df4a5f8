package config

import "path/filepath"

// Tones lists every recognized tone, in display order.
var Tones = []Tone{ToneDefault, ToneProfessional, ToneInformal, ToneEncouraging}

// Levels lists every recognized level, in display order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   "http://localhost:5000",
		Tone:        ToneDefault,
		Level:       LevelBeginner,
		DataDir:     ".learnai",
		MaxUploadMB: 50,
	}
}

// HistoryDBPath returns the path of the SQLite database holding the
// persisted chat history.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.DataDir, "learnai.db")
}
