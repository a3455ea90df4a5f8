package config

// Tone selects the answering style of the remote assistant.
type Tone string

const (
	ToneDefault      Tone = "default"
	ToneProfessional Tone = "professional"
	ToneInformal     Tone = "informal"
	ToneEncouraging  Tone = "encouraging"
)

// Level selects the depth of explanation of the remote assistant.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Config is the top-level learnai configuration, corresponding to .learnai.yml.
type Config struct {
	ServerURL   string `yaml:"server_url" koanf:"server_url"`
	Tone        Tone   `yaml:"tone" koanf:"tone"`
	Level       Level  `yaml:"level" koanf:"level"`
	DataDir     string `yaml:"data_dir" koanf:"data_dir"`
	MaxUploadMB int64  `yaml:"max_upload_mb" koanf:"max_upload_mb"`
}
