package config

import "github.com/caarlos0/env/v11"

type Config struct {
	Port         int      `env:"PORT" envDefault:"8080"`
	APIKey       string   `env:"GROQ_API_KEY,required,notEmpty"`
	APIBaseURL   string   `env:"API_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	DBPath       string   `env:"DB_PATH" envDefault:"db.sqlite"`
	DefaultModel string   `env:"DEFAULT_MODEL" envDefault:"llama3-8b-8192"`
	ChunkLimit   int      `env:"CHUNK_LIMIT" envDefault:"4500"`
	ChannelFeeds []string `env:"CHANNEL_FEEDS"`
	CaptionLangs []string `env:"CAPTION_LANGS" envDefault:"en"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
