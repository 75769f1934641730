package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	OpenAIKey   string `env:"OPENAI_API_KEY,required"`
	OpenAIURL   string `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1"`

	// Image generation
	ImageModel   string `env:"IMAGE_MODEL" envDefault:"dall-e-3"`
	ImageSize    string `env:"IMAGE_SIZE" envDefault:"1024x1024"`
	ImageQuality string `env:"IMAGE_QUALITY" envDefault:"standard"`

	// Prompt style suffix appended to every composed prompt.
	StyleSuffix string `env:"STYLE_SUFFIX" envDefault:"Play the role of an AI image generation assistant in the context of preventive healthcare. The image aims to encourage LGBTQ+ communities to utilize preventive healthcare services (e.g., routine check-ups, vaccinations, or sexual health screenings). Please generate high-resolution realistic photographs with real humans and details."`

	// Revision loop
	MaxRevisions int `env:"MAX_REVISIONS" envDefault:"3"`

	// Question elicitation: "static" (fixed questions) or "llm".
	CoachMode  string `env:"COACH_MODE" envDefault:"static"`
	CoachModel string `env:"COACH_MODEL" envDefault:"gpt-4o-mini"`

	// HTTP export server
	Port       int    `env:"PORT" envDefault:"3000"`
	PublicURL  string `env:"PUBLIC_URL" envDefault:"http://localhost:3000"`
	HTTPEnable bool   `env:"HTTP_ENABLE" envDefault:"true"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
