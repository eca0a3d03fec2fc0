// internal/advisor/intent-dispatch/config.go
package intentdispatch

import (
	"time"

	"agri-advisor/internal/common/config"
)

type Config struct {
	TypingDelay time.Duration
	PendingText string
	Rules       []Rule
	Default     Template
}

func LoadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		TypingDelay: 800 * time.Millisecond,
		PendingText: "⏳ Typing...",
		Rules:       DefaultRules(),
		Default:     DefaultTemplate(),
	}
	if appCfg != nil {
		cfg.TypingDelay = config.GetDuration(appCfg.Chat.TypingDelay)
		if appCfg.Chat.PendingText != "" {
			cfg.PendingText = appCfg.Chat.PendingText
		}
	}
	return cfg
}
