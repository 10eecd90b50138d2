package mailchimp

import (
	"leadhopper/internal/platform/config"
)

// FromConfig builds Options from SERVICE_MAILCHIMP_* env
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SERVICE_MAILCHIMP_")
	return Options{
		APIKey:     c.MayString("API_KEY", ""),
		BaseURL:    c.MayString("BASE_URL", ""),
		UserAgent:  c.MayString("USER_AGENT", defaultUA),
		Timeout:    c.MayDuration("TIMEOUT", defaultTimeout),
		MaxRetries: c.MayInt("MAX_RETRIES", defaultMaxRetry),
		RetryBase:  c.MayDuration("RETRY_BASE", defaultRetryBase),
		RPS:        c.MayFloat64("RPS", defaultRPS),
	}
}
