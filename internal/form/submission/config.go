package submission

import (
	"fmt"
	"net/url"
	"time"

	"github.com/MDSCJ/Data-Collection/internal/common/validation"
)

const DefaultTimestampLayout = "1/2/2006, 3:04:05 PM"

type Config struct {
	Endpoint        string
	SecretToken     string
	IncludeSecret   bool
	Timeout         time.Duration
	ConfirmResponse bool
	TimestampLayout string
	// Schema is checked against every outgoing document. Nil disables the check.
	Schema map[string]interface{}
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:         15 * time.Second,
		TimestampLayout: DefaultTimestampLayout,
		Schema:          validation.PayloadSchema(),
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("endpoint must be an absolute http(s) URL, got %q", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.IncludeSecret && c.SecretToken == "" {
		return fmt.Errorf("secret token is required when include_secret is set")
	}
	if c.TimestampLayout == "" {
		return fmt.Errorf("timestamp layout is required")
	}
	return nil
}
