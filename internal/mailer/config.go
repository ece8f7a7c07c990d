package mailer

import (
	"fmt"
	"os"
)

type Config struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewConfig reads SMTP_* from the environment. Host and port default to
// Gmail's submission endpoint and From defaults to the login user.
func NewConfig() *Config {
	cfg := &Config{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: os.Getenv("SMTP_FROM"),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.User == "" || c.Pass == "" || c.From == "" {
		return fmt.Errorf("SMTP not configured")
	}
	return nil
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
