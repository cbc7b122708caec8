package crm

import "time"

// Config points the client at a CRM gateway.
type Config struct {
	BaseURL string        `env:"CRM_BASE_URL"`
	APIKey  string        `env:"CRM_API_KEY"`
	Timeout time.Duration `env:"CRM_TIMEOUT" envDefault:"10s"`
}
