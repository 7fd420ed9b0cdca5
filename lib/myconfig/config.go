package myconfig

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Google Cloud: when ProjectID is empty everything runs in-memory
	ProjectID  string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	LocationID string `envconfig:"LOCATION_ID" default:"europe-west1"`
	QueueName  string `envconfig:"QUEUE_NAME" default:"default"`

	// SaleBackendURL is where the terminal submits sales; defaults to this process
	SaleBackendURL string `envconfig:"SALE_BACKEND_URL"`

	SMTP    SMTP
	Company Company
}

type SMTP struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	Sender   string `envconfig:"INVOICE_SENDER" default:"facturacion@localhost"`
}

type Company struct {
	Name    string `envconfig:"COMPANY_NAME" default:"Distribuidora La Rioja"`
	Address string `envconfig:"COMPANY_ADDRESS" default:"Calle Principal 1, La Rioja"`
	Website string `envconfig:"COMPANY_WEBSITE"`
	Phone   string `envconfig:"COMPANY_PHONE"`
}

func Load() (Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("error loading configuration: %s", err)
	}

	if cfg.SaleBackendURL == "" {
		cfg.SaleBackendURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	}

	return cfg, nil
}

func (c Config) RunsInCloud() bool {
	return c.ProjectID != ""
}
