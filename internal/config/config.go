package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config concentra a configuração do serviço, vinda do ambiente
// (Cloud Run / local).
type Config struct {
	Port string

	// País assumido quando o endereço do pedido não traz um. Default
	// "Brasil" por herança da operação single-market; configurável para
	// outras praças.
	DefaultCountry string

	Cubbo CubboConfig
}

// CubboConfig cobre o acesso à API da Cubbo (fulfillment).
type CubboConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	StoreID      string
	Timeout      time.Duration
}

// Load lê a configuração das variáveis de ambiente, com defaults sãos.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DEFAULT_COUNTRY", "Brasil")
	v.SetDefault("CUBBO_BASE_URL", "https://api.cubbo.com/v1")
	v.SetDefault("CUBBO_TIMEOUT_SECONDS", 30)

	cfg := &Config{
		Port:           v.GetString("PORT"),
		DefaultCountry: v.GetString("DEFAULT_COUNTRY"),
		Cubbo: CubboConfig{
			BaseURL:      v.GetString("CUBBO_BASE_URL"),
			ClientID:     v.GetString("CUBBO_CLIENT_ID"),
			ClientSecret: v.GetString("CUBBO_CLIENT_SECRET"),
			StoreID:      v.GetString("CUBBO_STORE_ID"),
			Timeout:      time.Duration(v.GetInt("CUBBO_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate confere o mínimo para o serviço subir.
func (c *Config) Validate() error {
	if c.Cubbo.ClientID == "" || c.Cubbo.ClientSecret == "" {
		return fmt.Errorf("CUBBO_CLIENT_ID and CUBBO_CLIENT_SECRET are required")
	}
	if c.Cubbo.StoreID == "" {
		return fmt.Errorf("CUBBO_STORE_ID is required")
	}
	if c.Cubbo.BaseURL == "" {
		return fmt.Errorf("CUBBO_BASE_URL is required")
	}
	return nil
}
