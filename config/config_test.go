package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Check.Website != "https://www.amazon.com/" {
		t.Errorf("Website = %q, want default storefront", cfg.Check.Website)
	}
	if cfg.Check.Product != "hand soap" {
		t.Errorf("Product = %q, want %q", cfg.Check.Product, "hand soap")
	}
	if cfg.Check.InterstitialWait != 2*time.Second {
		t.Errorf("InterstitialWait = %v, want 2s", cfg.Check.InterstitialWait)
	}
	if cfg.Check.PriceTimeout != 10*time.Second {
		t.Errorf("PriceTimeout = %v, want 10s", cfg.Check.PriceTimeout)
	}
	if !cfg.Browser.Headless {
		t.Error("Headless should default to true")
	}
	if cfg.Selectors.SearchInput != "input#twotabsearchtextbox" {
		t.Errorf("SearchInput = %q, want primary search box selector", cfg.Selectors.SearchInput)
	}
	if cfg.Selectors.SearchInputFallback != "input#nav-bb-bar" {
		t.Errorf("SearchInputFallback = %q, want fallback search box selector", cfg.Selectors.SearchInputFallback)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRICEBOT_WEBSITE", "https://shop.example/")
	t.Setenv("PRICEBOT_PRODUCT", "dish sponge")
	t.Setenv("PRICEBOT_PRICE_TIMEOUT", "3s")
	t.Setenv("PRICEBOT_HEADLESS", "false")
	t.Setenv("PRICEBOT_API_KEYS", "key-a, key-b")

	cfg := Load()

	if cfg.Check.Website != "https://shop.example/" {
		t.Errorf("Website = %q, want override", cfg.Check.Website)
	}
	if cfg.Check.Product != "dish sponge" {
		t.Errorf("Product = %q, want override", cfg.Check.Product)
	}
	if cfg.Check.PriceTimeout != 3*time.Second {
		t.Errorf("PriceTimeout = %v, want 3s", cfg.Check.PriceTimeout)
	}
	if cfg.Browser.Headless {
		t.Error("Headless should be overridden to false")
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[0] != "key-a" || cfg.Auth.APIKeys[1] != "key-b" {
		t.Errorf("APIKeys = %v, want [key-a key-b]", cfg.Auth.APIKeys)
	}
}

func TestLoad_MalformedEnvFallsBack(t *testing.T) {
	t.Setenv("PRICEBOT_PRICE_TIMEOUT", "not-a-duration")
	t.Setenv("PRICEBOT_PORT", "not-a-number")

	cfg := Load()

	if cfg.Check.PriceTimeout != 10*time.Second {
		t.Errorf("PriceTimeout = %v, want default 10s on parse failure", cfg.Check.PriceTimeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080 on parse failure", cfg.Server.Port)
	}
}
