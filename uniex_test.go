package uniex

import (
	"errors"
	"testing"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/config"
	"github.com/uniex/uniex/exchanges/bitmax"
)

func TestNewExchange(t *testing.T) {
	names := []string{ExchangeBitmax, ExchangeKkex, ExchangeLatoken, ExchangeXena}
	for _, name := range names {
		ex, err := NewExchange(name)
		if err != nil {
			t.Fatalf("NewExchange(%s): %v", name, err)
		}
		if ex.Name() != name {
			t.Fatalf("name=%s, want %s", ex.Name(), name)
		}
	}

	if _, err := NewExchange("binance"); !errors.Is(err, base.ErrExchangeNotSupported) {
		t.Fatalf("unknown exchange should fail with ErrExchangeNotSupported, got %v", err)
	}
}

func TestNewExchangeOptions(t *testing.T) {
	ex, err := NewExchange(ExchangeBitmax,
		WithAPIKey("key-1"),
		WithSecretKey("secret-1"),
		WithOption("account", "margin"),
	)
	if err != nil {
		t.Fatalf("NewExchange: %v", err)
	}

	concrete, ok := ex.(*bitmax.Exchange)
	if !ok {
		t.Fatalf("expected *bitmax.Exchange, got %T", ex)
	}
	if concrete.APIKey() != "key-1" || concrete.Secret() != "secret-1" {
		t.Fatalf("credentials not applied")
	}
	if concrete.GetOptionString("account") != "margin" {
		t.Fatalf("custom option not applied")
	}
}

func TestNewExchangeFromConfig(t *testing.T) {
	ex, err := NewExchangeFromConfig(ExchangeXena, config.ExchangeConfig{
		APIKey: "key-2",
		Secret: "secret-2",
		Options: map[string]string{
			"accountId": "8273231",
		},
	})
	if err != nil {
		t.Fatalf("NewExchangeFromConfig: %v", err)
	}
	if ex.Name() != ExchangeXena {
		t.Fatalf("name=%s", ex.Name())
	}
}

func TestSupportedExchanges(t *testing.T) {
	if !IsExchangeSupported(ExchangeLatoken) {
		t.Fatalf("latoken should be supported")
	}
	if IsExchangeSupported("okex") {
		t.Fatalf("okex should not be supported")
	}
	if got := len(GetSupportedExchanges()); got < 4 {
		t.Fatalf("supported exchanges=%d, want at least 4", got)
	}
}
