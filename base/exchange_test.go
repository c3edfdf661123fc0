package base

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uniex/uniex/types"
)

func testMarkets() []*types.Market {
	return []*types.Market{
		{
			ID: "BTC-USDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT",
			Precision: types.MarketPrecision{Amount: 4, Price: 2},
		},
		{
			ID: "ETH-USDT", Symbol: "ETH/USDT", Base: "ETH", Quote: "USDT",
			Precision: types.MarketPrecision{Amount: 3, Price: 2},
		},
	}
}

func TestLoadMarketsWith_CachesUntilReload(t *testing.T) {
	e := NewBaseExchange("test")
	calls := 0
	fetch := func(ctx context.Context) ([]*types.Market, error) {
		calls++
		return testMarkets(), nil
	}
	ctx := context.Background()

	markets, err := e.LoadMarketsWith(ctx, false, fetch)
	if err != nil {
		t.Fatalf("LoadMarketsWith: %v", err)
	}
	if len(markets) != 2 || calls != 1 {
		t.Fatalf("markets=%d calls=%d, want 2,1", len(markets), calls)
	}

	if _, err := e.LoadMarketsWith(ctx, false, fetch); err != nil {
		t.Fatalf("LoadMarketsWith: %v", err)
	}
	if calls != 1 {
		t.Fatalf("cached load should not refetch, calls=%d", calls)
	}

	if _, err := e.LoadMarketsWith(ctx, true, fetch); err != nil {
		t.Fatalf("LoadMarketsWith: %v", err)
	}
	if calls != 2 {
		t.Fatalf("reload should refetch, calls=%d", calls)
	}
}

func TestSafeSymbol(t *testing.T) {
	e := NewBaseExchange("test")
	e.SetMarkets(testMarkets())

	// 命中市场缓存
	if got := e.SafeSymbol("BTC-USDT"); got != "BTC/USDT" {
		t.Fatalf("SafeSymbol=%q, want BTC/USDT", got)
	}
	// 缓存未命中但可拆分，币种走别名表
	if got := e.SafeSymbol("XBT_USD"); got != "BTC/USD" {
		t.Fatalf("SafeSymbol=%q, want BTC/USD", got)
	}
	// 无法拆分时原样透传
	if got := e.SafeSymbol("UNKNOWNPAIR"); got != "UNKNOWNPAIR" {
		t.Fatalf("SafeSymbol=%q, want UNKNOWNPAIR", got)
	}
}

func TestSafeCurrencyCode(t *testing.T) {
	e := NewBaseExchange("test")
	e.SetCurrencies(map[string]*types.Currency{
		"BTC": {ID: "btc", Code: "BTC"},
	})

	if got := e.SafeCurrencyCode("btc"); got != "BTC" {
		t.Fatalf("SafeCurrencyCode=%q, want BTC", got)
	}
	if got := e.SafeCurrencyCode("XBT"); got != "BTC" {
		t.Fatalf("SafeCurrencyCode(XBT)=%q, want BTC", got)
	}
	if got := e.SafeCurrencyCode("doge"); got != "DOGE" {
		t.Fatalf("SafeCurrencyCode(doge)=%q, want DOGE", got)
	}
	if got := e.SafeCurrencyCode(""); got != "" {
		t.Fatalf("SafeCurrencyCode('')=%q, want empty", got)
	}
}

func TestPrecisionHelpers(t *testing.T) {
	e := NewBaseExchange("test")
	e.SetMarkets(testMarkets())

	amount, err := e.AmountToPrecision("BTC/USDT", 0.123456)
	if err != nil {
		t.Fatalf("AmountToPrecision: %v", err)
	}
	if amount != "0.1234" {
		t.Fatalf("AmountToPrecision=%q, want 0.1234", amount)
	}

	price, err := e.PriceToPrecision("BTC/USDT", 43535.216)
	if err != nil {
		t.Fatalf("PriceToPrecision: %v", err)
	}
	if price != "43535.22" {
		t.Fatalf("PriceToPrecision=%q, want 43535.22", price)
	}

	if _, err := e.AmountToPrecision("XX/YY", 1); !errors.Is(err, ErrMarketNotFound) {
		t.Fatalf("expected ErrMarketNotFound, got %v", err)
	}
}

func TestCalculateFee(t *testing.T) {
	e := NewBaseExchange("test")
	markets := testMarkets()
	markets[0].Taker = 0.001
	markets[0].Maker = 0.0005
	e.SetMarkets(markets)

	fee, err := e.CalculateFee("BTC/USDT", types.Taker, 0.5, 8000)
	if err != nil {
		t.Fatalf("CalculateFee: %v", err)
	}
	if fee.Cost == nil || *fee.Cost != 4 {
		t.Fatalf("taker cost=%v, want 4", fee.Cost)
	}
	if fee.Currency != "USDT" {
		t.Fatalf("currency=%s, want quote USDT", fee.Currency)
	}
	if fee.Rate == nil || *fee.Rate != 0.001 {
		t.Fatalf("rate=%v, want 0.001", fee.Rate)
	}

	maker, err := e.CalculateFee("BTC/USDT", types.Maker, 0.5, 8000)
	if err != nil {
		t.Fatalf("CalculateFee maker: %v", err)
	}
	if maker.Cost == nil || *maker.Cost != 2 {
		t.Fatalf("maker cost=%v, want 2", maker.Cost)
	}

	if _, err := e.CalculateFee("XX/YY", types.Taker, 1, 1); !errors.Is(err, ErrMarketNotFound) {
		t.Fatalf("expected ErrMarketNotFound, got %v", err)
	}
}

func TestTranslateError(t *testing.T) {
	exact := map[string]error{
		"6010": ErrInsufficientFunds,
		"Validation failed": ErrBadRequest,
	}
	broad := map[string]error{
		"Money not enough": ErrInsufficientFunds,
	}

	err := TranslateError("test", "6010", "Not enough balance.", exact, broad)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("exact code match: got %v", err)
	}

	err = TranslateError("test", "", "Validation failed", exact, broad)
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("exact message match: got %v", err)
	}

	err = TranslateError("test", "", "withdraw failed: Money not enough for this account", exact, broad)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("broad match: got %v", err)
	}

	err = TranslateError("test", "999", "mysterious failure", exact, broad)
	if !errors.Is(err, ErrExchange) {
		t.Fatalf("fallback should be ErrExchange, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "999" {
		t.Fatalf("expected APIError with code 999, got %v", err)
	}
}

func TestDefaultsNotSupported(t *testing.T) {
	e := NewBaseExchange("test")
	ctx := context.Background()

	if _, err := e.FetchTicker(ctx, "BTC/USDT"); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("FetchTicker default: %v", err)
	}
	if _, err := e.Withdraw(ctx, "BTC", 1, "addr", ""); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("Withdraw default: %v", err)
	}
	if err := e.CancelAllOrders(ctx, ""); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("CancelAllOrders default: %v", err)
	}
}

func TestSinceMs(t *testing.T) {
	if got := SinceMs(time.Time{}); got != 0 {
		t.Fatalf("SinceMs(zero)=%d, want 0", got)
	}
	ts := time.UnixMilli(1575817500000)
	if got := SinceMs(ts); got != 1575817500000 {
		t.Fatalf("SinceMs=%d, want 1575817500000", got)
	}
}

func TestRequireCredentials(t *testing.T) {
	e := NewBaseExchange("test")
	if err := e.RequireCredentials(); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	e.SetCredentials("key", "secret")
	if err := e.RequireCredentials(); err != nil {
		t.Fatalf("RequireCredentials: %v", err)
	}
}
