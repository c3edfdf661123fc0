package common

import "testing"

func TestNormalizeAndParseSymbol(t *testing.T) {
	if got := NormalizeSymbol("btc", "usdt"); got != "BTC/USDT" {
		t.Fatalf("NormalizeSymbol=%q, want BTC/USDT", got)
	}

	base, quote, err := ParseSymbol("ETH/BTC")
	if err != nil {
		t.Fatalf("ParseSymbol: %v", err)
	}
	if base != "ETH" || quote != "BTC" {
		t.Fatalf("ParseSymbol=%s,%s, want ETH,BTC", base, quote)
	}

	if _, _, err := ParseSymbol("ETHBTC"); err == nil {
		t.Fatalf("expected error for symbol without separator")
	}
}

func TestSplitMarketID(t *testing.T) {
	cases := []struct {
		id          string
		base, quote string
		ok          bool
	}{
		{"BTC-USDT", "BTC", "USDT", true},
		{"eth_btc", "ETH", "BTC", true},
		{"BTC/USDT", "BTC", "USDT", true},
		{"BTCUSDT", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		base, quote, ok := SplitMarketID(c.id)
		if base != c.base || quote != c.quote || ok != c.ok {
			t.Fatalf("SplitMarketID(%q)=%s,%s,%v, want %s,%s,%v", c.id, base, quote, ok, c.base, c.quote, c.ok)
		}
	}
}

func TestUUID32(t *testing.T) {
	id := UUID32()
	if len(id) != 32 {
		t.Fatalf("UUID32 length=%d, want 32", len(id))
	}
	if id == UUID32() {
		t.Fatalf("UUID32 should not repeat")
	}
}

func TestResolveTimeframe(t *testing.T) {
	if v, ok := ResolveTimeframe(KkexTimeframes, "1h"); !ok || v != "1hour" {
		t.Fatalf("ResolveTimeframe(kkex,1h)=%q,%v, want 1hour,true", v, ok)
	}
	if _, ok := ResolveTimeframe(KkexTimeframes, "3m"); ok {
		t.Fatalf("kkex should not support 3m")
	}
	if v, ok := ResolveTimeframe(BitmaxTimeframes, "1M"); !ok || v != "1m" {
		t.Fatalf("ResolveTimeframe(bitmax,1M)=%q,%v, want 1m,true", v, ok)
	}
}
