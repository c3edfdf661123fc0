package types

import "testing"

func TestParams_SetAndOrder(t *testing.T) {
	p := NewParams()

	p.Set("b", "2")
	p.Set("a", "1")
	p.Set("c", "3")

	// key order should be preserved based on first appearance
	if got := p.EncodeQuery(); got != "b=2&a=1&c=3" {
		t.Fatalf("EncodeQuery()=%q, want %q", got, "b=2&a=1&c=3")
	}
	if got := p.EncodeSortedQuery(); got != "a=1&b=2&c=3" {
		t.Fatalf("EncodeSortedQuery()=%q, want %q", got, "a=1&b=2&c=3")
	}

	// Set should replace existing values without moving the key
	p.Set("b", "9")
	if got := p.EncodeQuery(); got != "b=9&a=1&c=3" {
		t.Fatalf("EncodeQuery()=%q, want %q", got, "b=9&a=1&c=3")
	}
}

func TestParams_AddAppends(t *testing.T) {
	p := NewParams()

	p.Add("k", "1")
	p.Add("k", "2")
	p.Add("k", "3")

	if got := p.EncodeQuery(); got != "k=1&k=2&k=3" {
		t.Fatalf("EncodeQuery()=%q, want %q", got, "k=1&k=2&k=3")
	}
	if p.Get("k") != "1" {
		t.Fatalf("Get(k)=%q, want %q", p.Get("k"), "1")
	}
}

func TestParams_JoinPath(t *testing.T) {
	p := NewParams()
	p.Set("single", "1")
	p.Add("multi", "a")
	p.Add("multi", "b")

	if got := p.JoinPath("/path"); got != "/path?single=1&multi=a&multi=b" {
		t.Fatalf("JoinPath(/path)=%q, want %q", got, "/path?single=1&multi=a&multi=b")
	}
	if got := p.JoinPath("/path?x=1"); got != "/path?x=1&single=1&multi=a&multi=b" {
		t.Fatalf("JoinPath(/path?x=1)=%q, want %q", got, "/path?x=1&single=1&multi=a&multi=b")
	}
}

func TestParams_QueryEscaping(t *testing.T) {
	p := NewParams()
	p.Set("symbol", "BTC/USDT")

	if got := p.EncodeQuery(); got != "symbol=BTC%2FUSDT" {
		t.Fatalf("EncodeQuery()=%q, want %q", got, "symbol=BTC%2FUSDT")
	}
}

func TestParams_DelAndReset(t *testing.T) {
	p := NewParams()
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("c", "3")

	p.Del("b")
	if p.Has("b") {
		t.Fatalf("Has(b)=true after Del, want false")
	}
	if got := p.EncodeQuery(); got != "a=1&c=3" {
		t.Fatalf("EncodeQuery()=%q, want %q", got, "a=1&c=3")
	}
	if p.Len() != 2 {
		t.Fatalf("Len()=%d, want 2", p.Len())
	}

	p.Reset()
	if p.Has("a") {
		t.Fatalf("Has(a)=true after Reset, want false")
	}
	if got := p.EncodeQuery(); got != "" {
		t.Fatalf("EncodeQuery()=%q after Reset, want empty", got)
	}
}

func TestParams_EncodeMap(t *testing.T) {
	p := NewParams()
	p.Set("single", "1")
	p.Add("multi", "a")
	p.Add("multi", "b")

	m := p.EncodeMap()
	if got, ok := m["single"].(string); !ok || got != "1" {
		t.Fatalf("EncodeMap()[single]=(%T)%v, want string %q", m["single"], m["single"], "1")
	}
	if got, ok := m["multi"].([]string); !ok || len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("EncodeMap()[multi]=(%T)%v, want []string{a,b}", m["multi"], m["multi"])
	}
}

func TestBalances_FillsMissingFields(t *testing.T) {
	b := NewBalances()

	free := 10.0
	used := 2.5
	b.Set("BTC", &Balance{Free: &free, Used: &used})
	if got := b.Get("BTC").Total; got == nil || *got != 12.5 {
		t.Fatalf("Total=%v, want 12.5", got)
	}

	total := 100.0
	avail := 80.0
	b.Set("USDT", &Balance{Free: &avail, Total: &total})
	if got := b.Get("USDT").Used; got == nil || *got != 20.0 {
		t.Fatalf("Used=%v, want 20", got)
	}

	if got := b.Get("ETH"); got.Free != nil || got.Total != nil {
		t.Fatalf("missing code should return zero balance, got %+v", got)
	}
}
