package kkex

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/uniex/uniex/base"
	"github.com/uniex/uniex/common"
	"github.com/uniex/uniex/types"
)

func newTestExchange(t *testing.T, handler http.Handler) *Exchange {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ex := New()
	ex.SetBaseURL(server.URL)
	ex.client.SetRateLimit(0)
	ex.SetMarkets([]*types.Market{
		{
			ID: "BTCUSDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT",
			Precision: types.MarketPrecision{Amount: 3, Price: 3},
		},
	})
	return ex
}

func decodeRaw(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return m
}

func TestFetchMarkets_JoinsTickersWithProducts(t *testing.T) {
	ex := newTestExchange(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/tickers":
			w.Write([]byte(`{"date": 1575817500, "tickers": [{"BTCUSDT": {"last": "43535.21"}}]}`))
		case "/api/v1/products":
			w.Write([]byte(`{"products": [{
				"mark_asset": "BTC",
				"base_asset": "USDT",
				"price_scale": 1000,
				"min_bid_size": "0.001",
				"max_bid_size": "100",
				"min_ask_size": "0.002",
				"max_ask_size": "50",
				"min_price": "0.01",
				"max_price": "100000",
				"min_bid_amount": "5",
				"max_bid_amount": "500000"
			}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	markets, err := ex.FetchMarkets(context.Background())
	if err != nil {
		t.Fatalf("FetchMarkets: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("markets=%d, want 1", len(markets))
	}
	m := markets[0]
	if m.ID != "BTCUSDT" || m.Symbol != "BTC/USDT" {
		t.Fatalf("market=%+v", m)
	}
	// mark_asset 是基础货币
	if m.Base != "BTC" || m.Quote != "USDT" {
		t.Fatalf("base=%s quote=%s, want BTC USDT", m.Base, m.Quote)
	}
	// price_scale 1000 对应3位小数
	if m.Precision.Price != 3 || m.Precision.Amount != 3 {
		t.Fatalf("precision=%+v, want 3/3", m.Precision)
	}
	// 数量下限取买卖两侧较小值
	if m.Limits.Amount.Min == nil || *m.Limits.Amount.Min != 0.001 {
		t.Fatalf("amount min=%v, want 0.001", m.Limits.Amount.Min)
	}
	if m.Limits.Amount.Max == nil || *m.Limits.Amount.Max != 100 {
		t.Fatalf("amount max=%v, want 100", m.Limits.Amount.Max)
	}
}

func TestParseTicker_SecondsToMilliseconds(t *testing.T) {
	raw := decodeRaw(t, `{"high": "44000", "low": "43000", "buy": "43535.21", "sell": "43540.5", "last": "43536", "vol": "120.5"}`)
	ticker := parseTicker(raw, "BTC/USDT", 1575817500)
	if ticker.Timestamp != 1575817500000 {
		t.Fatalf("timestamp=%d, want 1575817500000", ticker.Timestamp)
	}
	if ticker.Bid == nil || *ticker.Bid != 43535.21 {
		t.Fatalf("bid=%v, want 43535.21", ticker.Bid)
	}
	if ticker.Ask == nil || *ticker.Ask != 43540.5 {
		t.Fatalf("ask=%v, want 43540.5", ticker.Ask)
	}
	if ticker.Last == nil || *ticker.Last != 43536 {
		t.Fatalf("last=%v, want 43536", ticker.Last)
	}
}

func TestParseOrder_StatusAndDerivedFields(t *testing.T) {
	ex := New()
	raw := decodeRaw(t, `{
		"order_id": 10042,
		"create_date": 1575817500000,
		"amount": "1.0",
		"deal_amount": "0.5",
		"avg_price": "43535.21",
		"price": "43535.00",
		"status": 1,
		"type": "buy"
	}`)
	order := ex.parseOrder(raw, "BTC/USDT")
	if order.ID != "10042" {
		t.Fatalf("id=%q, want 10042", order.ID)
	}
	if order.Status != types.OrderStatusOpen {
		t.Fatalf("status=%s, want open", order.Status)
	}
	if order.Side != types.OrderSideBuy {
		t.Fatalf("side=%s, want buy", order.Side)
	}
	if order.Remaining == nil || *order.Remaining != 0.5 {
		t.Fatalf("remaining=%v, want 0.5", order.Remaining)
	}
	if order.Cost == nil || *order.Cost != 43535.21*0.5 {
		t.Fatalf("cost=%v, want %v", order.Cost, 43535.21*0.5)
	}
}

func TestParseOrderStatus_Table(t *testing.T) {
	cases := map[string]types.OrderStatus{
		"-1": types.OrderStatusCanceled,
		"0":  types.OrderStatusOpen,
		"1":  types.OrderStatusOpen,
		"2":  types.OrderStatusClosed,
		"3":  types.OrderStatusOpen,
		"4":  types.OrderStatusCanceled,
		"7":  "7",
	}
	for in, want := range cases {
		if got := parseOrderStatus(in); got != want {
			t.Fatalf("parseOrderStatus(%s)=%s, want %s", in, got, want)
		}
	}
}

func TestCreateOrder_MarketBuyPutsAmountInPrice(t *testing.T) {
	var form url.Values
	ex := newTestExchange(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var err error
		form, err = url.ParseQuery(string(body))
		if err != nil {
			t.Fatalf("parse form: %v", err)
		}
		w.Write([]byte(`{"result": true, "order_id": 10042}`))
	}))
	ex.SetCredentials("key", "secret")

	order, err := ex.CreateOrder(context.Background(), "BTC/USDT", types.OrderTypeMarket, types.OrderSideBuy, 500, 0, nil)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "10042" || order.Status != types.OrderStatusOpen {
		t.Fatalf("order=%+v", order)
	}
	// 市价买单金额走价格字段，方向带 _market 后缀
	if form.Get("type") != "buy_market" {
		t.Fatalf("type=%q, want buy_market", form.Get("type"))
	}
	if form.Get("price") != "500" {
		t.Fatalf("price=%q, want 500", form.Get("price"))
	}
	if form.Has("amount") {
		t.Fatalf("market buy should not send amount, got %q", form.Get("amount"))
	}
	if form.Get("api_key") != "key" || form.Get("sign") == "" || form.Get("nonce") == "" {
		t.Fatalf("missing auth fields: %v", form)
	}
}

func TestCreateOrder_SignatureMatchesForm(t *testing.T) {
	var form url.Values
	ex := newTestExchange(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Write([]byte(`{"result": true, "order_id": 1}`))
	}))
	ex.SetCredentials("key", "secret")

	if _, err := ex.CreateOrder(context.Background(), "BTC/USDT", types.OrderTypeLimit, types.OrderSideSell, 0.5, 43535.21, nil); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// 重算签名：业务参数加 nonce、api_key、secret_key，按键排序后编码做MD5
	toSign := types.NewParams()
	for key := range form {
		if key == "sign" {
			continue
		}
		toSign.Set(key, form.Get(key))
	}
	toSign.Set("secret_key", "secret")
	want := common.HashMD5Upper(toSign.EncodeSortedQuery())
	if got := form.Get("sign"); got != want {
		t.Fatalf("sign=%q, want %q", got, want)
	}
}

func TestFetchBalance(t *testing.T) {
	ex := newTestExchange(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"result": true,
			"info": {"funds": {
				"free": {"btc": "1.25", "usdt": "1000"},
				"freezed": {"btc": "0.25", "usdt": "0"}
			}}
		}`))
	}))
	ex.SetCredentials("key", "secret")

	balances, err := ex.FetchBalance(context.Background())
	if err != nil {
		t.Fatalf("FetchBalance: %v", err)
	}
	btc := balances.Get("BTC")
	if btc.Free == nil || *btc.Free != 1.25 {
		t.Fatalf("free=%v, want 1.25", btc.Free)
	}
	if btc.Total == nil || *btc.Total != 1.5 {
		t.Fatalf("total=%v, want 1.5", btc.Total)
	}
}

func TestFetchOrder_NotFound(t *testing.T) {
	ex := newTestExchange(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": true}`))
	}))
	ex.SetCredentials("key", "secret")

	_, err := ex.FetchOrder(context.Background(), "10042", "BTC/USDT")
	if !errors.Is(err, base.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestPrivatePost_ResultFalse(t *testing.T) {
	ex := newTestExchange(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": false, "error_code": 10001}`))
	}))
	ex.SetCredentials("key", "secret")

	_, err := ex.FetchBalance(context.Background())
	if !errors.Is(err, base.ErrExchange) {
		t.Fatalf("expected ErrExchange, got %v", err)
	}
	var apiErr *base.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "10001" {
		t.Fatalf("expected APIError code 10001, got %v", err)
	}
}

func TestFetchOHLCV(t *testing.T) {
	ex := newTestExchange(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "1hour" {
			t.Fatalf("type=%q, want 1hour", got)
		}
		w.Write([]byte(`[[1575817500000, "43210.99", "43600", "43100", "43535.21", "123.45"]]`))
	}))

	bars, err := ex.FetchOHLCV(context.Background(), "BTC/USDT", "1h", time.Time{}, 5)
	if err != nil {
		t.Fatalf("FetchOHLCV: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("bars=%d, want 1", len(bars))
	}
	if bars[0].Timestamp != 1575817500000 || bars[0].Close != 43535.21 {
		t.Fatalf("bar=%+v", bars[0])
	}

	if _, err := ex.FetchOHLCV(context.Background(), "BTC/USDT", "2h", time.Time{}, 5); !errors.Is(err, base.ErrNotSupported) {
		t.Fatalf("unsupported timeframe should fail, got %v", err)
	}
}
