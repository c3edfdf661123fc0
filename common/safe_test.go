package common

import (
	"bytes"
	"encoding/json"
	"testing"
)

func decodeJSON(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return m
}

func TestSafeString_CandidatesAndCoercion(t *testing.T) {
	m := decodeJSON(t, `{"a":"hello","b":12.5,"c":true,"d":null}`)

	if got := SafeString(m, "missing", "a"); got != "hello" {
		t.Fatalf("SafeString=%q, want hello", got)
	}
	if got := SafeString(m, "b"); got != "12.5" {
		t.Fatalf("SafeString(b)=%q, want 12.5", got)
	}
	if got := SafeString(m, "c"); got != "true" {
		t.Fatalf("SafeString(c)=%q, want true", got)
	}
	// null 视为缺失
	if got := SafeString(m, "d"); got != "" {
		t.Fatalf("SafeString(d)=%q, want empty", got)
	}
	if got := SafeString(nil, "a"); got != "" {
		t.Fatalf("SafeString(nil)=%q, want empty", got)
	}
}

func TestSafeFloat_ParsesStrings(t *testing.T) {
	m := decodeJSON(t, `{"num":0.025,"str":"43535.21","bad":"abc","empty":""}`)

	if got := SafeFloat(m, "num"); got == nil || *got != 0.025 {
		t.Fatalf("SafeFloat(num)=%v, want 0.025", got)
	}
	if got := SafeFloat(m, "str"); got == nil || *got != 43535.21 {
		t.Fatalf("SafeFloat(str)=%v, want 43535.21", got)
	}
	if got := SafeFloat(m, "bad"); got != nil {
		t.Fatalf("SafeFloat(bad)=%v, want nil", got)
	}
	if got := SafeFloat(m, "empty"); got != nil {
		t.Fatalf("SafeFloat(empty)=%v, want nil", got)
	}
	if got := SafeFloat(m, "missing"); got != nil {
		t.Fatalf("SafeFloat(missing)=%v, want nil", got)
	}
}

func TestSafeInteger_Truncates(t *testing.T) {
	m := decodeJSON(t, `{"f":1575817500000,"s":"42","frac":9.99}`)

	if got := SafeInteger(m, "f"); got == nil || *got != 1575817500000 {
		t.Fatalf("SafeInteger(f)=%v, want 1575817500000", got)
	}
	if got := SafeInteger(m, "s"); got == nil || *got != 42 {
		t.Fatalf("SafeInteger(s)=%v, want 42", got)
	}
	if got := SafeInteger(m, "frac"); got == nil || *got != 9 {
		t.Fatalf("SafeInteger(frac)=%v, want 9", got)
	}
}

func TestSafeMapAndSlice(t *testing.T) {
	m := decodeJSON(t, `{"data":{"ts":1,"asks":[["1","2"]]},"list":[1,2],"str":"x"}`)

	data := SafeMap(m, "data")
	if data == nil {
		t.Fatalf("SafeMap(data)=nil")
	}
	if got := SafeSlice(data, "asks"); len(got) != 1 {
		t.Fatalf("SafeSlice(asks) len=%d, want 1", len(got))
	}
	if got := SafeSlice(m, "list"); len(got) != 2 {
		t.Fatalf("SafeSlice(list) len=%d, want 2", len(got))
	}
	if got := SafeMap(m, "str"); got != nil {
		t.Fatalf("SafeMap(str)=%v, want nil", got)
	}
}

func TestSafeStringCase(t *testing.T) {
	m := map[string]interface{}{"side": "Buy"}
	if got := SafeStringLower(m, "side"); got != "buy" {
		t.Fatalf("SafeStringLower=%q, want buy", got)
	}
	if got := SafeStringUpper(m, "side"); got != "BUY" {
		t.Fatalf("SafeStringUpper=%q, want BUY", got)
	}
}
