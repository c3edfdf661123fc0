package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestWithComponentJSONOutput(t *testing.T) {
	log := Logger()
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.WithComponent("bitmax").Info("markets loaded")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["component"] != "bitmax" {
		t.Fatalf("component=%v, want bitmax", record["component"])
	}
	if record["message"] != "markets loaded" {
		t.Fatalf("message=%v", record["message"])
	}
	if record["timestamp"] == nil || record["level"] != "info" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestConfigureLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	log := Logger()
	if err := log.Configure("debug", "json", "stdout", 0); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := log.Configure("nope", "json", "stdout", 0); err == nil {
		t.Fatalf("invalid level should fail")
	}
	if err := log.Configure("info", "xml", "stdout", 0); err == nil {
		t.Fatalf("invalid format should fail")
	}
}

func TestConfigureFileOutput(t *testing.T) {
	log := Logger()
	path := filepath.Join(t.TempDir(), "uniex.log")

	if err := log.Configure("info", "json", path, 0); err != nil {
		t.Fatalf("Configure file output: %v", err)
	}
	// maxAge > 0 switches to the rotating writer
	if err := log.Configure("info", "json", path, 7); err != nil {
		t.Fatalf("Configure rotating output: %v", err)
	}
}
