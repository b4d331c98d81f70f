package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

// ============================================================
// hexDump tests
// ============================================================

func TestHexDump_Empty(t *testing.T) {
	result := hexDump([]byte{}, 10)
	if result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestHexDump_ShortData(t *testing.T) {
	result := hexDump([]byte{0x48, 0x69}, 10)
	expected := "48 69"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestHexDump_LongerThanMaxLen(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	result := hexDump(data, 3)
	expected := "01 02 03"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestHexDump_SingleByte(t *testing.T) {
	result := hexDump([]byte{0xff}, 10)
	expected := "ff"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

// ============================================================
// hexChar tests
// ============================================================

func TestHexChar_Digits(t *testing.T) {
	for i := byte(0); i < 10; i++ {
		expected := '0' + i
		result := hexChar(i)
		if result != expected {
			t.Errorf("hexChar(%d): expected %c, got %c", i, expected, result)
		}
	}
}

func TestHexChar_Letters(t *testing.T) {
	for i := byte(10); i < 16; i++ {
		expected := 'a' + i - 10
		result := hexChar(i)
		if result != expected {
			t.Errorf("hexChar(%d): expected %c, got %c", i, expected, result)
		}
	}
}

// ============================================================
// payloadPreview tests
// ============================================================

func TestPayloadPreview(t *testing.T) {
	tests := []struct {
		data    []byte
		maxLen  int
		expects string
	}{
		{[]byte{0xde, 0xad}, 4, "de ad"},
		{[]byte{1, 2, 3, 4, 5}, 3, "01 02 03 ... (5 bytes)"},
		{[]byte{1, 2, 3}, 0, "(3 bytes)"},
		{nil, 0, ""},
	}

	for _, tt := range tests {
		if got := payloadPreview(tt.data, tt.maxLen); got != tt.expects {
			t.Errorf("payloadPreview(%v, %d) = %q, want %q", tt.data, tt.maxLen, got, tt.expects)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// ============================================================
// PayloadHandler tests
// ============================================================

func TestNewPayloadHandler_ClampsPreview(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	handler := NewPayloadHandler(inner, -4)

	if handler.preview != 0 {
		t.Errorf("expected preview 0, got %d", handler.preview)
	}
	if handler.handler != inner {
		t.Error("expected inner handler to be set")
	}
}

func TestPayloadHandler_Enabled_DelegatesToInner(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
	handler := NewPayloadHandler(inner, DefaultPreview)

	ctx := context.Background()

	if handler.Enabled(ctx, slog.LevelDebug) {
		t.Error("expected debug to be disabled")
	}
	if handler.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected info to be disabled")
	}
	if !handler.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected warn to be enabled")
	}
}

func parseLogOutput(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse log output: %v\nraw: %s", err, buf.String())
	}
	return result
}

func TestHandle_RewritesBytes(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(NewPayloadHandler(inner, 2))

	logger.Info("payload", slog.Any("data", []byte{0x00, 0x7f, 0xff}), slog.Int("length", 3))

	result := parseLogOutput(t, &buf)
	if result["data"] != "00 7f ... (3 bytes)" {
		t.Errorf("expected hex preview, got %v", result["data"])
	}
	if result["length"] != float64(3) {
		t.Errorf("expected length 3, got %v", result["length"])
	}
}

func TestHandle_LeavesOtherValues(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(NewPayloadHandler(inner, DefaultPreview))

	logger.Info("test", slog.String("groups", "Sequence(groups=[(1, 0)])"), slog.Any("ints", []int{1, 2}))

	result := parseLogOutput(t, &buf)
	if result["groups"] != "Sequence(groups=[(1, 0)])" {
		t.Errorf("expected string passed through, got %v", result["groups"])
	}
	ints, ok := result["ints"].([]interface{})
	if !ok || len(ints) != 2 {
		t.Errorf("expected []int passed through, got %v", result["ints"])
	}
}

func TestHandle_RewritesInsideGroups(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(NewPayloadHandler(inner, DefaultPreview))

	logger.Info("test", slog.Group("item", slog.Any("data", []byte{0xab})))

	result := parseLogOutput(t, &buf)
	item, ok := result["item"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected item group, got %v", result["item"])
	}
	if item["data"] != "ab" {
		t.Errorf("expected nested hex preview, got %v", item["data"])
	}
}

func TestWithAttrs_RewritesBytes(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(NewPayloadHandler(inner, DefaultPreview)).With(slog.Any("seed", []byte{1, 2}))

	logger.Info("test")

	result := parseLogOutput(t, &buf)
	if result["seed"] != "01 02" {
		t.Errorf("expected hex preview from With, got %v", result["seed"])
	}
}

func TestWithGroup_KeepsPreview(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	handler := NewPayloadHandler(inner, 5).WithGroup("gen")

	ph, ok := handler.(*PayloadHandler)
	if !ok {
		t.Fatalf("expected *PayloadHandler, got %T", handler)
	}
	if ph.preview != 5 {
		t.Errorf("expected preview 5, got %d", ph.preview)
	}
}
