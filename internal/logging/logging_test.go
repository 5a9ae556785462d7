package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_NamesLoggerByCategory(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Session("session %s opened", "abc")
	KBDebug("validated %d genera", 42)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if entries[0].LoggerName != "session" {
		t.Fatalf("LoggerName = %q, want session", entries[0].LoggerName)
	}
	if entries[0].Message != "session abc opened" {
		t.Fatalf("Message = %q", entries[0].Message)
	}
	if entries[1].LoggerName != "kb" {
		t.Fatalf("LoggerName = %q, want kb", entries[1].LoggerName)
	}
}

func TestGet_DisabledCategoryIsNop(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	mu.Lock()
	root = zap.New(core)
	enabled = map[string]bool{"scoring": false}
	perCat = map[Category]*zap.SugaredLogger{}
	mu.Unlock()
	defer func() {
		SetLogger(nil)
		mu.Lock()
		enabled = nil
		mu.Unlock()
	}()

	Scoring("should vanish")
	Recommend("should appear")

	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1 (scoring disabled)", logs.Len())
	}
	if logs.All()[0].LoggerName != "recommend" {
		t.Fatalf("LoggerName = %q, want recommend", logs.All()[0].LoggerName)
	}
}

func TestUninitializedLoggingIsSilent(t *testing.T) {
	SetLogger(nil)
	// Must not panic or write anywhere.
	Boot("boot message")
	Session("session message")
	Sync()
}
