package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("resolution_error", nil); msg == "resolution_error" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("resolution_error", nil); msg == "reference does not resolve" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code passthrough, got %q", msg)
	}
}
