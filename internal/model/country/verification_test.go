package country

import "testing"

func TestParseValidCountry(t *testing.T) {
	got := Parse("🇹🇭 Thailand")

	if got.Kind != KindValid {
		t.Fatalf("expected kind %s, got %s", KindValid, got.Kind)
	}
	if got.FlagEmoji != "🇹🇭" {
		t.Fatalf("unexpected flag: %q", got.FlagEmoji)
	}
	if got.CountryName != "Thailand" {
		t.Fatalf("unexpected country name: %q", got.CountryName)
	}
}

func TestParseCorrection(t *testing.T) {
	got := Parse("Did you mean: 🇹🇭 Thailand?")

	if got.Kind != KindCorrection {
		t.Fatalf("expected kind %s, got %s", KindCorrection, got.Kind)
	}
	if got.CountryName != "Thailand" {
		t.Fatalf("unexpected country name: %q", got.CountryName)
	}
	if got.FlagEmoji != "🇹🇭" {
		t.Fatalf("unexpected flag: %q", got.FlagEmoji)
	}
}

func TestParseCorrectionWithoutFlag(t *testing.T) {
	got := Parse("Did you mean: Thailand?")

	if got.Kind != KindCorrection {
		t.Fatalf("expected kind %s, got %s", KindCorrection, got.Kind)
	}
	if got.CountryName != "Thailand" {
		t.Fatalf("unexpected country name: %q", got.CountryName)
	}
	if got.FlagEmoji != "" {
		t.Fatalf("expected empty flag, got %q", got.FlagEmoji)
	}
}

func TestParseInvalid(t *testing.T) {
	got := Parse("Invalid country name.")

	if got.Kind != KindInvalid {
		t.Fatalf("expected kind %s, got %s", KindInvalid, got.Kind)
	}
	if got.CountryName != "" || got.FlagEmoji != "" {
		t.Fatalf("expected empty fields, got %+v", got)
	}
}

func TestParseTextWithoutFlag(t *testing.T) {
	got := Parse("Thailand")

	if got.Kind != KindValid {
		t.Fatalf("expected kind %s, got %s", KindValid, got.Kind)
	}
	if got.CountryName != "Thailand" {
		t.Fatalf("unexpected country name: %q", got.CountryName)
	}
}
