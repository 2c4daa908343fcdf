package persona

import "testing"

func TestRandomBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := Random("Thailand", "man")

		if p.Age < 25 || p.Age > 35 {
			t.Fatalf("age out of range: %d", p.Age)
		}
		if len(p.Hobbies) != 2 {
			t.Fatalf("expected 2 hobbies, got %d", len(p.Hobbies))
		}
		if p.Hobbies[0] == p.Hobbies[1] {
			t.Fatalf("hobbies must be distinct, got %v", p.Hobbies)
		}
		if p.Occupation == "" {
			t.Fatal("occupation must be set")
		}
	}
}

func TestRandomDefaultsGender(t *testing.T) {
	p := Random("Japan", "")
	if p.Gender != DefaultGender {
		t.Fatalf("expected default gender %q, got %q", DefaultGender, p.Gender)
	}
}

func TestRandomKeepsCountryAndGender(t *testing.T) {
	p := Random("Japan", "man")
	if p.Country != "Japan" {
		t.Fatalf("unexpected country: %q", p.Country)
	}
	if p.Gender != "man" {
		t.Fatalf("unexpected gender: %q", p.Gender)
	}
}
