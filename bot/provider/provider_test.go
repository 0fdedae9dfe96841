package provider

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want Provider
		ok   bool
	}{
		{"hertz", Hertz, true},
		{"digitalocean", DigitalOcean, true},
		{"Hertz", "", false},
		{"aws", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.raw)
		if ok != tc.ok {
			t.Fatalf("Parse(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	if Hertz.DisplayName() != "Hertz" {
		t.Fatalf("Hertz display name = %q", Hertz.DisplayName())
	}
	if DigitalOcean.DisplayName() != "Digital Ocean" {
		t.Fatalf("DigitalOcean display name = %q", DigitalOcean.DisplayName())
	}
}

func TestAllIsStableAndCopied(t *testing.T) {
	first := All()
	if len(first) != 2 || first[0] != Hertz || first[1] != DigitalOcean {
		t.Fatalf("All() = %v", first)
	}
	first[0] = "mutated"
	if second := All(); second[0] != Hertz {
		t.Fatal("All() must return a copy, not the backing slice")
	}
}
