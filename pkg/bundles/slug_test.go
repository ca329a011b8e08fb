package bundles

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Summer Beach Kit!", "summer-beach-kit"},
		{"Cozy Evening Set", "cozy-evening-set"},
		{"Déjà Vu Pack", "dj-vu-pack"},
		{"  Spaced   Out  ", "spaced-out"},
		{"already-slugged", "already-slugged"},
		{"123 Go", "123-go"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	name := "Summer Beach Kit!"
	first := Slugify(name)
	for i := 0; i < 5; i++ {
		if got := Slugify(name); got != first {
			t.Fatalf("Slugify not deterministic: %q then %q", first, got)
		}
	}
}
