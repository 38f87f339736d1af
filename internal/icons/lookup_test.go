package icons

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRules(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icons.rules")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	return path
}

func TestResolveBuiltin(t *testing.T) {
	t.Parallel()

	table := NewTable()
	cases := map[string]Icon{
		"Chicken, rooster": {Glyph: "🐔", Name: "Chicken"},
		"Dog":              {Glyph: "🐕", Name: "Dog"},
		"Male speech":      {Glyph: "🗣️", Name: "Speech"},
		"ROOSTER":          {Glyph: "🐓", Name: "Rooster"},
		"Siren":            {Glyph: "🚨", Name: "Siren"},
		"Vehicle":          Unknown,
		"":                 Unknown,
		"   ":              Unknown,
	}
	for label, want := range cases {
		if got := table.Resolve(label); got != want {
			t.Fatalf("Resolve(%q) = %+v, want %+v", label, got, want)
		}
	}
}

func TestResolveKeyContainedInLabelOrLabelInKey(t *testing.T) {
	t.Parallel()

	table := NewTable()
	if got := table.Resolve("Heavy rain on roof"); got.Name != "Rain" {
		t.Fatalf("expected rain, got %+v", got)
	}
	if got := table.Resolve("heli"); got.Name != "Helicopter" {
		t.Fatalf("expected helicopter for a key prefix, got %+v", got)
	}
}

func TestLookupImplementsPort(t *testing.T) {
	t.Parallel()

	glyph, name := NewTable().Lookup("Piano")
	if glyph != "🎹" || name != "Piano" {
		t.Fatalf("unexpected lookup: %q %q", glyph, name)
	}
}

func TestNilTableUsesBuiltin(t *testing.T) {
	t.Parallel()

	var table *Table
	if got := table.Resolve("dog"); got.Name != "Dog" {
		t.Fatalf("unexpected icon: %+v", got)
	}
}

func TestLoadTableRulesOverrideBuiltin(t *testing.T) {
	t.Parallel()

	path := writeRules(t, `
# literal override
dog => 🐶 Puppy
# regex with custom name
m/\bhen\b/ 🐔 Hen
bell => 🔔
`)

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := table.Resolve("Dog"); got != (Icon{Glyph: "🐶", Name: "Puppy"}) {
		t.Fatalf("expected literal override, got %+v", got)
	}
	if got := table.Resolve("Hen clucking"); got != (Icon{Glyph: "🐔", Name: "Hen"}) {
		t.Fatalf("expected regex rule, got %+v", got)
	}
	if got := table.Resolve("Church bell"); got != (Icon{Glyph: "🔔", Name: "🔔"}) {
		t.Fatalf("expected glyph-only rule, got %+v", got)
	}
	if got := table.Resolve("Car"); got.Name != "Car" {
		t.Fatalf("expected builtin fallthrough, got %+v", got)
	}
}

func TestLoadTableMissingOrBlankPath(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.rules")} {
		table, err := LoadTable(path)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", path, err)
		}
		if got := table.Resolve("cat"); got.Name != "Cat" {
			t.Fatalf("unexpected icon: %+v", got)
		}
	}
}

func TestLoadTableInvalidRules(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unsupported":  "not a rule\n",
		"empty key":    " => 🐶 Dog\n",
		"empty icon":   "dog => \n",
		"bad regex":    "m/(unclosed/ 🐶 Dog\n",
		"unterminated": "m/dog 🐶 Dog\n",
	}
	for name, contents := range cases {
		if _, err := LoadTable(writeRules(t, contents)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}
