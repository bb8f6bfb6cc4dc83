package line

import (
	"errors"
	"testing"
)

var errBoom = errors.New("boom")

func fakeParse(s string) (*Line, error) {
	return &Line{Notes: []LineNote{}}, nil
}

func TestSourceAllParsesEveryEntry(t *testing.T) {
	src := NewSource(fakeParse)
	lines, err := src.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(lines) != len(builtinLineText) {
		t.Fatalf("len(lines) = %d, want %d", len(lines), len(builtinLineText))
	}
}

func TestSourceOutsideOfTheKeyPrefixesLeadIn(t *testing.T) {
	var captured []string
	src := NewSource(func(s string) (*Line, error) {
		captured = append(captured, s)
		return &Line{}, nil
	})
	if _, err := src.OutsideOfTheKey(); err != nil {
		t.Fatalf("OutsideOfTheKey: %v", err)
	}
	if len(captured) != len(builtinOutsideOfKeyLineText) {
		t.Fatalf("len(captured) = %d, want %d", len(captured), len(builtinOutsideOfKeyLineText))
	}
	for _, s := range captured {
		if len(s) < len(outsideOfKeyPrefix) || s[:len(outsideOfKeyPrefix)] != outsideOfKeyPrefix {
			t.Fatalf("entry %q missing lead-in prefix", s)
		}
	}
}

func TestSourcePropagatesParseError(t *testing.T) {
	src := NewSource(func(s string) (*Line, error) {
		return nil, errBoom
	})
	if _, err := src.All(); err != errBoom {
		t.Fatalf("All: got %v, want errBoom", err)
	}
}
