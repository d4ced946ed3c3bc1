package pipeline

import "testing"

func TestFactoryMadeIntersection(t *testing.T) {
	got := FactoryMade("plastic,wood", "plastic,steel")
	if len(got) != 1 || got[0] != "plastic" {
		t.Fatalf("expected only the shared phrase, got %v", got)
	}
}

func TestFactoryMadeBlankIndustrialList(t *testing.T) {
	if got := FactoryMade("plastic,wood", ""); got != nil {
		t.Fatalf("expected no matches for blank industrial list, got %v", got)
	}
	if got := FactoryMade("plastic,wood", "  "); got != nil {
		t.Fatalf("expected no matches for whitespace industrial list, got %v", got)
	}
}

func TestFactoryMadeTrimsPhrases(t *testing.T) {
	got := FactoryMade(" plastic , wood ", "plastic ,  steel")
	if len(got) != 1 || got[0] != "plastic" {
		t.Fatalf("expected trimmed intersection, got %v", got)
	}
}

func TestFactoryMadePreservesBucketOrder(t *testing.T) {
	got := FactoryMade("wood,steel,plastic", "plastic,steel")
	if len(got) != 2 || got[0] != "steel" || got[1] != "plastic" {
		t.Fatalf("expected bucket order [steel plastic], got %v", got)
	}
}

func TestSplitPhrases(t *testing.T) {
	got := SplitPhrases("wood, clay ,,  ")
	if len(got) != 2 || got[0] != "wood" || got[1] != "clay" {
		t.Fatalf("expected blank segments dropped, got %v", got)
	}
	if got := SplitPhrases(""); got != nil {
		t.Fatalf("expected nil for empty text, got %v", got)
	}
}
