package quizdata

import "testing"

func TestBySlugResolvesEverySlug(t *testing.T) {
	for _, slug := range Slugs() {
		quiz, ok := BySlug(slug)
		if !ok {
			t.Fatalf("expected definition for %q", slug)
		}
		if len(quiz.Questions) == 0 {
			t.Fatalf("quiz %q has no questions", slug)
		}
	}
	if _, ok := BySlug("stopbang"); !ok {
		t.Fatalf("expected storage spelling of STOP-BANG to resolve")
	}
	if _, ok := BySlug("unknown"); ok {
		t.Fatalf("expected unknown slug to miss")
	}
}

func TestQuestionAndOptionUniqueness(t *testing.T) {
	for _, slug := range Slugs() {
		quiz, _ := BySlug(slug)
		seenQ := make(map[string]bool)
		for _, q := range quiz.Questions {
			if seenQ[q.ID] {
				t.Fatalf("quiz %q: duplicate question id %q", slug, q.ID)
			}
			seenQ[q.ID] = true
			seenV := make(map[string]bool)
			for _, opt := range q.Options {
				v := opt.Value.String()
				if seenV[v] {
					t.Fatalf("quiz %q question %q: duplicate option value %q", slug, q.ID, v)
				}
				seenV[v] = true
			}
		}
	}
}

func TestMaxScores(t *testing.T) {
	cases := []struct {
		slug string
		want int
	}{
		{SlugEpworth, 24},
		{SlugStopBang, 8},
		{SlugPSQI, 21},
		{SlugPersonality, 0}, // Likert options carry no table weight
	}
	for _, c := range cases {
		quiz, _ := BySlug(c.slug)
		if got := MaxScore(quiz); got != c.want {
			t.Fatalf("MaxScore(%q) = %d, want %d", c.slug, got, c.want)
		}
	}
}

func TestStorageSlug(t *testing.T) {
	if got := StorageSlug(SlugStopBang); got != "stopbang" {
		t.Fatalf("StorageSlug(stop_bang) = %q", got)
	}
	if got := StorageSlug(SlugEpworth); got != SlugEpworth {
		t.Fatalf("StorageSlug(epworth) = %q", got)
	}
}

func TestPersonalityShape(t *testing.T) {
	statements := PersonalityStatements()
	if len(statements) != 20 {
		t.Fatalf("expected 20 statements, got %d", len(statements))
	}
	categories := PersonalityCategories()
	if len(categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(categories))
	}
	// Bands must tile 0-100 without gaps.
	next := 0
	for _, c := range categories {
		if c.Min != next {
			t.Fatalf("category %q starts at %d, expected %d", c.ID, c.Min, next)
		}
		next = c.Max + 1
	}
	if next != 101 {
		t.Fatalf("categories end at %d, expected 100", next-1)
	}
}
