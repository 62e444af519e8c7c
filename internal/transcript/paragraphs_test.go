package transcript

import (
	"strings"
	"testing"

	"github.com/patrickprogramme/ytscribe/internal/language"
	"github.com/patrickprogramme/ytscribe/pkg/model"
)

func TestBuildParagraphs_SplitOnTerminator(t *testing.T) {
	cues := []model.Cue{
		{Text: "Hello ", Start: 1.2},
		{Text: "world. ", Start: 3.4},
		{Text: "Next sentence.", Start: 5.9},
	}

	ps := BuildParagraphs(cues, language.English)
	if len(ps) != 2 {
		t.Fatalf("got %d paragraphs, want 2: %#v", len(ps), ps)
	}
	if ps[0].Text != "Hello world." {
		t.Errorf("paragraph 0 = %q; want %q", ps[0].Text, "Hello world.")
	}
	if ps[0].Start != 1 {
		t.Errorf("paragraph 0 start = %d; want 1 (ancre du premier cue)", ps[0].Start)
	}
	if ps[1].Text != "Next sentence." {
		t.Errorf("paragraph 1 = %q; want %q", ps[1].Text, "Next sentence.")
	}
	if ps[1].Start != 5 {
		t.Errorf("paragraph 1 start = %d; want 5", ps[1].Start)
	}
}

func TestBuildParagraphs_LengthBound(t *testing.T) {
	// aucun cue ne porte de ponctuation terminale : seule la borne de
	// longueur ferme les paragraphes
	word := strings.Repeat("a", 60)
	var cues []model.Cue
	for i := 0; i < 12; i++ {
		cues = append(cues, model.Cue{Text: word, Start: float64(i)})
	}

	ps := BuildParagraphs(cues, language.English)
	if len(ps) < 2 {
		t.Fatalf("got %d paragraphs, want at least 2 (borne 500 dépassée)", len(ps))
	}
	for i, p := range ps {
		if p.Text == "" {
			t.Errorf("paragraph %d is empty", i)
		}
	}
	// le premier paragraphe se ferme dès que l'accumulateur dépasse la borne
	if got := len([]rune(ps[0].Text)); got <= 500 || got > 600 {
		t.Errorf("paragraph 0 rune length = %d; want just above 500", got)
	}
}

func TestBuildParagraphs_FullWidthTerminators(t *testing.T) {
	cues := []model.Cue{
		{Text: "これは", Start: 0},
		{Text: "テストです。", Start: 2},
		{Text: "続きます!", Start: 4},
	}

	ps := BuildParagraphs(cues, language.Japanese)
	if len(ps) != 2 {
		t.Fatalf("got %d paragraphs, want 2: %#v", len(ps), ps)
	}
	if ps[0].Text != "これはテストです。" {
		t.Errorf("paragraph 0 = %q (les espaces entre kana doivent disparaître)", ps[0].Text)
	}
}

func TestBuildParagraphs_SkipsEmptyAndCleanedEmpty(t *testing.T) {
	cues := []model.Cue{
		{Text: "   ", Start: 0},
		{Text: "[音楽]", Start: 1},
		{Text: "♪ ♪", Start: 2},
	}

	if ps := BuildParagraphs(cues, language.Japanese); len(ps) != 0 {
		t.Fatalf("got %d paragraphs, want 0: %#v", len(ps), ps)
	}
}

func TestBuildParagraphs_FinalFlush(t *testing.T) {
	cues := []model.Cue{
		{Text: "no terminal punctuation here", Start: 7},
	}

	ps := BuildParagraphs(cues, language.English)
	if len(ps) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(ps))
	}
	if ps[0].Text != "no terminal punctuation here" {
		t.Errorf("paragraph = %q", ps[0].Text)
	}
	if ps[0].Start != 7 {
		t.Errorf("start = %d; want 7", ps[0].Start)
	}
}

func TestBuildParagraphs_AnchorIsFirstMergedCue(t *testing.T) {
	cues := []model.Cue{
		{Text: "first part", Start: 10},
		{Text: "second part.", Start: 20},
		{Text: "new paragraph.", Start: 30},
	}

	ps := BuildParagraphs(cues, language.English)
	if len(ps) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(ps))
	}
	if ps[0].Start != 10 || ps[1].Start != 30 {
		t.Errorf("anchors = %d, %d; want 10, 30", ps[0].Start, ps[1].Start)
	}
}
