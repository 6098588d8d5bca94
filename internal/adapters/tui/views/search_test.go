package views

import (
	"testing"

	"nodedex/internal/application/search"
)

func TestNextModeCycles(t *testing.T) {
	order := []search.Mode{search.ModeOR, search.ModeAND, search.ModeFuzzy, search.ModeOR}
	for i := 0; i < len(order)-1; i++ {
		if got := nextMode(order[i]); got != order[i+1] {
			t.Errorf("nextMode(%s) = %s, want %s", order[i], got, order[i+1])
		}
	}
}

func TestNextSourceCycles(t *testing.T) {
	order := []search.Source{
		search.SourceAll, search.SourceCore, search.SourceCommunity,
		search.SourceVerified, search.SourceAll,
	}
	for i := 0; i < len(order)-1; i++ {
		if got := nextSource(order[i]); got != order[i+1] {
			t.Errorf("nextSource(%s) = %s, want %s", order[i], got, order[i+1])
		}
	}
}

func TestPaginatorKeepsCursorOnPage(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(25)

	for i := 0; i < 12; i++ {
		p.CursorDown()
	}
	if p.Cursor() != 12 {
		t.Fatalf("cursor = %d, want 12", p.Cursor())
	}
	if p.CurrentPage() != 2 {
		t.Errorf("page = %d, want 2", p.CurrentPage())
	}
	start, end := p.VisibleRange()
	if start != 10 || end != 20 {
		t.Errorf("visible range = [%d, %d), want [10, 20)", start, end)
	}

	p.NextPage()
	start, end = p.VisibleRange()
	if start != 20 || end != 25 {
		t.Errorf("last page range = [%d, %d), want [20, 25)", start, end)
	}

	// Shrinking the result set clamps the cursor
	p.SetTotal(5)
	if p.Cursor() != 4 {
		t.Errorf("cursor after shrink = %d, want 4", p.Cursor())
	}
	if p.CurrentPage() != 1 {
		t.Errorf("page after shrink = %d, want 1", p.CurrentPage())
	}
}
