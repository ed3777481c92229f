package gapbuffer

import "testing"

func TestSetSelection(t *testing.T) {
	b := mustBuffer(t, "one\ntwo\nthree")
	b.SetSelection(0, 1, 1, 2, false)

	sel := b.Selection()
	if !sel.Active {
		t.Fatal("selection should be active")
	}
	if sel.Start.Offset != 1 || sel.End.Offset != 6 {
		t.Errorf("expected offsets 1..6, got %d..%d", sel.Start.Offset, sel.End.Offset)
	}
	if sel.Rectangular {
		t.Error("selection should not be rectangular")
	}
}

func TestSelectionClampsEndpoints(t *testing.T) {
	b := mustBuffer(t, "short")
	b.SetSelection(-1, -1, 99, 99, false)

	sel := b.Selection()
	if sel.Start.Offset != 0 {
		t.Errorf("start should clamp to 0, got %d", sel.Start.Offset)
	}
	if sel.End.Offset != 5 {
		t.Errorf("end should clamp to 5, got %d", sel.End.Offset)
	}
}

func TestSelectedText(t *testing.T) {
	b := mustBuffer(t, "Hello, World!")
	b.SetSelection(0, 7, 0, 12, false)

	got, err := b.SelectedText()
	if err != nil {
		t.Fatalf("SelectedText failed: %v", err)
	}
	if got != "World" {
		t.Errorf("expected %q, got %q", "World", got)
	}
}

func TestSelectedTextReversedEndpoints(t *testing.T) {
	// End before start is allowed; retrieval normalizes the order.
	b := mustBuffer(t, "Hello, World!")
	b.SetSelection(0, 12, 0, 7, false)

	got, err := b.SelectedText()
	if err != nil {
		t.Fatalf("SelectedText failed: %v", err)
	}
	if got != "World" {
		t.Errorf("expected %q, got %q", "World", got)
	}
}

func TestSelectedTextInactive(t *testing.T) {
	b := mustBuffer(t, "abc")
	got, err := b.SelectedText()
	if err != nil {
		t.Fatalf("inactive selection should not error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSelectedTextAfterShrinkingEdit(t *testing.T) {
	b := mustBuffer(t, "Hello, World!")
	b.SetSelection(0, 7, 0, 13, false)
	if err := b.DeleteRange(5, 13); err != nil {
		t.Fatal(err)
	}

	got, err := b.SelectedText()
	if err != nil {
		t.Fatalf("SelectedText after edit failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected clamped-empty selection, got %q", got)
	}
}

func TestClearSelection(t *testing.T) {
	b := mustBuffer(t, "abc")
	b.SetSelection(0, 0, 0, 3, true)
	b.ClearSelection()

	sel := b.Selection()
	if sel.Active || sel.Rectangular || sel.Start.Offset != 0 || sel.End.Offset != 0 {
		t.Errorf("ClearSelection left state behind: %+v", sel)
	}
}

func TestRectangularFlagCarried(t *testing.T) {
	// The rectangular flag is stored but extraction stays linear.
	b := mustBuffer(t, "ab\ncd")
	b.SetSelection(0, 0, 1, 1, true)

	sel := b.Selection()
	if !sel.Rectangular {
		t.Fatal("rectangular flag should be carried")
	}
	got, err := b.SelectedText()
	if err != nil {
		t.Fatal(err)
	}
	if got != "ab\nc" {
		t.Errorf("expected linear extraction %q, got %q", "ab\nc", got)
	}
}
