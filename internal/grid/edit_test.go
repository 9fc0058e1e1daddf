package grid

import (
	"context"
	"errors"
	"testing"

	"github.com/kiselovlex/keye-interactive-grid/internal/config"
	"github.com/kiselovlex/keye-interactive-grid/internal/dataset"
	"github.com/kiselovlex/keye-interactive-grid/internal/store"
)

func newTestGrid(t *testing.T) (*Grid, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	m := NewModel(testDataset(), nil)
	return New(config.Default(), m, st), st
}

func TestEditCurrencyCellLifecycle(t *testing.T) {
	g, _ := newTestGrid(t)
	ctx := context.Background()

	p := dataset.Position{Row: 2, Col: 1} // currency cell, raw "1500"
	if err := g.StartEdit(p); err != nil {
		t.Fatalf("start: %v", err)
	}
	if g.Edit().Value() != "1500" {
		t.Fatalf("seed value = %q, want 1500", g.Edit().Value())
	}

	g.Edit().UpdateValue("abc")
	if g.Edit().Valid() {
		t.Fatal("abc accepted for a currency cell")
	}
	if g.Edit().Error() == "" {
		t.Fatal("invalid draft has no error")
	}

	g.Edit().UpdateValue("2500")
	if !g.Edit().Valid() {
		t.Fatal("2500 rejected")
	}
	if g.Edit().Error() != "" {
		t.Fatal("error not cleared on valid value")
	}

	if err := g.SaveEdit(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if g.Edit() != nil {
		t.Fatal("session survived successful save")
	}
	v, _ := g.Model().ValueAt(p)
	if v != 2500.0 {
		t.Fatalf("committed value = %v (%T), want float 2500", v, v)
	}
}

func TestSaveEditNoOpWhenInvalid(t *testing.T) {
	g, _ := newTestGrid(t)
	p := dataset.Position{Row: 0, Col: 1}
	if err := g.StartEdit(p); err != nil {
		t.Fatal(err)
	}
	g.Edit().UpdateValue("not a number")
	if err := g.SaveEdit(context.Background()); err != nil {
		t.Fatalf("invalid save should be a no-op, got %v", err)
	}
	if g.Edit() == nil {
		t.Fatal("session destroyed by invalid save")
	}
	v, _ := g.Model().ValueAt(p)
	if v != "1000" {
		t.Fatalf("value = %v, want untouched", v)
	}
}

func TestSaveEditFailureKeepsSessionOpen(t *testing.T) {
	g, st := newTestGrid(t)
	p := dataset.Position{Row: 0, Col: 1}
	if err := g.StartEdit(p); err != nil {
		t.Fatal(err)
	}
	g.Edit().UpdateValue("42")
	st.WriteErr = errors.New("write refused")

	err := g.SaveEdit(context.Background())
	if err == nil {
		t.Fatal("expected save failure")
	}
	if g.Edit() == nil {
		t.Fatal("session destroyed by failed save")
	}
	if g.Edit().Saving() {
		t.Fatal("saving flag stuck after failure")
	}
	if g.Edit().Error() != "write refused" {
		t.Fatalf("error = %q, want store message", g.Edit().Error())
	}
	// rollback restored the pre-save value
	v, _ := g.Model().ValueAt(p)
	if v != "1000" {
		t.Fatalf("value = %v, want rollback to 1000", v)
	}

	// retry succeeds after the store recovers
	st.WriteErr = nil
	if err := g.SaveEdit(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if g.Edit() != nil {
		t.Fatal("session survived successful retry")
	}
}

func TestCancelEditDiscardsDraft(t *testing.T) {
	g, _ := newTestGrid(t)
	p := dataset.Position{Row: 0, Col: 0}
	if err := g.StartEdit(p); err != nil {
		t.Fatal(err)
	}
	g.Edit().UpdateValue("Doodads")
	g.CancelEdit()
	if g.Edit() != nil {
		t.Fatal("session survived cancel")
	}
	v, _ := g.Model().ValueAt(p)
	if v != "Widgets" {
		t.Fatalf("value = %v, want untouched", v)
	}
}

func TestStartEditWhileOpenFails(t *testing.T) {
	g, _ := newTestGrid(t)
	if err := g.StartEdit(dataset.Position{Row: 0, Col: 0}); err != nil {
		t.Fatal(err)
	}
	err := g.StartEdit(dataset.Position{Row: 1, Col: 1})
	if !errors.Is(err, ErrEditOpen) {
		t.Fatalf("err = %v, want ErrEditOpen", err)
	}
}

func TestTextCellAcceptsAnything(t *testing.T) {
	g, _ := newTestGrid(t)
	if err := g.StartEdit(dataset.Position{Row: 0, Col: 0}); err != nil {
		t.Fatal(err)
	}
	g.Edit().UpdateValue("anything at all !@#")
	if !g.Edit().Valid() {
		t.Fatal("text cell rejected a string")
	}
}

func TestNumericCellAcceptsEmpty(t *testing.T) {
	g, _ := newTestGrid(t)
	if err := g.StartEdit(dataset.Position{Row: 0, Col: 1}); err != nil {
		t.Fatal(err)
	}
	g.Edit().UpdateValue("")
	if !g.Edit().Valid() {
		t.Fatal("empty draft rejected for numeric cell")
	}
}
