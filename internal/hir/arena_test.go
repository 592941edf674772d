package hir

import "testing"

func TestArenaAllocAndGet(t *testing.T) {
	a := NewArena[Expr](4)
	id := a.Alloc(Expr{Kind: ExprLiteral})
	got := a.Get(id)
	if got == nil || got.Kind != ExprLiteral {
		t.Fatalf("expected to read back allocated expr")
	}
	if a.Len() != 1 {
		t.Fatalf("expected len 1, got %d", a.Len())
	}
}

func TestArenaGetZeroIndexIsNil(t *testing.T) {
	a := NewArena[Expr](0)
	if a.Get(0) != nil {
		t.Fatalf("expected nil for index 0")
	}
}

func TestArenaPointerStableAcrossGrowth(t *testing.T) {
	a := NewArena[Expr](0)
	first := a.Alloc(Expr{Kind: ExprLocal})
	ptr := a.Get(first)
	for i := 0; i < 100; i++ {
		a.Alloc(Expr{Kind: ExprTuple})
	}
	if a.Get(first) != ptr {
		t.Fatalf("expected pointer to stay stable across arena growth")
	}
}
