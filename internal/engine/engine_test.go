package engine

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/importresolve"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

var pub = pool.Visibility{Kind: pool.VisPublic}

func TestRunBuildsFunctionAndVisitsMeta(t *testing.T) {
	e := New(DefaultConfig())
	visitor := &CollectingVisitor{}
	e.Visitor = visitor

	root := e.Mods.Root()
	e.RegisterFunction(source.Span{}, root, ast.NoDeclID, "main", pub, query.CallConvPlain, false, false)

	e.Run()

	if e.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", e.Diagnostics())
	}
	if len(visitor.Metas) != 1 {
		t.Fatalf("expected exactly one visited meta, got %d", len(visitor.Metas))
	}
	if visitor.Metas[0].Payload.Kind != query.PrivFunction {
		t.Fatalf("expected PrivFunction, got %+v", visitor.Metas[0].Payload)
	}
}

func TestRegisterConstEvaluatesLiteral(t *testing.T) {
	e := New(DefaultConfig())
	root := e.Mods.Root()

	file := e.Files.AddVirtual("const.lm", []byte("42"))
	span := source.Span{File: file, Start: 0, End: 2}
	lit := e.Literals.ResolveInt(span)
	exprID := ast.ExprID(e.AstExprs.Allocate(ast.Expr{Kind: ast.ExprLiteral, Span: span, Literal: lit}))
	e.AstExprs.Get(uint32(exprID)).ID = exprID

	item := e.RegisterConst(span, root, ast.NoDeclID, "MAX", pub, exprID)

	meta, err := e.QEngine.QueryMeta(span, item, query.UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Payload.Kind != query.PrivConst {
		t.Fatalf("expected PrivConst, got %+v", meta.Payload)
	}
	if meta.Payload.Value.Kind != query.ConstInt {
		t.Fatalf("expected ConstInt, got %+v", meta.Payload.Value)
	}
}

func TestConstBudgetExceededPropagates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConstBudget = 3
	e := New(cfg)
	root := e.Mods.Root()

	span := source.Span{}
	cur := ast.ExprID(e.AstExprs.Allocate(ast.Expr{Kind: ast.ExprLiteral, Span: span, Literal: e.Literals.ResolveBool(span, true)}))
	e.AstExprs.Get(uint32(cur)).ID = cur
	for i := 0; i < 5; i++ {
		next := ast.ExprID(e.AstExprs.Allocate(ast.Expr{Kind: ast.ExprTuple, Span: span, Elements: []ast.ExprID{cur}}))
		e.AstExprs.Get(uint32(next)).ID = next
		cur = next
	}

	item := e.RegisterConst(span, root, ast.NoDeclID, "DEEP", pub, cur)

	_, err := e.QEngine.QueryMeta(span, item, query.UsedUsed)
	if err == nil {
		t.Fatalf("expected a budget error")
	}
	code, _, _ := errorDetails(err)
	if code != diag.ConstBudgetExceeded {
		t.Fatalf("expected ConstBudgetExceeded, got %v (%v)", code, err)
	}
}

func TestImportSelfCycleDetected(t *testing.T) {
	e := New(DefaultConfig())
	root := e.Mods.Root()
	span := source.Span{}

	target := e.ResolveItem("a")
	e.RegisterImport(span, root, "a", target, root, pub, false)

	_, _, err := e.ImportResolver.Import(span, root, target, query.UsedUsed)
	if err == nil {
		t.Fatalf("expected a cycle error")
	}
	ierr, ok := err.(*importresolve.Error)
	if !ok || ierr.Code != diag.ImportCycle {
		t.Fatalf("expected ImportCycle, got %v", err)
	}
}

func TestAmbiguousDuplicateStructIsRejected(t *testing.T) {
	e := New(DefaultConfig())
	root := e.Mods.Root()
	span := source.Span{}

	e.RegisterStruct(span, root, ast.NoDeclID, "Dup", pub)
	item := e.RegisterStruct(span, root, ast.NoDeclID, "Dup", pub)

	_, err := e.QEngine.QueryMeta(span, item, query.UsedUsed)
	if err == nil {
		t.Fatalf("expected an ambiguity error")
	}
	qerr, ok := err.(*query.Error)
	if !ok || qerr.Code != diag.ImportAmbiguousItem {
		t.Fatalf("expected ImportAmbiguousItem, got %v", err)
	}
}

func TestExplicitImportShadowsWildcard(t *testing.T) {
	e := New(DefaultConfig())
	root := e.Mods.Root()
	span := source.Span{}

	wildcardSource := e.ResolveItem("other")
	e.RegisterImportWildcard(span, root, wildcardSource, []string{"x"})

	explicitTarget := e.ResolveItem("explicit::x")
	e.RegisterImport(span, root, "x", explicitTarget, root, pub, false)

	item := e.ResolveItem("x")
	meta, err := e.QEngine.QueryMeta(span, item, query.UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Payload.Kind != query.PrivImport {
		t.Fatalf("expected PrivImport, got %+v", meta.Payload)
	}
	if meta.Payload.Import.Target != explicitTarget {
		t.Fatalf("expected the explicit import to win over the wildcard, got target %d", meta.Payload.Import.Target)
	}
}

func TestUnusedEntrySweepWarns(t *testing.T) {
	e := New(DefaultConfig())
	root := e.Mods.Root()
	span := source.Span{}

	e.RegisterStruct(span, root, ast.NoDeclID, "Unreferenced", pool.Visibility{Kind: pool.VisInherited})

	e.Run()

	diags := e.Diagnostics()
	if len(diags) != 1 || diags[0].Code != diag.WarnUnusedEntry {
		t.Fatalf("expected a single WarnUnusedEntry diagnostic, got %+v", diags)
	}
}
