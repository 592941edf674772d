package engine

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/consteval"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/pool"
	"lumen/internal/query"
)

// Build implements query.Builder. It is the concrete dispatch spec.md
// §4.1 leaves abstract: given an already-removed IndexedEntry, produce
// its canonical PrivMetaPayload (and, for a constant, the hir.ExprID its
// evaluated body came from).
func (e *Engine) Build(entry *query.IndexedEntry) (query.PrivMetaPayload, hir.ExprID, error) {
	switch entry.Indexed.Kind {
	case query.IndexedEnum:
		return query.PrivMetaPayload{
			Kind: query.PrivEnum,
			Hash: hashItem(e.Items, e.Strs, entry.Meta.Item),
		}, hir.NoExprID, nil

	case query.IndexedStruct:
		return query.PrivMetaPayload{
			Kind:    query.PrivStruct,
			Hash:    hashItem(e.Items, e.Strs, entry.Meta.Item),
			Variant: query.StructVariant{Kind: query.VariantUnit},
		}, hir.NoExprID, nil

	case query.IndexedVariant:
		enumMeta, err := e.QEngine.QueryMeta(entry.Meta.Location, entry.Indexed.Enum, query.UsedUsed)
		if err != nil {
			return query.PrivMetaPayload{}, hir.NoExprID, err
		}
		return query.PrivMetaPayload{
			Kind:     query.PrivVariant,
			Hash:     hashItem(e.Items, e.Strs, entry.Meta.Item),
			EnumItem: entry.Indexed.Enum,
			EnumHash: enumMeta.Payload.Hash,
			Index:    entry.Indexed.VariantIndex,
		}, hir.NoExprID, nil

	case query.IndexedFunction, query.IndexedInstanceFunction:
		return query.PrivMetaPayload{
			Kind:    query.PrivFunction,
			Hash:    hashItem(e.Items, e.Strs, entry.Meta.Item),
			IsTest:  entry.Indexed.IsTest,
			IsBench: entry.Indexed.IsBench,
		}, hir.NoExprID, nil

	case query.IndexedClosure:
		return query.PrivMetaPayload{
			Kind:     query.PrivClosure,
			Hash:     hashItem(e.Items, e.Strs, entry.Meta.Item),
			Captures: entry.Indexed.Captures,
			Move:     entry.Indexed.Move,
		}, hir.NoExprID, nil

	case query.IndexedAsyncBlock:
		return query.PrivMetaPayload{
			Kind:     query.PrivAsyncBlock,
			Hash:     hashItem(e.Items, e.Strs, entry.Meta.Item),
			Captures: entry.Indexed.Captures,
			Move:     entry.Indexed.Move,
		}, hir.NoExprID, nil

	case query.IndexedConst:
		return e.buildConst(entry)

	case query.IndexedConstFn:
		return query.PrivMetaPayload{
			Kind:      query.PrivConstFn,
			ConstFnID: entry.Indexed.AST,
		}, hir.NoExprID, nil

	case query.IndexedImport:
		return query.PrivMetaPayload{
			Kind:   query.PrivImport,
			Import: entry.Indexed.Import,
		}, hir.NoExprID, nil

	case query.IndexedModule:
		return query.PrivMetaPayload{Kind: query.PrivModule}, hir.NoExprID, nil

	default:
		return query.PrivMetaPayload{}, hir.NoExprID, &Error{
			Code: diag.StructuralMissingID,
			Span: entry.Meta.Location,
			Msg:  fmt.Sprintf("unrecognized indexed kind %d", entry.Indexed.Kind),
		}
	}
}

// allocExpr appends value to the HIR expr arena and stamps its own ID onto
// the stored copy, matching DeclareLocal's convention for hir.Local.
func (e *Engine) allocExpr(value hir.Expr) hir.ExprID {
	id := hir.ExprID(e.HIRExprs.Alloc(value))
	e.HIRExprs.Get(uint32(id)).ID = id
	return id
}

// buildConst lowers the const's ast-level body to HIR and evaluates it,
// bridging query.Indexed.ConstExpr's ast.ExprID (the fixed external
// parser-output shape, spec.md §6) to the hir.ExprID consteval.Evaluator
// requires (spec.md §4.6).
func (e *Engine) buildConst(entry *query.IndexedEntry) (query.PrivMetaPayload, hir.ExprID, error) {
	hirID, err := e.lowerExpr(entry.Indexed.ConstModule, pool.NoItemID, entry.Indexed.ConstExpr)
	if err != nil {
		return query.PrivMetaPayload{}, hir.NoExprID, err
	}

	eval := consteval.New(e.HIRExprs, e.Literals, e.QEngine, e.Config.ConstBudget)
	value, err := eval.Eval(entry.Meta.Location, hirID)
	if err != nil {
		return query.PrivMetaPayload{}, hir.NoExprID, err
	}

	return query.PrivMetaPayload{Kind: query.PrivConst, Value: value}, hirID, nil
}

// lowerExpr translates one ast.Expr node (and, recursively, every node it
// references) into the HIR arena. module/implItem give the QueryPath
// context a path-shaped sub-expression needs; see pathconvert.Convert.
//
// Only the expression shapes a constant body can actually contain are
// handled: literals, tuples, field access, and item/path references.
// ast.ExprIdent with no resolved Local is treated as a single-segment
// path — a const body can reference another named item this way without
// the external parser having to build a full ast.Path for it.
func (e *Engine) lowerExpr(module pool.ModID, implItem pool.ItemID, id ast.ExprID) (hir.ExprID, error) {
	node := e.AstExprs.Get(uint32(id))
	if node == nil {
		return hir.NoExprID, &Error{Code: diag.StructuralMissingID, Msg: fmt.Sprintf("no ast expression recorded for id %d", id)}
	}

	switch node.Kind {
	case ast.ExprLiteral:
		return e.allocExpr(hir.Expr{Kind: hir.ExprLiteral, Span: node.Span, Literal: node.Literal}), nil

	case ast.ExprTuple:
		elems := make([]hir.ExprID, 0, len(node.Elements))
		for _, elID := range node.Elements {
			lowered, err := e.lowerExpr(module, implItem, elID)
			if err != nil {
				return hir.NoExprID, err
			}
			elems = append(elems, lowered)
		}
		return e.allocExpr(hir.Expr{Kind: hir.ExprTuple, Span: node.Span, Elements: elems}), nil

	case ast.ExprFieldAccess:
		obj, err := e.lowerExpr(module, implItem, node.Object)
		if err != nil {
			return hir.NoExprID, err
		}
		return e.allocExpr(hir.Expr{
			Kind:   hir.ExprFieldAccess,
			Span:   node.Span,
			Object: obj,
			Field:  node.Field,
		}), nil

	case ast.ExprPath:
		path := e.AstPaths.Get(uint32(node.Path))
		if path == nil {
			return hir.NoExprID, &Error{Code: diag.StructuralMissingID, Msg: fmt.Sprintf("no ast path recorded for id %d", node.Path)}
		}
		item, err := e.PathConverter.Convert(node.Span, path, query.UsedUsed)
		if err != nil {
			return hir.NoExprID, err
		}
		return e.allocExpr(hir.Expr{Kind: hir.ExprItem, Span: node.Span, Item: item}), nil

	case ast.ExprIdent:
		if node.Local.IsValid() {
			hirLocal, ok := e.locals[node.Local]
			if !ok {
				return hir.NoExprID, &Error{Code: diag.StructuralMissingID, Span: node.Span, Msg: "ident resolves to an undeclared local"}
			}
			return e.allocExpr(hir.Expr{Kind: hir.ExprLocal, Span: node.Span, Local: hirLocal}), nil
		}
		pathID := e.NewPath(module, implItem, node.Span, ast.PathSegment{Kind: ast.SegIdent, Ident: node.Ident, Span: node.Span})
		path := e.AstPaths.Get(uint32(pathID))
		item, err := e.PathConverter.Convert(node.Span, path, query.UsedUsed)
		if err != nil {
			return hir.NoExprID, err
		}
		return e.allocExpr(hir.Expr{Kind: hir.ExprItem, Span: node.Span, Item: item}), nil

	default:
		return hir.NoExprID, &Error{Code: diag.StructuralMissingID, Span: node.Span, Msg: fmt.Sprintf("expression kind %d cannot appear in a constant body", node.Kind)}
	}
}
