package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"lumen/internal/ast"
	"lumen/internal/engine"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

// Manifest is a declarative stand-in for real lumen source: this module
// treats lexing and parsing as an external collaborator (the language's
// concrete grammar is out of scope here), so `check` drives the engine
// directly from a TOML description of the declarations a real parser
// would have produced.
type Manifest struct {
	Modules   []ManifestModule   `toml:"modules"`
	Structs   []ManifestStruct   `toml:"structs"`
	Enums     []ManifestEnum     `toml:"enums"`
	Functions []ManifestFunction `toml:"functions"`
	Consts    []ManifestConst    `toml:"consts"`
	Imports   []ManifestImport   `toml:"imports"`
}

type ManifestModule struct {
	Path       string `toml:"path"`
	Visibility string `toml:"visibility"`
}

type ManifestStruct struct {
	Module     string `toml:"module"`
	Name       string `toml:"name"`
	Visibility string `toml:"visibility"`
}

type ManifestEnum struct {
	Module     string   `toml:"module"`
	Name       string   `toml:"name"`
	Visibility string   `toml:"visibility"`
	Variants   []string `toml:"variants"`
}

type ManifestFunction struct {
	Module     string `toml:"module"`
	Name       string `toml:"name"`
	Visibility string `toml:"visibility"`
	Test       bool   `toml:"test"`
	Bench      bool   `toml:"bench"`
}

type ManifestConst struct {
	Module     string `toml:"module"`
	Name       string `toml:"name"`
	Visibility string `toml:"visibility"`
	// Value is the literal source text for the const body: an unquoted
	// integer, "true"/"false", or a double-quoted string. Anything richer
	// than a single literal is outside what a manifest (as opposed to a
	// real parser) can express.
	Value string `toml:"value"`
}

type ManifestImport struct {
	Module        string `toml:"module"`
	LocalName     string `toml:"local_name"`
	Target        string `toml:"target"`
	TargetModule  string `toml:"target_module"`
	Visibility    string `toml:"visibility"`
	ReExport      bool   `toml:"re_export"`
	AliasesModule bool   `toml:"aliases_module"`
}

// LoadManifest decodes a manifest file from path.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse manifest: %w", path, err)
	}
	return m, nil
}

// moduleSet resolves manifest module path strings ("a::b::c") to ModIDs,
// registering every ancestor segment that hasn't been seen yet, rooted at
// e.Mods.Root().
type moduleSet struct {
	eng *engine.Engine
	ids map[string]pool.ModID
}

func newModuleSet(eng *engine.Engine) *moduleSet {
	return &moduleSet{eng: eng, ids: map[string]pool.ModID{"": eng.Mods.Root()}}
}

func (s *moduleSet) resolve(path string, vis pool.Visibility) pool.ModID {
	if id, ok := s.ids[path]; ok {
		return id
	}
	parent := s.eng.Mods.Root()
	segs := strings.Split(path, "::")
	for i, seg := range segs {
		cur := strings.Join(segs[:i+1], "::")
		if id, ok := s.ids[cur]; ok {
			parent = id
			continue
		}
		modVis := vis
		if i != len(segs)-1 {
			modVis = pool.Visibility{Kind: pool.VisPublic}
		}
		id := s.eng.RegisterModule(source.Span{}, parent, seg, modVis)
		s.ids[cur] = id
		parent = id
	}
	return parent
}

// parseVisibility maps a manifest visibility string onto pool.Visibility.
// Unrecognized or empty strings default to private (pub(self)), matching
// a real parser's "no modifier means private" rule.
func parseVisibility(s string) pool.Visibility {
	switch strings.TrimSpace(s) {
	case "pub":
		return pool.Visibility{Kind: pool.VisPublic}
	case "pub(crate)":
		return pool.Visibility{Kind: pool.VisCrate}
	case "pub(super)":
		return pool.Visibility{Kind: pool.VisSuper}
	default:
		return pool.Visibility{Kind: pool.VisInherited}
	}
}

// ApplyManifest drives eng's Register* calls from m, returning the first
// structural error encountered (a literal that fails to parse). Resolver
// failures (cycles, ambiguity, visibility) are not returned here: they
// surface later as diagnostics once eng.Run drains the build queue.
func ApplyManifest(eng *engine.Engine, m Manifest) error {
	mods := newModuleSet(eng)

	for _, mod := range m.Modules {
		mods.resolve(mod.Path, parseVisibility(mod.Visibility))
	}

	for _, st := range m.Structs {
		modID := mods.resolve(st.Module, pool.Visibility{Kind: pool.VisPublic})
		eng.RegisterStruct(source.Span{}, modID, ast.NoDeclID, st.Name, parseVisibility(st.Visibility))
	}

	for _, en := range m.Enums {
		modID := mods.resolve(en.Module, pool.Visibility{Kind: pool.VisPublic})
		enumItem := eng.RegisterEnum(source.Span{}, modID, ast.NoDeclID, en.Name, parseVisibility(en.Visibility))
		for i, variant := range en.Variants {
			eng.RegisterVariant(source.Span{}, modID, ast.NoDeclID, enumItem, uint32(i), variant, parseVisibility(en.Visibility))
		}
	}

	for _, fn := range m.Functions {
		modID := mods.resolve(fn.Module, pool.Visibility{Kind: pool.VisPublic})
		eng.RegisterFunction(source.Span{}, modID, ast.NoDeclID, fn.Name, parseVisibility(fn.Visibility), query.CallConvPlain, fn.Test, fn.Bench)
	}

	for _, c := range m.Consts {
		modID := mods.resolve(c.Module, pool.Visibility{Kind: pool.VisPublic})
		exprID, err := literalExpr(eng, c.Value)
		if err != nil {
			return fmt.Errorf("const %s::%s: %w", c.Module, c.Name, err)
		}
		eng.RegisterConst(source.Span{}, modID, ast.NoDeclID, c.Name, parseVisibility(c.Visibility), exprID)
	}

	for _, imp := range m.Imports {
		modID := mods.resolve(imp.Module, pool.Visibility{Kind: pool.VisPublic})
		targetModID := modID
		if imp.TargetModule != "" {
			targetModID = mods.resolve(imp.TargetModule, pool.Visibility{Kind: pool.VisPublic})
		}
		target := eng.ResolveItem(imp.Target)
		if imp.ReExport {
			eng.RegisterReExport(source.Span{}, modID, imp.LocalName, target, targetModID, parseVisibility(imp.Visibility))
		} else {
			eng.RegisterImport(source.Span{}, modID, imp.LocalName, target, targetModID, parseVisibility(imp.Visibility), imp.AliasesModule)
		}
	}

	return nil
}

// literalExpr builds a single-literal ast.Expr for a manifest const's
// Value text and returns its ExprID, covering the three literal shapes a
// manifest can express: integer, boolean, and double-quoted string.
func literalExpr(eng *engine.Engine, value string) (ast.ExprID, error) {
	value = strings.TrimSpace(value)
	file := eng.Files.AddVirtual("<manifest const>", []byte(value))
	span := source.Span{File: file, Start: 0, End: uint32(len(value))}

	var lit ast.LiteralID
	switch {
	case value == "true":
		lit = eng.Literals.ResolveBool(span, true)
	case value == "false":
		lit = eng.Literals.ResolveBool(span, false)
	case strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2:
		inner := source.Span{File: file, Start: 1, End: span.End - 1}
		lit = eng.Literals.ResolveString(inner)
	default:
		if _, err := strconv.ParseUint(value, 10, 64); err != nil {
			return ast.NoExprID, fmt.Errorf("unsupported const literal %q", value)
		}
		lit = eng.Literals.ResolveInt(span)
	}

	id := ast.ExprID(eng.AstExprs.Allocate(ast.Expr{Kind: ast.ExprLiteral, Span: span, Literal: lit}))
	node := eng.AstExprs.Get(uint32(id))
	node.ID = id
	return id, nil
}
