package literal

import (
	"testing"

	"lumen/internal/source"
)

func TestResolveInt(t *testing.T) {
	files := source.NewFileSet()
	fid := files.AddVirtual("m.lum", []byte("t.1;"))
	strs := source.NewInterner()
	storage := NewStorage(files, strs)

	id := storage.ResolveInt(source.Span{File: fid, Start: 2, End: 3})
	v := storage.Get(id)
	idx, ok := v.AsTupleIndex()
	if !ok || idx != 1 {
		t.Fatalf("expected tuple index 1, got %d ok=%v", idx, ok)
	}
}

func TestResolveIntOverflow(t *testing.T) {
	files := source.NewFileSet()
	text := "value.18446744073709551616"
	fid := files.AddVirtual("m.lum", []byte(text))
	strs := source.NewInterner()
	storage := NewStorage(files, strs)

	id := storage.ResolveInt(source.Span{File: fid, Start: 6, End: uint32(len(text))})
	v := storage.Get(id)
	if !v.Overflowed {
		t.Fatalf("expected overflow for a literal larger than uint64")
	}
	if _, ok := v.AsTupleIndex(); ok {
		t.Fatalf("overflowed literal must not be usable as a tuple index")
	}
}

func TestResolveStringDedups(t *testing.T) {
	files := source.NewFileSet()
	fid := files.AddVirtual("m.lum", []byte(`"hi" "hi"`))
	strs := source.NewInterner()
	storage := NewStorage(files, strs)

	a := storage.ResolveString(source.Span{File: fid, Start: 1, End: 3})
	b := storage.ResolveString(source.Span{File: fid, Start: 6, End: 8})
	va := storage.Get(a)
	vb := storage.Get(b)
	if va.StringID != vb.StringID {
		t.Fatalf("expected identical interned string ids for equal text")
	}
}
