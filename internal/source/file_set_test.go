package source

import "testing"

func TestFileSetAddAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("memory.lum", []byte("let t = (10, 20, 30);\nt.1;\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected virtual flag set")
	}
}

func TestFileSetResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("memory.lum", []byte("fn f() {\n  t.1;\n}\n"))

	start, end := fs.Resolve(Span{File: id, Start: 11, End: 14})
	if start.Line != 2 {
		t.Fatalf("expected line 2, got %d", start.Line)
	}
	if end.Line != 2 {
		t.Fatalf("expected end line 2, got %d", end.Line)
	}
}

func TestFileSetGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.Add("a/b.lum", []byte("x"), 0)
	if _, ok := fs.GetByPath("a/b.lum"); !ok {
		t.Fatalf("expected to find file by path")
	}
	if _, ok := fs.GetByPath("missing.lum"); ok {
		t.Fatalf("did not expect to find missing file")
	}
}

func TestFileSetText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("m.lum", []byte("abcdef"))
	if got := fs.Text(Span{File: id, Start: 1, End: 4}); got != "bcd" {
		t.Fatalf("unexpected text: %q", got)
	}
}
