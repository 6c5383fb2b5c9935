package binchunk

import (
	"bytes"
	"testing"

	"github.com/lollipopkit/reggie/lang"
	"github.com/lollipopkit/reggie/parser"
	"github.com/lollipopkit/reggie/reggie"
	"github.com/lollipopkit/reggie/stdlib"
)

func compile(t *testing.T, src string) *reggie.CompiledModule {
	t.Helper()
	compiled, _ := compileWithGlobals(t, src)
	return compiled
}

func compileWithGlobals(t *testing.T, src string) (*reggie.CompiledModule, *lang.Globals) {
	t.Helper()
	mod, err := parser.Parse(src, "test")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	globals := lang.NewGlobals()
	stdlib.Open(globals)
	compiled, err := reggie.Compile(mod, globals)
	if err != nil {
		t.Fatalf("compile error: %s", err)
	}
	return compiled, globals
}

func TestDumpHasSignatureHeader(t *testing.T) {
	compiled := compile(t, `local x = 1`)
	dump, err := Dump(compiled)
	if err != nil {
		t.Fatalf("Dump: %s", err)
	}
	if !bytes.HasPrefix(dump, []byte(SIGNATURE)) {
		t.Fatalf("dump does not start with signature %q", SIGNATURE)
	}
}

func TestLoadRejectsMissingSignature(t *testing.T) {
	if _, err := Load([]byte("not a chunk")); err == nil {
		t.Fatal("expected an error loading a chunk without the signature")
	}
}

func TestDumpLoadRoundTripsStructure(t *testing.T) {
	compiled := compile(t, `
function add(a, b)
  return a + b
end
print(add(1, 2))
`)
	dump, err := Dump(compiled)
	if err != nil {
		t.Fatalf("Dump: %s", err)
	}
	loaded, err := Load(dump)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if loaded.TopLevel != compiled.TopLevel {
		t.Fatalf("TopLevel = %d, want %d", loaded.TopLevel, compiled.TopLevel)
	}
	if len(loaded.Blocks) != len(compiled.Blocks) {
		t.Fatalf("Blocks count = %d, want %d", len(loaded.Blocks), len(compiled.Blocks))
	}
	for i := range compiled.Blocks {
		orig, got := compiled.Blocks[i], loaded.Blocks[i]
		if len(orig.Instructions) != len(got.Instructions) {
			t.Fatalf("block %d: instruction count %d, want %d", i, len(got.Instructions), len(orig.Instructions))
		}
		for j := range orig.Instructions {
			if orig.Instructions[j] != got.Instructions[j] {
				t.Fatalf("block %d inst %d: got %+v, want %+v", i, j, got.Instructions[j], orig.Instructions[j])
			}
		}
		if orig.Meta.DebugName != got.Meta.DebugName {
			t.Fatalf("block %d: DebugName %q, want %q", i, got.Meta.DebugName, orig.Meta.DebugName)
		}
		if orig.Meta.ReturnArity.Kind != got.Meta.ReturnArity.Kind {
			t.Fatalf("block %d: ReturnArity.Kind %v, want %v", i, got.Meta.ReturnArity.Kind, orig.Meta.ReturnArity.Kind)
		}
	}
}

func TestRunLoadedModuleProducesSameOutput(t *testing.T) {
	// A dumped module's global-cell references are plain integer ids
	// (InstChunk.A), not names, so the loaded module must be run against
	// the very same *lang.Globals instance it was compiled against
	// (the same constraint cmd/reggie's compiled-dump cache documents) —
	// a fresh Globals would have no cells allocated at those ids yet.
	compiled, globals := compileWithGlobals(t, `
function square(n)
  return n * n
end
print(square(7))
`)
	dump, err := Dump(compiled)
	if err != nil {
		t.Fatalf("Dump: %s", err)
	}
	loaded, err := Load(dump)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}

	var out bytes.Buffer
	m := reggie.NewMachine(globals, &out)
	if _, err := m.Run(loaded); err != nil {
		t.Fatalf("run error: %s", err)
	}
	if out.String() != "49\n" {
		t.Fatalf("got %q, want %q", out.String(), "49\n")
	}
}
