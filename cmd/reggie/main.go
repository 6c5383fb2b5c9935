// Command reggie runs a source file (or, with no argument, starts the
// REPL). Adapted from the teacher's root main.go: a sha256-keyed compiled
// cache in os.TempDir, re-dumped only when the source file's mtime moves
// past the cached dump's — but the cached artifact is now a binchunk of a
// reggie.CompiledModule instead of a Lua-5.3 binary chunk, and running it
// goes through engine.Engine instead of a raw state.LkState.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/lollipopkit/reggie/ast"
	"github.com/lollipopkit/reggie/binchunk"
	"github.com/lollipopkit/reggie/consts"
	"github.com/lollipopkit/reggie/engine"
	"github.com/lollipopkit/reggie/parser"
	"github.com/lollipopkit/reggie/reggie"
	"github.com/lollipopkit/reggie/repl"
	"github.com/lollipopkit/reggie/utils"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	astTier := flag.Bool("tier-ast", false, "run on the tree-walking evaluator instead of Reggie bytecode")
	noCache := flag.Bool("no-cache", false, "always recompile instead of reusing a cached bytecode dump")
	flag.Parse()
	consts.Debug = *debug

	tier := engine.TierReggie
	if *astTier {
		tier = engine.TierAST
	}

	file := flag.Arg(0)
	e := engine.New(os.Stdout)

	if file == "" {
		repl.Run(e, tier)
		return
	}

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mod, err := parser.Parse(string(data), file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if tier == engine.TierReggie && !*noCache {
		cacheCompiledDump(e, mod, file, data)
	}

	if _, err := e.EvalModule(mod, tier); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cacheCompiledDump best-effort writes a binchunk dump of mod's Reggie
// compilation to a cache file named after the source's sha256, so
// cmd/reggie-dump can inspect it later without recompiling. Failures here
// are non-fatal: the dump is a convenience artifact, not required to run
// the program — EvalModule below always compiles fresh against e.Globals
// regardless of what's cached here, since a cached module compiled
// against a previous run's globals would carry stale GlobalCellIDs
// (spec §3's stable-address guarantee only holds within one Globals
// instance's lifetime).
func cacheCompiledDump(e *engine.Engine, mod *ast.Module, file string, data []byte) {
	cacheFile := path.Join(os.TempDir(), utils.Sha256Hex(data)+".rgc")
	if utils.Exist(cacheFile) {
		cached, cerr := os.Stat(cacheFile)
		source, serr := os.Stat(file)
		if cerr == nil && serr == nil && !source.ModTime().After(cached.ModTime()) {
			return
		}
	}
	compiled, err := reggie.Compile(mod, e.Globals)
	if err != nil {
		return
	}
	dump, err := binchunk.Dump(compiled)
	if err != nil {
		return
	}
	_ = os.WriteFile(cacheFile, dump, 0o644)
}
