// Package binchunk serializes a compiled reggie.CompiledModule to and from
// a JSON-tagged chunk, the same container format the teacher used for its
// own compiled prototypes (see DESIGN.md for why the teacher's separate
// binary writer.go was dropped rather than adapted).
package binchunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/lollipopkit/reggie/reggie"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	VERSION   = 0.1
	SIGNATURE = `LANG_REGGIE`
)

// Chunk is the on-disk shape of a CompiledModule: one BlockMeta + its
// instruction/constant arrays per block, tagged short the way the teacher's
// Prototype struct tags its own fields to keep dumps compact.
type Chunk struct {
	TopLevel int32        `json:"tl"`
	Blocks   []BlockChunk `json:"bs"`
}

type BlockChunk struct {
	DebugName   string      `json:"n"`
	ArgCount    int32       `json:"ac"`
	LocalCount  int32       `json:"lc"`
	IsTopLevel  bool        `json:"top"`
	ReturnArity ArityChunk  `json:"ra"`
	Code        []InstChunk `json:"c"`
	Floats      []float64   `json:"fs"`
	Strings     []string    `json:"ss"`
}

type ArityChunk struct {
	Kind int `json:"k"`
	N    int `json:"n"`
	Min  int `json:"min"`
	Max  int `json:"max"`
}

type InstChunk struct {
	Op int32 `json:"o"`
	A  int32 `json:"a"`
	B  int32 `json:"b"`
}

// FromCompiledModule converts the runtime representation into the
// serializable Chunk shape.
func FromCompiledModule(m *reggie.CompiledModule) *Chunk {
	c := &Chunk{TopLevel: int32(m.TopLevel)}
	for _, block := range m.Blocks {
		bc := BlockChunk{
			DebugName:  block.Meta.DebugName,
			ArgCount:   block.Meta.ArgCount,
			LocalCount: block.Meta.LocalCount,
			IsTopLevel: block.Meta.IsTopLevel,
			ReturnArity: ArityChunk{
				Kind: int(block.Meta.ReturnArity.Kind),
				N:    block.Meta.ReturnArity.N,
				Min:  block.Meta.ReturnArity.Min,
				Max:  block.Meta.ReturnArity.Max,
			},
			Floats:  block.Floats,
			Strings: block.Strings,
		}
		for _, inst := range block.Instructions {
			bc.Code = append(bc.Code, InstChunk{Op: int32(inst.Op), A: inst.A, B: inst.B})
		}
		c.Blocks = append(c.Blocks, bc)
	}
	return c
}

// ToCompiledModule reconstructs a reggie.CompiledModule from a Chunk,
// the inverse of FromCompiledModule; used by a debug/REPL harness that
// loads a previously-dumped module instead of recompiling source.
func (c *Chunk) ToCompiledModule() *reggie.CompiledModule {
	m := &reggie.CompiledModule{TopLevel: reggie.BlockID(c.TopLevel)}
	for _, bc := range c.Blocks {
		block := reggie.CodeBlock{
			Meta: reggie.CodeMeta{
				DebugName:  bc.DebugName,
				ArgCount:   bc.ArgCount,
				LocalCount: bc.LocalCount,
				IsTopLevel: bc.IsTopLevel,
				ReturnArity: reggie.ReturnArity{
					Kind: reggie.ArityKind(bc.ReturnArity.Kind),
					N:    bc.ReturnArity.N,
					Min:  bc.ReturnArity.Min,
					Max:  bc.ReturnArity.Max,
				},
			},
			Floats:  bc.Floats,
			Strings: bc.Strings,
		}
		for _, ic := range bc.Code {
			block.Instructions = append(block.Instructions, reggie.Instruction{Op: reggie.Op(ic.Op), A: ic.A, B: ic.B})
		}
		m.Blocks = append(m.Blocks, block)
	}
	return m
}

// header is SIGNATURE followed by the version as a big-endian float64,
// the same "magic bytes then version" shape the teacher's own chunk
// header used, ahead of the JSON payload.
func header() []byte {
	var buf bytes.Buffer
	buf.WriteString(SIGNATURE)
	binary.Write(&buf, binary.BigEndian, math.Float64bits(VERSION))
	return buf.Bytes()
}

// Dump serializes m to a header-prefixed JSON chunk.
func Dump(m *reggie.CompiledModule) ([]byte, error) {
	data, err := json.Marshal(FromCompiledModule(m))
	if err != nil {
		return nil, err
	}
	return append(header(), data...), nil
}

// Load parses a chunk produced by Dump back into a CompiledModule.
func Load(data []byte) (*reggie.CompiledModule, error) {
	h := header()
	if len(data) < len(h) || !bytes.Equal(data[:len(SIGNATURE)], []byte(SIGNATURE)) {
		return nil, fmt.Errorf("binchunk: missing %q signature", SIGNATURE)
	}
	var c Chunk
	if err := json.Unmarshal(data[len(h):], &c); err != nil {
		return nil, err
	}
	return c.ToCompiledModule(), nil
}
