package gltf

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestLooksLikeGLB(t *testing.T) {
	if looksLikeGLB([]byte(`{"asset":{}}`)) {
		t.Fatal("plain JSON should not look like a GLB")
	}
	glb := buildGLB(t, glbVersion, []byte(`{"asset":{"version":"2.0"}}`), nil)
	if !looksLikeGLB(glb) {
		t.Fatal("GLB-framed data should look like a GLB")
	}
}

func TestUnwrapGLBTruncated(t *testing.T) {
	_, _, err := unwrapGLB([]byte{0x67, 0x6C, 0x54})
	if !errors.Is(err, ErrTruncatedGLB) {
		t.Fatalf("err = %v, want ErrTruncatedGLB", err)
	}
}

func TestUnwrapGLBBadMagic(t *testing.T) {
	data := buildGLB(t, glbVersion, []byte(`{"asset":{"version":"2.0"}}`), nil)
	binary.LittleEndian.PutUint32(data[0:4], 0xDEADBEEF)
	_, _, err := unwrapGLB(data)
	if !errors.Is(err, ErrInvalidGLBMagic) {
		t.Fatalf("err = %v, want ErrInvalidGLBMagic", err)
	}
}

func TestUnwrapGLBBinBeforeJSON(t *testing.T) {
	var buf []byte
	appendU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}
	binChunk := []byte{1, 2, 3, 4}
	jsonChunk := []byte(`{"asset":{"version":"2.0"}}   `)

	total := glbHeaderSize + glbChunkHeaderSize*2 + len(binChunk) + len(jsonChunk)
	appendU32(glbMagic)
	appendU32(glbVersion)
	appendU32(uint32(total))
	appendU32(uint32(len(binChunk)))
	appendU32(glbChunkBIN)
	buf = append(buf, binChunk...)
	appendU32(uint32(len(jsonChunk)))
	appendU32(glbChunkJSON)
	buf = append(buf, jsonChunk...)

	_, _, err := unwrapGLB(buf)
	if !errors.Is(err, ErrChunkOrder) {
		t.Fatalf("err = %v, want ErrChunkOrder", err)
	}
}

func TestUnwrapGLBMissingJSONChunk(t *testing.T) {
	var buf []byte
	appendU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}
	binChunk := []byte{1, 2, 3, 4}
	total := glbHeaderSize + glbChunkHeaderSize + len(binChunk)
	appendU32(glbMagic)
	appendU32(glbVersion)
	appendU32(uint32(total))
	appendU32(uint32(len(binChunk)))
	appendU32(glbChunkBIN)
	buf = append(buf, binChunk...)

	_, _, err := unwrapGLB(buf)
	if !errors.Is(err, ErrChunkOrder) && !errors.Is(err, ErrMissingJSONChunk) {
		t.Fatalf("err = %v, want ErrChunkOrder or ErrMissingJSONChunk", err)
	}
}
