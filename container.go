package gltf

import (
	"encoding/binary"
	"fmt"
)

// glbMagic, glbVersion, and the chunk type tags are the fixed constants of
// the GLB binary container.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
const (
	glbMagic     uint32 = 0x46546C67 // "glTF"
	glbVersion   uint32 = 2
	glbChunkJSON uint32 = 0x4E4F534A // "JSON"
	glbChunkBIN  uint32 = 0x004E4942 // "BIN\x00"

	glbHeaderSize      = 12
	glbChunkHeaderSize = 8
)

// looksLikeGLB reports whether data begins with the GLB magic number. Parse
// uses this (rather than a file extension) to decide which container to
// unwrap, since a reader-based caller (ParseReader) has no filename to go by.
func looksLikeGLB(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == glbMagic
}

// unwrapGLB validates a GLB container's header and chunk framing and
// returns the JSON chunk's payload plus the BIN chunk's payload, if present.
//
// Grounded on the teacher's parseGLB (engine/loader/gltf_parser.go), with
// two checks the teacher never performs: the header's declared totalLength
// is checked against the actual byte count of data (spec.md §4.4), and the
// JSON chunk is required to precede any BIN chunk rather than accepting
// chunks in either order.
func unwrapGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	if len(data) < glbHeaderSize {
		return nil, nil, ErrTruncatedGLB
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	version := binary.LittleEndian.Uint32(data[4:8])
	totalLength := binary.LittleEndian.Uint32(data[8:12])

	if magic != glbMagic {
		return nil, nil, ErrInvalidGLBMagic
	}
	if version != glbVersion {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidGLBVersion, version)
	}
	if int(totalLength) != len(data) {
		return nil, nil, fmt.Errorf("%w: header declares %d bytes, file has %d", ErrGLBLengthMismatch, totalLength, len(data))
	}

	pos := glbHeaderSize
	sawJSON := false
	for pos < len(data) {
		if pos+glbChunkHeaderSize > len(data) {
			return nil, nil, ErrTruncatedGLB
		}
		chunkLength := binary.LittleEndian.Uint32(data[pos : pos+4])
		chunkType := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		pos += glbChunkHeaderSize

		if pos+int(chunkLength) > len(data) {
			return nil, nil, ErrTruncatedGLB
		}
		payload := data[pos : pos+int(chunkLength)]
		pos += int(chunkLength)

		switch chunkType {
		case glbChunkJSON:
			if binChunk != nil {
				return nil, nil, ErrChunkOrder
			}
			jsonChunk = payload
			sawJSON = true
		case glbChunkBIN:
			if !sawJSON {
				return nil, nil, ErrChunkOrder
			}
			binChunk = payload
		default:
			// Unknown chunk types are permitted by the spec and skipped.
		}
	}

	if jsonChunk == nil {
		return nil, nil, ErrMissingJSONChunk
	}
	return jsonChunk, binChunk, nil
}
