package gltf

import (
	"fmt"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
	"github.com/Carmen-Shannon/gltfkit/internal/jsonval"
)

var accessorTypeNames = map[string]AccessorType{
	"SCALAR": TypeScalar,
	"VEC2":   TypeVec2,
	"VEC3":   TypeVec3,
	"VEC4":   TypeVec4,
	"MAT2":   TypeMat2,
	"MAT3":   TypeMat3,
	"MAT4":   TypeMat4,
}

// parseAccessorArray parses the top-level "accessors" array.
func parseAccessorArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Accessors = make([]Accessor, count)
	for i := 0; i < count; i++ {
		cursor, err = parseAccessor(data, tokens, cursor, &doc.Accessors[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseAccessor fills a single accessor object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-accessor
func parseAccessor(data []byte, tokens []jsonlex.Token, idx int, out *Accessor) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: accessor must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "bufferView"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.BufferView = pendingRef[BufferView](n)
			}
		case jsonval.Equals(data, keyTok, "byteOffset"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.ByteOffset = n
		case jsonval.Equals(data, keyTok, "componentType"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.ComponentType = ComponentType(n)
		case jsonval.Equals(data, keyTok, "normalized"):
			b, ok := jsonval.ToBool(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: accessor.normalized must be a boolean", ErrMalformedJSON)
			} else {
				out.Normalized = b
				cursor++
			}
		case jsonval.Equals(data, keyTok, "count"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.Count = n
		case jsonval.Equals(data, keyTok, "type"):
			var s string
			s, cursor, err = jsonval.ParseString(data, tokens, cursor)
			if err == nil {
				out.Type = accessorTypeNames[s]
			}
		case jsonval.Equals(data, keyTok, "min"):
			out.Min, cursor, err = jsonval.ParseFloatArrayDynamic(data, tokens, cursor)
			out.HasMin = err == nil
		case jsonval.Equals(data, keyTok, "max"):
			out.Max, cursor, err = jsonval.ParseFloatArrayDynamic(data, tokens, cursor)
			out.HasMax = err == nil
		case jsonval.Equals(data, keyTok, "sparse"):
			out.Sparse = &SparseAccessor{}
			cursor, err = parseSparseAccessor(data, tokens, cursor, out.Sparse)
		case jsonval.Equals(data, keyTok, "extensions"):
			out.Extensions, cursor, err = parseExtensions(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "extras"):
			out.Extras, cursor, err = parseRawJSON(data, tokens, cursor)
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseSparseAccessor fills the "sparse" substructure an accessor may carry,
// supplemented per SPEC_FULL.md §4 from original_source's GLTF_SparseAccessor
// (the teacher drops indices/values entirely, keeping only Count).
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#sparse-accessors
func parseSparseAccessor(data []byte, tokens []jsonlex.Token, idx int, out *SparseAccessor) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: accessor.sparse must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "count"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.Count = n
		case jsonval.Equals(data, keyTok, "indices"):
			cursor, err = parseSparseIndices(data, tokens, cursor, out)
		case jsonval.Equals(data, keyTok, "values"):
			cursor, err = parseSparseValues(data, tokens, cursor, out)
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

func parseSparseIndices(data []byte, tokens []jsonlex.Token, idx int, out *SparseAccessor) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: accessor.sparse.indices must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "bufferView"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.IndicesBufferView = pendingRef[BufferView](n)
			}
		case jsonval.Equals(data, keyTok, "byteOffset"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.IndicesByteOffset = n
		case jsonval.Equals(data, keyTok, "componentType"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.IndicesComponentType = ComponentType(n)
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

func parseSparseValues(data []byte, tokens []jsonlex.Token, idx int, out *SparseAccessor) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: accessor.sparse.values must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "bufferView"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.ValuesBufferView = pendingRef[BufferView](n)
			}
		case jsonval.Equals(data, keyTok, "byteOffset"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.ValuesByteOffset = n
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseBufferViewArray parses the top-level "bufferViews" array.
func parseBufferViewArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.BufferViews = make([]BufferView, count)
	for i := 0; i < count; i++ {
		cursor, err = parseBufferView(data, tokens, cursor, &doc.BufferViews[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseBufferView fills a single bufferView object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-bufferview
func parseBufferView(data []byte, tokens []jsonlex.Token, idx int, out *BufferView) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: bufferView must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "buffer"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Buffer = pendingRef[Buffer](n)
			}
		case jsonval.Equals(data, keyTok, "byteOffset"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.ByteOffset = n
		case jsonval.Equals(data, keyTok, "byteLength"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.ByteLength = n
		case jsonval.Equals(data, keyTok, "byteStride"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.ByteStride = n
		case jsonval.Equals(data, keyTok, "target"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.Target = BufferViewTarget(n)
		case jsonval.Equals(data, keyTok, "extensions"):
			out.Extensions, cursor, err = parseExtensions(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "extras"):
			out.Extras, cursor, err = parseRawJSON(data, tokens, cursor)
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseBufferArray parses the top-level "buffers" array.
func parseBufferArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Buffers = make([]Buffer, count)
	for i := 0; i < count; i++ {
		cursor, err = parseBuffer(data, tokens, cursor, &doc.Buffers[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseBuffer fills a single buffer object. Data itself is populated later,
// by buffers.go, once the whole document (and any accompanying GLB BIN
// chunk) is available.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-buffer
func parseBuffer(data []byte, tokens []jsonlex.Token, idx int, out *Buffer) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: buffer must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "uri"):
			out.URI, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "byteLength"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.ByteLength = n
		case jsonval.Equals(data, keyTok, "extensions"):
			out.Extensions, cursor, err = parseExtensions(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "extras"):
			out.Extras, cursor, err = parseRawJSON(data, tokens, cursor)
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}
