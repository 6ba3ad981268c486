package gltf

import (
	"fmt"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
	"github.com/Carmen-Shannon/gltfkit/internal/jsonval"
)

// parseSceneArray parses the top-level "scenes" array.
func parseSceneArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Scenes = make([]Scene, count)
	for i := 0; i < count; i++ {
		cursor, err = parseScene(data, tokens, cursor, &doc.Scenes[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseScene fills a single scene object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-scene
func parseScene(data []byte, tokens []jsonlex.Token, idx int, out *Scene) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: scene must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "nodes"):
			var indices []int
			indices, cursor, err = jsonval.ParseIntArray(data, tokens, cursor)
			if err == nil {
				out.Nodes = make([]Ref[Node], len(indices))
				for j, n := range indices {
					out.Nodes[j] = pendingRef[Node](n)
				}
			}
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

// parseNodeArray parses the top-level "nodes" array.
func parseNodeArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Nodes = make([]Node, count)
	for i := 0; i < count; i++ {
		applyNodeDefaults(&doc.Nodes[i])
		cursor, err = parseNode(data, tokens, cursor, &doc.Nodes[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// applyNodeDefaults sets the TRS defaults spec.md §4.5 requires before the
// key loop runs, so a node that specifies none of matrix/translation/
// rotation/scale still ends up with the identity transform.
func applyNodeDefaults(n *Node) {
	n.Rotation = [4]float32{0, 0, 0, 1}
	n.Scale = [3]float32{1, 1, 1}
}

// parseNode fills a single node object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-node
func parseNode(data []byte, tokens []jsonlex.Token, idx int, out *Node) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: node must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "children"):
			var indices []int
			indices, cursor, err = jsonval.ParseIntArray(data, tokens, cursor)
			if err == nil {
				out.Children = make([]Ref[Node], len(indices))
				for j, n := range indices {
					out.Children[j] = pendingRef[Node](n)
				}
			}
		case jsonval.Equals(data, keyTok, "mesh"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Mesh = pendingRef[Mesh](n)
			}
		case jsonval.Equals(data, keyTok, "skin"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Skin = pendingRef[Skin](n)
			}
		case jsonval.Equals(data, keyTok, "camera"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Camera = pendingRef[Camera](n)
			}
		case jsonval.Equals(data, keyTok, "matrix"):
			var m []float32
			m, cursor, err = jsonval.ParseFloatArray(data, tokens, cursor, 16)
			if err == nil {
				out.HasMatrix = true
				copy(out.Matrix[:], m)
			}
		case jsonval.Equals(data, keyTok, "translation"):
			var v []float32
			v, cursor, err = jsonval.ParseFloatArray(data, tokens, cursor, 3)
			if err == nil {
				copy(out.Translation[:], v)
			}
		case jsonval.Equals(data, keyTok, "rotation"):
			var v []float32
			v, cursor, err = jsonval.ParseFloatArray(data, tokens, cursor, 4)
			if err == nil {
				copy(out.Rotation[:], v)
			}
		case jsonval.Equals(data, keyTok, "scale"):
			var v []float32
			v, cursor, err = jsonval.ParseFloatArray(data, tokens, cursor, 3)
			if err == nil {
				copy(out.Scale[:], v)
			}
		case jsonval.Equals(data, keyTok, "weights"):
			out.Weights, cursor, err = jsonval.ParseFloatArrayDynamic(data, tokens, cursor)
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

// parseIndex reads a single integer reference token (a glTF "xyz index"
// property) and returns it plus the next cursor.
func parseIndex(data []byte, tokens []jsonlex.Token, idx int) (int, int, error) {
	n, ok := jsonval.ToInt(data, tokens[idx])
	if !ok {
		return 0, idx, fmt.Errorf("%w: expected integer index", ErrMalformedJSON)
	}
	return n, idx + 1, nil
}
