package gltf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
	"github.com/Carmen-Shannon/gltfkit/internal/jsonval"
)

// parseMeshArray parses the top-level "meshes" array.
func parseMeshArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Meshes = make([]Mesh, count)
	for i := 0; i < count; i++ {
		cursor, err = parseMesh(data, tokens, cursor, &doc.Meshes[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseMesh fills a single mesh object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh
func parseMesh(data []byte, tokens []jsonlex.Token, idx int, out *Mesh) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: mesh must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "primitives"):
			cursor, err = parsePrimitiveArray(data, tokens, cursor, out)
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

func parsePrimitiveArray(data []byte, tokens []jsonlex.Token, idx int, mesh *Mesh) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	mesh.Primitives = make([]Primitive, count)
	for i := 0; i < count; i++ {
		mesh.Primitives[i].Mode = PrimitiveTriangles
		cursor, err = parsePrimitive(data, tokens, cursor, &mesh.Primitives[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parsePrimitive fills a single mesh primitive.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh-primitive
func parsePrimitive(data []byte, tokens []jsonlex.Token, idx int, out *Primitive) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: primitive must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "attributes"):
			out.Attributes, cursor, err = parseAttributeMap(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "indices"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Indices = pendingRef[Accessor](n)
			}
		case jsonval.Equals(data, keyTok, "material"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Material = pendingRef[Material](n)
			}
		case jsonval.Equals(data, keyTok, "mode"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Mode = PrimitiveMode(n)
			}
		case jsonval.Equals(data, keyTok, "targets"):
			cursor, err = parseMorphTargetArray(data, tokens, cursor, out)
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

func parseMorphTargetArray(data []byte, tokens []jsonlex.Token, idx int, prim *Primitive) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	prim.Targets = make([]MorphTarget, count)
	for i := 0; i < count; i++ {
		prim.Targets[i].Attributes, cursor, err = parseAttributeMap(data, tokens, cursor)
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseAttributeMap parses a glTF "attributes" object (also used for morph
// target attribute maps) into the ordered []Attribute shape SPEC_FULL.md §4
// calls for, splitting each semantic name into (kind, index) instead of
// keeping the teacher's flat map[string]int (gltf_types.go).
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#_mesh_primitive_attributes
func parseAttributeMap(data []byte, tokens []jsonlex.Token, idx int) ([]Attribute, int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return nil, idx, fmt.Errorf("%w: attributes must be an object", ErrMalformedJSON)
	}
	out := make([]Attribute, 0, tok.Size)
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		name, next, err := jsonval.ParseString(data, tokens, cursor)
		if err != nil {
			return nil, idx, err
		}
		cursor = next
		accessorIdx, ok := jsonval.ToInt(data, tokens[cursor])
		if !ok {
			return nil, idx, fmt.Errorf("%w: attribute %q accessor index must be an integer", ErrMalformedJSON, name)
		}
		cursor++
		kind, suffix := classifyAttribute(name)
		out = append(out, Attribute{
			Name:  name,
			Kind:  kind,
			Index: suffix,
			Data:  pendingRef[Accessor](accessorIdx),
		})
	}
	return out, cursor, nil
}

// classifyAttribute splits an attribute semantic into its category and
// trailing numeric suffix per spec.md §4.5: CATEGORY or CATEGORY_N, with a
// leading underscore marking a user-defined custom attribute. An absent
// suffix defaults to index 0; an unrecognized category yields
// AttributeInvalid but the name itself is still retained.
func classifyAttribute(name string) (AttributeKind, int) {
	if strings.HasPrefix(name, "_") {
		return AttributeCustom, attributeSuffix(name)
	}
	category := name
	if us := strings.LastIndexByte(name, '_'); us >= 0 {
		category = name[:us]
	}
	kind := AttributeInvalid
	switch category {
	case "POSITION":
		kind = AttributePosition
	case "NORMAL":
		kind = AttributeNormal
	case "TANGENT":
		kind = AttributeTangent
	case "TEXCOORD":
		kind = AttributeTexCoord
	case "COLOR":
		kind = AttributeColor
	case "JOINTS":
		kind = AttributeJoints
	case "WEIGHTS":
		kind = AttributeWeights
	default:
		return AttributeInvalid, 0
	}
	return kind, attributeSuffix(name)
}

// attributeSuffix parses the trailing _N numeric suffix of a glTF attribute
// name, defaulting to 0 when there is none or it fails to parse as a
// non-negative integer.
func attributeSuffix(name string) int {
	us := strings.LastIndexByte(name, '_')
	if us < 0 || us == len(name)-1 {
		return 0
	}
	n, err := strconv.Atoi(name[us+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
