package gltf

import (
	"fmt"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
	"github.com/Carmen-Shannon/gltfkit/internal/jsonval"
)

// parseSkinArray parses the top-level "skins" array.
func parseSkinArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Skins = make([]Skin, count)
	for i := 0; i < count; i++ {
		cursor, err = parseSkin(data, tokens, cursor, &doc.Skins[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseSkin fills a single skin object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-skin
func parseSkin(data []byte, tokens []jsonlex.Token, idx int, out *Skin) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: skin must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "joints"):
			var indices []int
			indices, cursor, err = jsonval.ParseIntArray(data, tokens, cursor)
			if err == nil {
				out.Joints = make([]Ref[Node], len(indices))
				for j, n := range indices {
					out.Joints[j] = pendingRef[Node](n)
				}
			}
		case jsonval.Equals(data, keyTok, "skeleton"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Skeleton = pendingRef[Node](n)
			}
		case jsonval.Equals(data, keyTok, "inverseBindMatrices"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.InverseBindMatrices = pendingRef[Accessor](n)
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

// parseCameraArray parses the top-level "cameras" array. The teacher has no
// camera type at all; this whole walker is new per SPEC_FULL.md §4, grounded
// on original_source's GLTF_Camera union.
func parseCameraArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Cameras = make([]Camera, count)
	for i := 0; i < count; i++ {
		cursor, err = parseCamera(data, tokens, cursor, &doc.Cameras[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseCamera fills a single camera object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-camera
func parseCamera(data []byte, tokens []jsonlex.Token, idx int, out *Camera) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: camera must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "type"):
			var s string
			s, cursor, err = jsonval.ParseString(data, tokens, cursor)
			if err == nil {
				if s == "orthographic" {
					out.Type = CameraOrthographic
				} else {
					out.Type = CameraPerspective
				}
			}
		case jsonval.Equals(data, keyTok, "perspective"):
			cursor, err = parseCameraPerspective(data, tokens, cursor, &out.Perspective)
		case jsonval.Equals(data, keyTok, "orthographic"):
			cursor, err = parseCameraOrthographic(data, tokens, cursor, &out.Orthographic)
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

func parseCameraPerspective(data []byte, tokens []jsonlex.Token, idx int, out *CameraPerspectiveParams) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: camera.perspective must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "aspectRatio"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: aspectRatio must be a number", ErrMalformedJSON)
			} else {
				out.HasAspectRatio = true
				out.AspectRatio = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "yfov"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: yfov must be a number", ErrMalformedJSON)
			} else {
				out.YFov = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "zfar"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: zfar must be a number", ErrMalformedJSON)
			} else {
				out.HasZFar = true
				out.ZFar = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "znear"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: znear must be a number", ErrMalformedJSON)
			} else {
				out.ZNear = f
				cursor++
			}
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

func parseCameraOrthographic(data []byte, tokens []jsonlex.Token, idx int, out *CameraOrthographicParams) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: camera.orthographic must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "xmag"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: xmag must be a number", ErrMalformedJSON)
			} else {
				out.XMag = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "ymag"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: ymag must be a number", ErrMalformedJSON)
			} else {
				out.YMag = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "zfar"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: zfar must be a number", ErrMalformedJSON)
			} else {
				out.ZFar = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "znear"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: znear must be a number", ErrMalformedJSON)
			} else {
				out.ZNear = f
				cursor++
			}
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}
