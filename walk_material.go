package gltf

import (
	"fmt"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
	"github.com/Carmen-Shannon/gltfkit/internal/jsonval"
)

var alphaModeNames = map[string]AlphaMode{
	"OPAQUE": AlphaOpaque,
	"MASK":   AlphaMask,
	"BLEND":  AlphaBlend,
}

// parseMaterialArray parses the top-level "materials" array.
func parseMaterialArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Materials = make([]Material, count)
	for i := 0; i < count; i++ {
		applyMaterialDefaults(&doc.Materials[i])
		cursor, err = parseMaterial(data, tokens, cursor, &doc.Materials[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// applyMaterialDefaults sets the spec.md §4.5 defaults before the key loop
// runs: base color opaque white, fully metallic/rough, a 0.5 mask cutoff.
func applyMaterialDefaults(m *Material) {
	m.PBRMetallicRoughness.BaseColorFactor = [4]float32{1, 1, 1, 1}
	m.PBRMetallicRoughness.MetallicFactor = 1.0
	m.PBRMetallicRoughness.RoughnessFactor = 1.0
	m.AlphaCutoff = 0.5
}

// parseMaterial fills a single material object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-material
func parseMaterial(data []byte, tokens []jsonlex.Token, idx int, out *Material) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: material must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "pbrMetallicRoughness"):
			cursor, err = parsePBRMetallicRoughness(data, tokens, cursor, &out.PBRMetallicRoughness)
		case jsonval.Equals(data, keyTok, "normalTexture"):
			out.NormalTexture = &TextureView{Scale: 1.0}
			cursor, err = parseTextureView(data, tokens, cursor, out.NormalTexture)
		case jsonval.Equals(data, keyTok, "occlusionTexture"):
			out.OcclusionTexture = &TextureView{Strength: 1.0}
			cursor, err = parseTextureView(data, tokens, cursor, out.OcclusionTexture)
		case jsonval.Equals(data, keyTok, "emissiveTexture"):
			out.EmissiveTexture = &TextureView{}
			cursor, err = parseTextureView(data, tokens, cursor, out.EmissiveTexture)
		case jsonval.Equals(data, keyTok, "emissiveFactor"):
			var v []float32
			v, cursor, err = jsonval.ParseFloatArray(data, tokens, cursor, 3)
			if err == nil {
				copy(out.EmissiveFactor[:], v)
			}
		case jsonval.Equals(data, keyTok, "alphaMode"):
			var s string
			s, cursor, err = jsonval.ParseString(data, tokens, cursor)
			if err == nil {
				out.AlphaMode = alphaModeNames[s]
			}
		case jsonval.Equals(data, keyTok, "alphaCutoff"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: material.alphaCutoff must be a number", ErrMalformedJSON)
			} else {
				out.AlphaCutoff = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "doubleSided"):
			b, ok := jsonval.ToBool(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: material.doubleSided must be a boolean", ErrMalformedJSON)
			} else {
				out.DoubleSided = b
				cursor++
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

func parsePBRMetallicRoughness(data []byte, tokens []jsonlex.Token, idx int, out *PBRMetallicRoughness) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: pbrMetallicRoughness must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "baseColorFactor"):
			var v []float32
			v, cursor, err = jsonval.ParseFloatArray(data, tokens, cursor, 4)
			if err == nil {
				copy(out.BaseColorFactor[:], v)
			}
		case jsonval.Equals(data, keyTok, "baseColorTexture"):
			out.BaseColorTexture = &TextureView{}
			cursor, err = parseTextureView(data, tokens, cursor, out.BaseColorTexture)
		case jsonval.Equals(data, keyTok, "metallicFactor"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: metallicFactor must be a number", ErrMalformedJSON)
			} else {
				out.MetallicFactor = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "roughnessFactor"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: roughnessFactor must be a number", ErrMalformedJSON)
			} else {
				out.RoughnessFactor = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "metallicRoughnessTexture"):
			out.MetallicRoughnessTexture = &TextureView{}
			cursor, err = parseTextureView(data, tokens, cursor, out.MetallicRoughnessTexture)
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseTextureView fills a texture reference plus its UV set and the scalar
// that modulates it. spec.md §9 open question #2: the reference source
// writes both "scale" (normal map) and "strength" (occlusion) into the same
// field, so whichever key appears last in the source silently wins. Here
// Scale and Strength are distinct fields (document.go), so both can be read
// without aliasing regardless of which TextureView slot this call fills.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#texture-data
func parseTextureView(data []byte, tokens []jsonlex.Token, idx int, out *TextureView) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: texture reference must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "index"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Texture = pendingRef[Texture](n)
			}
		case jsonval.Equals(data, keyTok, "texCoord"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.TexCoord = n
		case jsonval.Equals(data, keyTok, "scale"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: textureView.scale must be a number", ErrMalformedJSON)
			} else {
				out.Scale = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "strength"):
			f, ok := jsonval.ToFloat(data, tokens[cursor])
			if !ok {
				err = fmt.Errorf("%w: textureView.strength must be a number", ErrMalformedJSON)
			} else {
				out.Strength = f
				cursor++
			}
		case jsonval.Equals(data, keyTok, "extensions"):
			out.Extensions, cursor, err = parseExtensions(data, tokens, cursor)
		default:
			cursor, err = jsonval.SkipSubtree(tokens, cursor)
		}
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseTextureArray parses the top-level "textures" array.
func parseTextureArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Textures = make([]Texture, count)
	for i := 0; i < count; i++ {
		cursor, err = parseTexture(data, tokens, cursor, &doc.Textures[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseTexture fills a single texture object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-texture
func parseTexture(data []byte, tokens []jsonlex.Token, idx int, out *Texture) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: texture must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "source"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Source = pendingRef[Image](n)
			}
		case jsonval.Equals(data, keyTok, "sampler"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Sampler = pendingRef[Sampler](n)
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

// parseImageArray parses the top-level "images" array.
func parseImageArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Images = make([]Image, count)
	for i := 0; i < count; i++ {
		cursor, err = parseImage(data, tokens, cursor, &doc.Images[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseImage fills a single image object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-image
func parseImage(data []byte, tokens []jsonlex.Token, idx int, out *Image) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: image must be an object", ErrMalformedJSON)
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
		case jsonval.Equals(data, keyTok, "mimeType"):
			out.MimeType, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "bufferView"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.BufferView = pendingRef[BufferView](n)
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

// parseSamplerArray parses the top-level "samplers" array.
func parseSamplerArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Samplers = make([]Sampler, count)
	for i := 0; i < count; i++ {
		doc.Samplers[i].WrapS = WrapRepeat
		doc.Samplers[i].WrapT = WrapRepeat
		cursor, err = parseSampler(data, tokens, cursor, &doc.Samplers[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseSampler fills a single sampler object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-sampler
func parseSampler(data []byte, tokens []jsonlex.Token, idx int, out *Sampler) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: sampler must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "magFilter"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.MagFilter = FilterMode(n)
		case jsonval.Equals(data, keyTok, "minFilter"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.MinFilter = FilterMode(n)
		case jsonval.Equals(data, keyTok, "wrapS"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.WrapS = WrapMode(n)
		case jsonval.Equals(data, keyTok, "wrapT"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			out.WrapT = WrapMode(n)
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
