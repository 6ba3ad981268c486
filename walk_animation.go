package gltf

import (
	"fmt"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
	"github.com/Carmen-Shannon/gltfkit/internal/jsonval"
)

var interpolationNames = map[string]InterpolationMode{
	"LINEAR":      InterpolationLinear,
	"STEP":        InterpolationStep,
	"CUBICSPLINE": InterpolationCubicSpline,
}

var animationPathNames = map[string]AnimationPath{
	"translation": PathTranslation,
	"rotation":    PathRotation,
	"scale":       PathScale,
	"weights":     PathWeights,
}

// parseAnimationArray parses the top-level animation collection, under
// whichever of "animations"/"animation" walkRoot dispatched on.
func parseAnimationArray(data []byte, tokens []jsonlex.Token, idx int, doc *Document) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	doc.Animations = make([]Animation, count)
	for i := 0; i < count; i++ {
		cursor, err = parseAnimation(data, tokens, cursor, &doc.Animations[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseAnimation fills a single animation object.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-animation
func parseAnimation(data []byte, tokens []jsonlex.Token, idx int, out *Animation) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: animation must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "name"):
			out.Name, cursor, err = jsonval.ParseString(data, tokens, cursor)
		case jsonval.Equals(data, keyTok, "samplers"):
			cursor, err = parseAnimationSamplerArray(data, tokens, cursor, out)
		case jsonval.Equals(data, keyTok, "channels"):
			cursor, err = parseAnimationChannelArray(data, tokens, cursor, out)
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

func parseAnimationSamplerArray(data []byte, tokens []jsonlex.Token, idx int, anim *Animation) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	anim.Samplers = make([]AnimationSampler, count)
	for i := 0; i < count; i++ {
		cursor, err = parseAnimationSampler(data, tokens, cursor, &anim.Samplers[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseAnimationSampler fills one animation sampler.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#_animation_samplers
func parseAnimationSampler(data []byte, tokens []jsonlex.Token, idx int, out *AnimationSampler) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: animation.sampler must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "input"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Input = pendingRef[Accessor](n)
			}
		case jsonval.Equals(data, keyTok, "output"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Output = pendingRef[Accessor](n)
			}
		case jsonval.Equals(data, keyTok, "interpolation"):
			var s string
			s, cursor, err = jsonval.ParseString(data, tokens, cursor)
			if err == nil {
				out.Interpolation = interpolationNames[s]
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

func parseAnimationChannelArray(data []byte, tokens []jsonlex.Token, idx int, anim *Animation) (int, error) {
	count, cursor, err := jsonval.ParseArraySize(tokens, idx)
	if err != nil {
		return idx, err
	}
	anim.Channels = make([]AnimationChannel, count)
	for i := 0; i < count; i++ {
		cursor, err = parseAnimationChannel(data, tokens, cursor, &anim.Channels[i])
		if err != nil {
			return idx, err
		}
	}
	return cursor, nil
}

// parseAnimationChannel fills one animation channel.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#_animation_channels
func parseAnimationChannel(data []byte, tokens []jsonlex.Token, idx int, out *AnimationChannel) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: animation.channel must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "sampler"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.Sampler = pendingRef[AnimationSampler](n)
			}
		case jsonval.Equals(data, keyTok, "target"):
			cursor, err = parseAnimationChannelTarget(data, tokens, cursor, out)
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

func parseAnimationChannelTarget(data []byte, tokens []jsonlex.Token, idx int, out *AnimationChannel) (int, error) {
	tok := tokens[idx]
	if tok.Kind != jsonlex.Object {
		return idx, fmt.Errorf("%w: animation.channel.target must be an object", ErrMalformedJSON)
	}
	cursor := idx + 1
	for i := 0; i < tok.Size; i++ {
		keyTok := tokens[cursor]
		cursor++
		var err error
		switch {
		case jsonval.Equals(data, keyTok, "node"):
			var n int
			n, cursor, err = parseIndex(data, tokens, cursor)
			if err == nil {
				out.TargetNode = pendingRef[Node](n)
			}
		case jsonval.Equals(data, keyTok, "path"):
			var s string
			s, cursor, err = jsonval.ParseString(data, tokens, cursor)
			if err == nil {
				out.TargetPath = animationPathNames[s]
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
