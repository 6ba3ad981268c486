package gltf

import "errors"

// Sentinel errors. Wrap with fmt.Errorf's %w throughout so callers can
// errors.Is against these regardless of which entity or index triggered the
// failure.
var (
	ErrInvalidVersion    = errors.New("gltf: unsupported asset.version, must be 2.x")
	ErrMissingAsset      = errors.New("gltf: missing required \"asset\" object")
	ErrInvalidGLBMagic   = errors.New("gltf: invalid GLB magic number")
	ErrInvalidGLBVersion = errors.New("gltf: invalid GLB version, must be 2")
	ErrTruncatedGLB      = errors.New("gltf: GLB file truncated")
	ErrGLBLengthMismatch = errors.New("gltf: GLB header length does not match file size")
	ErrMissingJSONChunk  = errors.New("gltf: GLB file missing JSON chunk")
	ErrChunkOrder        = errors.New("gltf: GLB JSON chunk must precede BIN chunk")

	ErrMalformedJSON = errors.New("gltf: malformed JSON")

	ErrDanglingReference        = errors.New("gltf: reference index out of bounds")
	ErrMissingRequiredReference = errors.New("gltf: required reference is absent")
	ErrMultipleParents          = errors.New("gltf: node assigned more than one parent")
	ErrSceneRootHasParent       = errors.New("gltf: scene root node has a parent")

	ErrBufferSizeMismatch   = errors.New("gltf: loaded buffer is smaller than byteLength")
	ErrUnsupportedURIScheme = errors.New("gltf: unsupported buffer/image URI scheme")

	ErrFileTooLarge = errors.New("gltf: input exceeds configured size quota")
)
