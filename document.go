package gltf

// Document is the fully parsed, fully resolved form of a glTF 2.0 asset: the
// root object returned by Parse. Every Ref field on every entity below has
// been upgraded from a pending index to a resolved pointer by the time a
// Document leaves Parse successfully — see resolve.go.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-gltf
type Document struct {
	FileInfo FileInfo
	Asset    Asset

	Accessors   []Accessor
	BufferViews []BufferView
	Buffers     []Buffer
	Animations  []Animation
	Cameras     []Camera
	Images      []Image
	Materials   []Material
	Meshes      []Mesh
	Nodes       []Node
	Samplers    []Sampler
	Scenes      []Scene
	Scene       Ref[Scene]
	Textures    []Texture
	Skins       []Skin

	ExtensionsUsed     []string
	ExtensionsRequired []string
	Extensions         []Extension
	Extras             RawJSON
}

// FileInfo records where a Document came from and, for a GLB source, the
// binary chunk that accompanied its JSON. Mirrors the bookkeeping the C
// reference keeps in GLTF_FileInfo, minus the raw json/jsonTkCount fields --
// those only exist there because C has no garbage collector to let the
// tokenizer's scratch buffers go once parsing finishes.
type FileInfo struct {
	Path      string
	IsBinary  bool
	BinChunk  []byte
}

// Asset carries the mandatory version metadata every glTF document declares.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-asset
type Asset struct {
	Version    string
	MinVersion string
	Generator  string
	Copyright  string

	Extensions []Extension
	Extras     RawJSON
}

// RawJSON is an owned, unparsed JSON value lifted verbatim from the source
// document. SPEC_FULL.md §4 generalizes the teacher's map[string]interface{}
// extras handling (gltf_importer.go) to preserve extensions/extras byte-for-
// byte instead of decoding them into a generic shape the caller may not want;
// a caller that needs structure can json.Unmarshal the bytes itself.
type RawJSON []byte

// Extension is a single named entry out of a glTF object's "extensions" map.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#specifying-extensions
type Extension struct {
	Name string
	Data RawJSON
}

// Scene is a set of root nodes to render.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-scene
type Scene struct {
	Name  string
	Nodes []Ref[Node]

	Extensions []Extension
	Extras     RawJSON
}

// Node is a single entry in the scene graph: a local transform plus optional
// mesh, camera, skin, and morph-target weight overrides.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-node
type Node struct {
	Name string

	Parent   Ref[Node]
	Children []Ref[Node]

	Mesh   Ref[Mesh]
	Camera Ref[Camera]
	Skin   Ref[Skin]

	// Matrix is set only when the source node used a "matrix" property
	// rather than separate TRS components. Translation/Rotation/Scale
	// always carry the effective defaults (spec.md §4.3) regardless of
	// which form the source used -- HasMatrix distinguishes the two.
	HasMatrix   bool
	Matrix      [16]float32
	Translation [3]float32
	Rotation    [4]float32
	Scale       [3]float32

	Weights []float32

	Extensions []Extension
	Extras     RawJSON
}

// AttributeKind categorizes a primitive attribute's semantic, splitting the
// teacher's flat map[string]int (gltf_types.go gltfPrimitive.Attributes)
// into the (kind, index) pair SPEC_FULL.md §4 calls for so a consumer can
// switch on kind without re-parsing the semantic string.
type AttributeKind uint8

const (
	AttributeInvalid AttributeKind = iota
	AttributePosition
	AttributeNormal
	AttributeTangent
	AttributeTexCoord
	AttributeColor
	AttributeJoints
	AttributeWeights
	AttributeCustom
)

// Attribute is one (semantic, accessor) pair off a primitive's "attributes"
// or a morph target's attribute map, e.g. "TEXCOORD_1" -> Kind: AttributeTexCoord,
// Index: 1.
type Attribute struct {
	Name  string
	Kind  AttributeKind
	Index int
	Data  Ref[Accessor]
}

// MorphTarget is one entry of a primitive's "targets" array: a set of
// attribute deltas applied with the weight carried by the owning Mesh or
// Node. Not present at all in the teacher, which never parses targets --
// supplemented per SPEC_FULL.md §4 from original_source/'s GLTF_MorphTarget.
type MorphTarget struct {
	Attributes []Attribute
}

// PrimitiveMode is the GPU topology a Primitive's vertex data should be
// drawn with.
type PrimitiveMode int

const (
	PrimitivePoints        PrimitiveMode = 0
	PrimitiveLines         PrimitiveMode = 1
	PrimitiveLineLoop      PrimitiveMode = 2
	PrimitiveLineStrip     PrimitiveMode = 3
	PrimitiveTriangles     PrimitiveMode = 4
	PrimitiveTriangleStrip PrimitiveMode = 5
	PrimitiveTriangleFan   PrimitiveMode = 6
)

// Primitive is one drawable piece of geometry within a Mesh.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh-primitive
type Primitive struct {
	Mode       PrimitiveMode
	Indices    Ref[Accessor]
	Material   Ref[Material]
	Attributes []Attribute
	Targets    []MorphTarget

	Extensions []Extension
	Extras     RawJSON
}

// Mesh groups one or more Primitives plus the default morph target weights
// applied when no Node overrides them.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh
type Mesh struct {
	Name        string
	Primitives  []Primitive
	Weights     []float32
	TargetNames []string

	Extensions []Extension
	Extras     RawJSON
}

// ComponentType is the numeric storage type of one component of an
// accessor's element, using the glTF wire constants directly.
type ComponentType int

const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
)

// Size returns the byte width of a single component, or 0 for an unknown
// componentType (callers should have already rejected that during parsing).
func (c ComponentType) Size() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

// AccessorType is the shape (scalar, vector, or matrix) of one element of an
// accessor.
type AccessorType uint8

const (
	TypeScalar AccessorType = iota
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat2
	TypeMat3
	TypeMat4
)

// Components returns how many components of ComponentType make up one
// element of this AccessorType.
func (t AccessorType) Components() int {
	switch t {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4, TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// SparseAccessor substitutes a sparse subset of an accessor's values, read
// out of two side buffer views instead of the accessor's own bufferView.
// The teacher's gltf_types.go stubs this down to a bare Count field with a
// comment that Indices/Values were "removed because they are never read";
// SPEC_FULL.md §4 restores the full substructure from original_source's
// GLTF_SparseAccessor since downstream consumers of this library, unlike the
// teacher's renderer, do need to actually apply sparse overrides.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#sparse-accessors
type SparseAccessor struct {
	Count int

	IndicesBufferView    Ref[BufferView]
	IndicesByteOffset    int
	IndicesComponentType ComponentType

	ValuesBufferView Ref[BufferView]
	ValuesByteOffset int
}

// Accessor describes how to interpret a span of a BufferView (or, for a
// sparse accessor, two side buffer views) as typed vertex/index data.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-accessor
type Accessor struct {
	Name string

	BufferView    Ref[BufferView]
	ByteOffset    int
	ComponentType ComponentType
	Normalized    bool
	Count         int
	Type          AccessorType

	// Stride is the byte distance between consecutive elements. When the
	// underlying BufferView declares no stride of its own, this is derived
	// per spec.md §4.4 (component size * component count, with the Mat2/
	// Mat3 4-byte alignment padding rule) by the resolver rather than left
	// for every caller to recompute.
	Stride int

	HasMin bool
	HasMax bool
	Min    []float32
	Max    []float32

	Sparse *SparseAccessor

	Extensions []Extension
	Extras     RawJSON
}

// BufferViewTarget hints which GPU buffer binding point a BufferView's data
// is intended for.
type BufferViewTarget int

const (
	BufferViewTargetNone    BufferViewTarget = 0
	BufferViewTargetVertex  BufferViewTarget = 34962
	BufferViewTargetIndices BufferViewTarget = 34963
)

// BufferView is a byte-range window into a Buffer.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-bufferview
type BufferView struct {
	Name   string
	Buffer Ref[Buffer]

	ByteOffset int
	ByteLength int
	ByteStride int
	Target     BufferViewTarget

	Extensions []Extension
	Extras     RawJSON
}

// Buffer is a source of binary data, either embedded as a data URI, loaded
// from an external file, or -- for index 0 of a GLB asset -- taken straight
// from the GLB's BIN chunk (container.go, FileInfo.BinChunk).
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-buffer
type Buffer struct {
	Name       string
	URI        string
	ByteLength int

	// Data holds the buffer's bytes once loaded by buffers.go. On a
	// successful Parse it is filled for every buffer, from the GLB BIN chunk
	// or through the ResourceReader; a buffer that cannot be loaded fails
	// the parse. Callers that only need the document's structure can ignore
	// it entirely.
	Data []byte

	Extensions []Extension
	Extras     RawJSON
}

// AlphaMode selects how a Material's alpha channel is used during
// rasterization.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// TextureView references a Texture along with the UV set and per-kind scalar
// (normal scale, occlusion strength, or nothing) that modulates it. The
// teacher's gltf_types.go splits this into gltfTextureInfo embedded inside a
// normal-map-only gltfNormalTextureInfo, and comments out occlusion/emissive
// entirely; SPEC_FULL.md §4 and §5 unify all five texture slots onto one
// type carrying both Scale and Strength fields, each meaningful only for the
// slot it's attached to (spec.md §9's texture-view scale/strength question).
type TextureView struct {
	Texture  Ref[Texture]
	TexCoord int

	// Scale applies only when this TextureView is a Material's NormalTexture.
	Scale float32

	// Strength applies only when this TextureView is a Material's
	// OcclusionTexture.
	Strength float32

	Extensions []Extension
}

// PBRMetallicRoughness is the metallic-roughness workflow material model.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-material-pbrmetallicroughness
type PBRMetallicRoughness struct {
	BaseColorFactor          [4]float32
	BaseColorTexture         *TextureView
	MetallicFactor           float32
	RoughnessFactor          float32
	MetallicRoughnessTexture *TextureView
}

// Material describes the appearance of a Primitive's surface.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-material
type Material struct {
	Name string

	PBRMetallicRoughness PBRMetallicRoughness
	NormalTexture        *TextureView
	OcclusionTexture     *TextureView
	EmissiveTexture      *TextureView
	EmissiveFactor       [3]float32

	AlphaMode    AlphaMode
	AlphaCutoff  float32
	DoubleSided  bool

	Extensions []Extension
	Extras     RawJSON
}

// FilterMode is a texture min/mag filter setting.
type FilterMode int

const (
	FilterUnset                  FilterMode = 0
	FilterNearest                FilterMode = 9728
	FilterLinear                 FilterMode = 9729
	FilterNearestMipmapNearest   FilterMode = 9984
	FilterLinearMipmapNearest    FilterMode = 9985
	FilterNearestMipmapLinear    FilterMode = 9986
	FilterLinearMipmapLinear     FilterMode = 9987
)

// WrapMode is a texture U/V wrapping setting.
type WrapMode int

const (
	WrapClampToEdge    WrapMode = 33071
	WrapMirroredRepeat WrapMode = 33648
	WrapRepeat         WrapMode = 10497
)

// Sampler describes texture filtering and wrapping.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-sampler
type Sampler struct {
	Name      string
	MagFilter FilterMode
	MinFilter FilterMode
	WrapS     WrapMode
	WrapT     WrapMode

	Extensions []Extension
	Extras     RawJSON
}

// Texture pairs an Image with a Sampler.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-texture
type Texture struct {
	Name    string
	Source  Ref[Image]
	Sampler Ref[Sampler]

	Extensions []Extension
	Extras     RawJSON
}

// Image is a texture image source, either an external/data URI or a span of
// a BufferView (as is always the case for the images a GLB asset embeds).
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-image
type Image struct {
	Name       string
	URI        string
	MimeType   string
	BufferView Ref[BufferView]

	Extensions []Extension
	Extras     RawJSON
}

// Skin binds a mesh to a joint hierarchy for skeletal animation.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-skin
type Skin struct {
	Name                string
	Joints              []Ref[Node]
	Skeleton            Ref[Node]
	InverseBindMatrices Ref[Accessor]

	Extensions []Extension
	Extras     RawJSON
}

// CameraType selects which projection a Camera uses.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrthographic
)

// CameraPerspectiveParams holds the parameters of a perspective projection.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#_camera_perspective
type CameraPerspectiveParams struct {
	HasAspectRatio bool
	AspectRatio    float32
	YFov           float32
	HasZFar        bool
	ZFar           float32
	ZNear          float32
}

// CameraOrthographicParams holds the parameters of an orthographic
// projection.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#_camera_orthographic
type CameraOrthographicParams struct {
	XMag  float32
	YMag  float32
	ZFar  float32
	ZNear float32
}

// Camera is a projection definition a Node can reference. The teacher has
// no Camera type at all -- its renderer drives its own engine/camera package
// directly instead of reading this part of the document -- so this whole
// type is new per SPEC_FULL.md §4, grounded on original_source's GLTF_Camera
// union (collapsed here into a CameraType tag plus one params struct per
// kind, the tagged-union idiom already used by Ref).
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-camera
type Camera struct {
	Name string
	Type CameraType

	Perspective  CameraPerspectiveParams
	Orthographic CameraOrthographicParams

	Extensions []Extension
	Extras     RawJSON
}

// InterpolationMode is how an AnimationSampler's keyframes are blended
// between.
type InterpolationMode uint8

const (
	InterpolationLinear InterpolationMode = iota
	InterpolationStep
	InterpolationCubicSpline
)

// AnimationSampler pairs a timeline (Input) with the values sampled along it
// (Output), interpolated per Interpolation.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#_animation_samplers
type AnimationSampler struct {
	Input         Ref[Accessor]
	Output        Ref[Accessor]
	Interpolation InterpolationMode

	Extensions []Extension
	Extras     RawJSON
}

// AnimationPath names which TRS component (or morph weights) a channel
// drives on its target node.
type AnimationPath uint8

const (
	PathInvalid AnimationPath = iota
	PathTranslation
	PathRotation
	PathScale
	PathWeights
)

// AnimationChannel connects one AnimationSampler to the node property it
// drives.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#_animation_channels
type AnimationChannel struct {
	Sampler    Ref[AnimationSampler]
	TargetNode Ref[Node]
	TargetPath AnimationPath

	Extensions []Extension
	Extras     RawJSON
}

// Animation is a set of channels describing keyframe animation across one
// or more nodes. The teacher's engine/loader/gltf_animation_extractor.go
// does the equivalent work downstream of its own JSON decode; this type is
// the schema-level model the walker in walk_animation.go populates.
//
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-animation
type Animation struct {
	Name     string
	Samplers []AnimationSampler
	Channels []AnimationChannel

	Extensions []Extension
	Extras     RawJSON
}
