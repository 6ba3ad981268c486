// Package gltf parses glTF 2.0 assets, both the textual (.gltf) and binary
// (.glb) containers, into a fully cross-referenced Document.
package gltf

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/Carmen-Shannon/gltfkit/internal/byteutil"
	"github.com/Carmen-Shannon/gltfkit/internal/diag"
	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
)

// Quotas bounds resource consumption during a Parse call, the reentrant
// replacement for the allocator customization point spec.md §4.1 names as
// an external collaborator (C1). Diagnostics are not capped: the
// diag.Collector grows with the number of messages.
type Quotas struct {
	// MaxFileBytes caps the size of the top-level .gltf/.glb file Parse
	// reads from disk; 0 means unbounded. Checked via a Stat() before the
	// file is read into memory, so an oversized asset is rejected without
	// ever being fully loaded.
	MaxFileBytes int
	// MaxTokens caps how many JSON tokens Tokenize may allocate; 0 means
	// unbounded. A malicious or corrupt asset with deeply nested arrays
	// would otherwise force an arbitrarily large token buffer.
	MaxTokens int
	// MaxBufferBytes caps the size of any single resolved buffer/image
	// payload, inline or external; 0 means unbounded. For an external URI
	// resolved through the default ResourceReader, this is also enforced
	// before the file is read (the same Stat()-then-read discipline as
	// MaxFileBytes); a custom ResourceReader is checked only after it
	// returns, since gltfkit has no way to bound a reader it didn't write.
	MaxBufferBytes int
}

// options collects everything a ParseOption can configure.
type options struct {
	reader  ResourceReader
	quotas  Quotas
	diag    *diag.Collector
	baseDir string
}

// ParseOption is a functional option configuring a Parse/ParseReader call,
// mirroring the teacher's EngineBuilderOption convention
// (engine/engine_builder.go) generalized from one constructor to this
// package's two entry points.
type ParseOption func(*options)

// WithResourceReader overrides how external buffer/image URIs are resolved.
// The default reads from the filesystem relative to the parsed file's
// directory (or the current directory, for ParseReader).
func WithResourceReader(r ResourceReader) ParseOption {
	return func(o *options) { o.reader = r }
}

// WithQuotas bounds token and buffer allocation for this call.
func WithQuotas(q Quotas) ParseOption {
	return func(o *options) { o.quotas = q }
}

// WithDiagnostics routes non-fatal diagnostics into a caller-owned
// collector instead of the package discarding them. Replaces the C
// reference's process-wide fixed diagnostic buffer (spec.md §9) with an
// explicit, per-call collector (internal/diag).
func WithDiagnostics(c *diag.Collector) ParseOption {
	return func(o *options) { o.diag = c }
}

// WithBaseDir overrides the directory external URIs are resolved against.
// Parse infers this from path automatically; it only needs setting for
// ParseReader.
func WithBaseDir(dir string) ParseOption {
	return func(o *options) { o.baseDir = dir }
}

// Parse reads the file at path, detects its container (.glb vs. JSON),
// tokenizes, walks, and resolves it into a Document.
//
// On any failure Parse returns a nil Document and a non-nil error; per
// spec.md §7 there is no partial-asset result on failure.
func Parse(path string, opts ...ParseOption) (*Document, error) {
	o := buildOptions(filepath.Dir(path), opts)
	data, err := byteutil.ReadFile(path, int64(o.quotas.MaxFileBytes))
	if err != nil {
		if errors.Is(err, byteutil.ErrFileTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrFileTooLarge, err)
		}
		return nil, fmt.Errorf("gltf: read %q: %w", path, err)
	}
	doc, err := parseBytes(data, o)
	if err != nil {
		return nil, err
	}
	doc.FileInfo.Path = path
	return doc, nil
}

// ParseReader is Parse for an already-open data source, useful when the
// asset did not come from a plain file (an archive member, a network body).
// The container is detected from the leading GLB magic number, as in Parse,
// since there is no filename to go by.
func ParseReader(r io.Reader, opts ...ParseOption) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gltf: read: %w", err)
	}
	o := buildOptions("", opts)
	return parseBytes(data, o)
}

func buildOptions(baseDir string, opts []ParseOption) options {
	o := options{baseDir: baseDir}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reader == nil {
		o.reader = defaultResourceReader(o.baseDir, int64(o.quotas.MaxBufferBytes))
	}
	return o
}

// parseBytes runs the full pipeline (C4 framing -> C2 tokenize -> C5 walk ->
// C6 resolve -> buffer loading) over an in-memory asset.
func parseBytes(data []byte, o options) (*Document, error) {
	var jsonData, binChunk []byte
	isGLB := looksLikeGLB(data)
	if isGLB {
		var err error
		jsonData, binChunk, err = unwrapGLB(data)
		if err != nil {
			return nil, err
		}
	} else {
		jsonData = data
	}

	tokens, err := tokenize(jsonData, o.quotas.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	doc := &Document{FileInfo: FileInfo{IsBinary: isGLB, BinChunk: binChunk}}
	if err := walkRoot(jsonData, tokens, doc, o.diag); err != nil {
		return nil, err
	}
	if err := checkVersion(doc.Asset.Version); err != nil {
		return nil, err
	}
	if err := resolveDocument(doc); err != nil {
		return nil, err
	}
	if err := loadBuffers(doc, o.reader, o.quotas); err != nil {
		return nil, err
	}
	return doc, nil
}

// tokenize runs the two-pass jsonlex contract: size first with a nil
// buffer, then allocate and tokenize for real. maxTokens, if nonzero,
// rejects an asset whose token count would exceed the quota before the
// second (allocating) pass.
func tokenize(data []byte, maxTokens int) ([]jsonlex.Token, error) {
	n, err := jsonlex.Tokenize(data, nil)
	if err != nil {
		return nil, err
	}
	if maxTokens > 0 && n > maxTokens {
		return nil, fmt.Errorf("%w: document needs %d tokens, quota is %d", ErrFileTooLarge, n, maxTokens)
	}
	tokens := make([]jsonlex.Token, n)
	if _, err := jsonlex.Tokenize(data, tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// checkVersion enforces spec.md §3 invariant 5: asset.version must parse to
// a number >= 2.0. An empty version (an "asset" object with no "version")
// fails the same way a too-low version does; a document with no "asset"
// object at all ("{}") is rejected earlier by walkRoot with ErrMissingAsset.
func checkVersion(version string) error {
	n, err := strconv.ParseFloat(version, 64)
	if err != nil || n < 2.0 {
		return fmt.Errorf("%w: got %q", ErrInvalidVersion, version)
	}
	return nil
}
