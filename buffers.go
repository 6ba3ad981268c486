package gltf

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/gltfkit/internal/byteutil"
)

// ResourceReader resolves a non-data buffer or image URI to its bytes. URI
// is relative to the document's own directory; callers embedding gltfkit in
// something other than a local filesystem (an archive, a network fetch, an
// in-memory asset bundle) supply their own implementation via
// WithResourceReader. Grounded on atlasdatatech-gltf/decoder.go's
// ReadResourceCallback, which keeps this as an injected collaborator rather
// than the teacher's loadBufferURI being a method tied to one os.ReadFile
// implementation (engine/loader/gltf_parser.go).
type ResourceReader func(uri string) ([]byte, error)

// defaultResourceReader joins uri against baseDir and reads it from the
// local filesystem, mirroring the teacher's loadBufferURI. maxBytes, if
// nonzero, is enforced by byteutil.ReadFile's Stat()-before-read check, so
// an oversized external buffer/image is rejected before it is loaded into
// memory rather than after.
func defaultResourceReader(baseDir string, maxBytes int64) ResourceReader {
	return func(uri string) ([]byte, error) {
		data, err := byteutil.ReadFile(filepath.Join(baseDir, uri), maxBytes)
		if err != nil {
			if errors.Is(err, byteutil.ErrFileTooLarge) {
				return nil, fmt.Errorf("%w: %v", ErrFileTooLarge, err)
			}
			return nil, err
		}
		return data, nil
	}
}

// resolveURI returns the bytes a buffer/image "uri" property names: inline
// base64 data for a data: URI, or whatever reader returns otherwise. The
// default ResourceReader already enforces quotas.MaxBufferBytes before
// reading (defaultResourceReader); this post-read check is a backstop for a
// caller-supplied ResourceReader that doesn't enforce the cap itself.
func resolveURI(uri string, reader ResourceReader, quotas Quotas) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeDataURI(uri, quotas)
	}
	data, err := reader(uri)
	if err != nil {
		return nil, err
	}
	if quotas.MaxBufferBytes > 0 && len(data) > quotas.MaxBufferBytes {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrFileTooLarge, uri, len(data))
	}
	return data, nil
}

// decodeDataURI decodes a "data:[<mediatype>][;base64],<payload>" URI, the
// form glTF uses to embed small buffers/images directly in the JSON.
func decodeDataURI(uri string, quotas Quotas) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("%w: data URI missing comma separator", ErrUnsupportedURIScheme)
	}
	header := uri[len("data:"):comma]
	payload := uri[comma+1:]

	if !strings.Contains(header, "base64") {
		return nil, fmt.Errorf("%w: data URI encoding %q not supported", ErrUnsupportedURIScheme, header)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURIScheme, err)
	}
	if quotas.MaxBufferBytes > 0 && len(data) > quotas.MaxBufferBytes {
		return nil, fmt.Errorf("%w: inline buffer is %d bytes", ErrFileTooLarge, len(data))
	}
	return data, nil
}

// loadBuffers fills Buffer.Data for every buffer in doc: buffer 0 of a GLB
// asset with no uri takes its bytes from the GLB BIN chunk; every other
// buffer is resolved through reader/quotas.
func loadBuffers(doc *Document, reader ResourceReader, quotas Quotas) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		if buf.URI == "" {
			if i == 0 && doc.FileInfo.BinChunk != nil {
				buf.Data = doc.FileInfo.BinChunk
				if len(buf.Data) < buf.ByteLength {
					return fmt.Errorf("buffers[%d]: %w", i, ErrBufferSizeMismatch)
				}
				continue
			}
			return fmt.Errorf("buffers[%d]: %w", i, ErrMissingRequiredReference)
		}

		data, err := resolveURI(buf.URI, reader, quotas)
		if err != nil {
			return fmt.Errorf("buffers[%d]: %w", i, err)
		}
		buf.Data = data
		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffers[%d]: %w", i, ErrBufferSizeMismatch)
		}
	}
	return nil
}
