package gltf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeDataURI(t *testing.T) {
	data, err := decodeDataURI("data:application/octet-stream;base64,AQIDBA==", Quotas{})
	if err != nil {
		t.Fatalf("decodeDataURI: %v", err)
	}
	want := []byte{1, 2, 3, 4}
	if string(data) != string(want) {
		t.Fatalf("decoded = %v, want %v", data, want)
	}
}

func TestDecodeDataURIRejectsNonBase64(t *testing.T) {
	_, err := decodeDataURI("data:text/plain,hello", Quotas{})
	if !errors.Is(err, ErrUnsupportedURIScheme) {
		t.Fatalf("err = %v, want ErrUnsupportedURIScheme", err)
	}
}

func TestDecodeDataURIEnforcesQuota(t *testing.T) {
	_, err := decodeDataURI("data:application/octet-stream;base64,AQIDBA==", Quotas{MaxBufferBytes: 2})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestResolveURIViaReader(t *testing.T) {
	reader := func(uri string) ([]byte, error) {
		if uri != "mesh.bin" {
			t.Fatalf("reader called with %q", uri)
		}
		return []byte{9, 9, 9}, nil
	}
	data, err := resolveURI("mesh.bin", reader, Quotas{})
	if err != nil {
		t.Fatalf("resolveURI: %v", err)
	}
	if string(data) != string([]byte{9, 9, 9}) {
		t.Fatalf("data = %v, want [9 9 9]", data)
	}
}

// TestDefaultResourceReaderEnforcesQuota exercises the external-buffer path
// of Quotas.MaxBufferBytes through the default ResourceReader, which rejects
// an oversized file via byteutil.ReadFile's Stat() check rather than
// reading it into memory first.
func TestDefaultResourceReaderEnforcesQuota(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.bin")
	if err := os.WriteFile(path, make([]byte, 16), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reader := defaultResourceReader(dir, 8)
	if _, err := reader("mesh.bin"); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}

	reader = defaultResourceReader(dir, 0)
	data, err := reader("mesh.bin")
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	if len(data) != 16 {
		t.Fatalf("len(data) = %d, want 16", len(data))
	}
}

func TestLoadBuffersSizeMismatch(t *testing.T) {
	doc := &Document{
		Buffers: []Buffer{{ByteLength: 10, URI: "data:application/octet-stream;base64,AQI="}},
	}
	err := loadBuffers(doc, defaultResourceReader("", 0), Quotas{})
	if !errors.Is(err, ErrBufferSizeMismatch) {
		t.Fatalf("err = %v, want ErrBufferSizeMismatch", err)
	}
}

func TestLoadBuffersMissingURIWithoutBinChunk(t *testing.T) {
	doc := &Document{Buffers: []Buffer{{ByteLength: 4}}}
	err := loadBuffers(doc, defaultResourceReader("", 0), Quotas{})
	if !errors.Is(err, ErrMissingRequiredReference) {
		t.Fatalf("err = %v, want ErrMissingRequiredReference", err)
	}
}
