package batch

import (
	"os"
	"path/filepath"
	"testing"
)

const validAsset = `{"asset":{"version":"2.0"},"scenes":[{"nodes":[]}]}`
const invalidAsset = `{"asset":{"version":"1.0"}}`

func writeAsset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestParseAllPreservesOrderAndReportsFailures(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeAsset(t, dir, "a.gltf", validAsset),
		writeAsset(t, dir, "b.gltf", invalidAsset),
		writeAsset(t, dir, "c.gltf", validAsset),
	}

	results := ParseAll(paths, WithWorkers(2))
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("results[%d].Path = %q, want %q", i, r.Path, paths[i])
		}
	}
	if results[0].Err != nil || results[0].Document == nil {
		t.Fatalf("results[0]: got err=%v doc=%v, want success", results[0].Err, results[0].Document)
	}
	if results[1].Err == nil {
		t.Fatal("results[1]: expected a version error")
	}
	if results[2].Err != nil {
		t.Fatalf("results[2]: unexpected error %v", results[2].Err)
	}
}
