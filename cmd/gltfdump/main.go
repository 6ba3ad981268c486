// Command gltfdump parses one or more glTF assets and prints a summary of
// each Document's entity counts and any diagnostics collected while parsing.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/gltfkit"
	"github.com/Carmen-Shannon/gltfkit/batch"
	"github.com/Carmen-Shannon/gltfkit/internal/diag"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var maxFileBytes, maxBufferBytes int

	root := &cobra.Command{
		Use:           "gltfdump",
		Short:         "Inspect glTF 2.0 assets",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Parse a single .gltf or .glb file and print its entity counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collector := &diag.Collector{}
			doc, err := gltf.Parse(args[0],
				gltf.WithDiagnostics(collector),
				gltf.WithQuotas(gltf.Quotas{MaxFileBytes: maxFileBytes, MaxBufferBytes: maxBufferBytes}),
			)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printSummary(cmd, args[0], doc, collector)
			return nil
		},
	}
	dumpCmd.Flags().IntVar(&maxFileBytes, "max-file-bytes", 0, "reject the top-level .gltf/.glb file if it is larger than this many bytes (0 = unbounded)")
	dumpCmd.Flags().IntVar(&maxBufferBytes, "max-buffer-bytes", 0, "reject any single buffer/image payload larger than this many bytes (0 = unbounded)")

	batchCmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Parse every .gltf/.glb file in a directory concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := findAssets(args[0])
			if err != nil {
				return err
			}
			results := batch.ParseAll(paths, batch.WithParseOptions(
				gltf.WithQuotas(gltf.Quotas{MaxFileBytes: maxFileBytes, MaxBufferBytes: maxBufferBytes}),
			))

			failures := 0
			for _, r := range results {
				if r.Err != nil {
					failures++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
					continue
				}
				printSummary(cmd, r.Path, r.Document, r.Diagnostics)
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failures, len(results))
			}
			return nil
		},
	}
	batchCmd.Flags().IntVar(&maxFileBytes, "max-file-bytes", 0, "reject any top-level .gltf/.glb file larger than this many bytes (0 = unbounded)")
	batchCmd.Flags().IntVar(&maxBufferBytes, "max-buffer-bytes", 0, "reject any single buffer/image payload larger than this many bytes (0 = unbounded)")

	root.AddCommand(dumpCmd, batchCmd)
	return root
}

// findAssets walks dir non-recursively for .gltf/.glb files: every .gltf
// file first, then every .glb file, each group sorted by name via
// filepath.Glob's own ordering.
func findAssets(dir string) ([]string, error) {
	var paths []string
	for _, ext := range []string{"*.gltf", "*.glb"} {
		matches, err := filepath.Glob(filepath.Join(dir, ext))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .gltf/.glb files found in %s", dir)
	}
	return paths, nil
}

func printSummary(cmd *cobra.Command, path string, doc *gltf.Document, collector *diag.Collector) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (asset.version=%s, generator=%q)\n", path, doc.Asset.Version, doc.Asset.Generator)
	fmt.Fprintf(out, "  scenes=%d nodes=%d meshes=%d accessors=%d bufferViews=%d buffers=%d\n",
		len(doc.Scenes), len(doc.Nodes), len(doc.Meshes), len(doc.Accessors), len(doc.BufferViews), len(doc.Buffers))
	fmt.Fprintf(out, "  materials=%d textures=%d images=%d samplers=%d skins=%d cameras=%d animations=%d\n",
		len(doc.Materials), len(doc.Textures), len(doc.Images), len(doc.Samplers), len(doc.Skins), len(doc.Cameras), len(doc.Animations))
	if len(doc.ExtensionsUsed) > 0 {
		fmt.Fprintf(out, "  extensionsUsed=%s\n", strings.Join(doc.ExtensionsUsed, ","))
	}
	if !collector.Empty() {
		fmt.Fprintf(out, "  diagnostics:\n")
		for _, msg := range collector.Messages() {
			fmt.Fprintf(out, "    - %s\n", msg)
		}
	}
}
