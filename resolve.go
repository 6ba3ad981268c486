package gltf

import "fmt"

// resolveRef upgrades r from a pending index into a resolved pointer into
// collection, bounds-checking the index. An unset r is left untouched.
//
// Grounded on original_source/library/source/gltfparser.c:internal_fix_pointers
// (the PTR_FIX macro), generalized from raw index+1 pointer rewriting to the
// Ref[T] tagged union (ref.go).
func resolveRef[T any](r *Ref[T], collection []T, what string) error {
	if r.state != refPending {
		return nil
	}
	if r.index < 0 || r.index >= len(collection) {
		return fmt.Errorf("%w: %s index %d (have %d)", ErrDanglingReference, what, r.index, len(collection))
	}
	r.resolve(&collection[r.index])
	return nil
}

// requireRef is resolveRef for a slot spec.md §4.6 classifies as required:
// an unset (never-present) slot is itself a fatal error, not merely left
// unresolved.
func requireRef[T any](r *Ref[T], collection []T, what string) error {
	if !r.IsSet() {
		return fmt.Errorf("%w: %s", ErrMissingRequiredReference, what)
	}
	return resolveRef(r, collection, what)
}

// resolveDocument is the second pass (C6): every Ref[T]{pending} in doc is
// rewritten to {resolved} against doc's own collections, node parent/child
// bookkeeping is filled in, scene roots are checked for parentlessness, and
// every accessor's stride is derived. Returns the first error encountered;
// Parse discards the partially resolved Document on any failure.
func resolveDocument(doc *Document) error {
	if err := resolveRef(&doc.Scene, doc.Scenes, "scene"); err != nil {
		return err
	}

	for i := range doc.Scenes {
		scene := &doc.Scenes[i]
		for j := range scene.Nodes {
			if err := requireRef(&scene.Nodes[j], doc.Nodes, fmt.Sprintf("scenes[%d].nodes[%d]", i, j)); err != nil {
				return err
			}
		}
	}

	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		if err := resolveRef(&node.Mesh, doc.Meshes, fmt.Sprintf("nodes[%d].mesh", i)); err != nil {
			return err
		}
		if err := resolveRef(&node.Skin, doc.Skins, fmt.Sprintf("nodes[%d].skin", i)); err != nil {
			return err
		}
		if err := resolveRef(&node.Camera, doc.Cameras, fmt.Sprintf("nodes[%d].camera", i)); err != nil {
			return err
		}
		for j := range node.Children {
			if err := requireRef(&node.Children[j], doc.Nodes, fmt.Sprintf("nodes[%d].children[%d]", i, j)); err != nil {
				return err
			}
			child, _ := node.Children[j].Get()
			if err := assignParent(child, node, doc, i); err != nil {
				return err
			}
		}
	}

	for i := range doc.Scenes {
		for j, ref := range doc.Scenes[i].Nodes {
			root, _ := ref.Get()
			if _, hasParent := root.Parent.Get(); hasParent {
				return fmt.Errorf("%w: scenes[%d].nodes[%d]", ErrSceneRootHasParent, i, j)
			}
		}
	}

	for i := range doc.Meshes {
		mesh := &doc.Meshes[i]
		for j := range mesh.Primitives {
			prim := &mesh.Primitives[j]
			if err := resolveRef(&prim.Indices, doc.Accessors, fmt.Sprintf("meshes[%d].primitives[%d].indices", i, j)); err != nil {
				return err
			}
			if err := resolveRef(&prim.Material, doc.Materials, fmt.Sprintf("meshes[%d].primitives[%d].material", i, j)); err != nil {
				return err
			}
			for k := range prim.Attributes {
				what := fmt.Sprintf("meshes[%d].primitives[%d].attributes[%d]", i, j, k)
				if err := requireRef(&prim.Attributes[k].Data, doc.Accessors, what); err != nil {
					return err
				}
			}
			for k := range prim.Targets {
				for l := range prim.Targets[k].Attributes {
					what := fmt.Sprintf("meshes[%d].primitives[%d].targets[%d].attributes[%d]", i, j, k, l)
					if err := requireRef(&prim.Targets[k].Attributes[l].Data, doc.Accessors, what); err != nil {
						return err
					}
				}
			}
		}
	}

	for i := range doc.Accessors {
		acc := &doc.Accessors[i]
		if err := resolveRef(&acc.BufferView, doc.BufferViews, fmt.Sprintf("accessors[%d].bufferView", i)); err != nil {
			return err
		}
		if acc.Sparse != nil {
			what := fmt.Sprintf("accessors[%d].sparse", i)
			if err := requireRef(&acc.Sparse.IndicesBufferView, doc.BufferViews, what+".indices.bufferView"); err != nil {
				return err
			}
			if err := requireRef(&acc.Sparse.ValuesBufferView, doc.BufferViews, what+".values.bufferView"); err != nil {
				return err
			}
		}
		acc.Stride = derivedStride(acc, doc.BufferViews)
	}

	for i := range doc.BufferViews {
		bv := &doc.BufferViews[i]
		if err := requireRef(&bv.Buffer, doc.Buffers, fmt.Sprintf("bufferViews[%d].buffer", i)); err != nil {
			return err
		}
	}

	for i := range doc.Images {
		img := &doc.Images[i]
		if err := resolveRef(&img.BufferView, doc.BufferViews, fmt.Sprintf("images[%d].bufferView", i)); err != nil {
			return err
		}
	}

	for i := range doc.Textures {
		tex := &doc.Textures[i]
		if err := resolveRef(&tex.Source, doc.Images, fmt.Sprintf("textures[%d].source", i)); err != nil {
			return err
		}
		if err := resolveRef(&tex.Sampler, doc.Samplers, fmt.Sprintf("textures[%d].sampler", i)); err != nil {
			return err
		}
	}

	for i := range doc.Materials {
		mat := &doc.Materials[i]
		views := []*TextureView{
			mat.PBRMetallicRoughness.BaseColorTexture,
			mat.PBRMetallicRoughness.MetallicRoughnessTexture,
			mat.NormalTexture,
			mat.OcclusionTexture,
			mat.EmissiveTexture,
		}
		for j, tv := range views {
			if tv == nil {
				continue
			}
			if err := requireRef(&tv.Texture, doc.Textures, fmt.Sprintf("materials[%d].textureViews[%d]", i, j)); err != nil {
				return err
			}
		}
	}

	for i := range doc.Skins {
		skin := &doc.Skins[i]
		for j := range skin.Joints {
			if err := requireRef(&skin.Joints[j], doc.Nodes, fmt.Sprintf("skins[%d].joints[%d]", i, j)); err != nil {
				return err
			}
		}
		if err := resolveRef(&skin.Skeleton, doc.Nodes, fmt.Sprintf("skins[%d].skeleton", i)); err != nil {
			return err
		}
		if err := resolveRef(&skin.InverseBindMatrices, doc.Accessors, fmt.Sprintf("skins[%d].inverseBindMatrices", i)); err != nil {
			return err
		}
	}

	for i := range doc.Animations {
		anim := &doc.Animations[i]
		for j := range anim.Channels {
			ch := &anim.Channels[j]
			what := fmt.Sprintf("animations[%d].channels[%d]", i, j)
			if err := requireRef(&ch.Sampler, anim.Samplers, what+".sampler"); err != nil {
				return err
			}
			if err := resolveRef(&ch.TargetNode, doc.Nodes, what+".target.node"); err != nil {
				return err
			}
		}
		for j := range anim.Samplers {
			s := &anim.Samplers[j]
			what := fmt.Sprintf("animations[%d].samplers[%d]", i, j)
			if err := requireRef(&s.Input, doc.Accessors, what+".input"); err != nil {
				return err
			}
			if err := requireRef(&s.Output, doc.Accessors, what+".output"); err != nil {
				return err
			}
		}
	}

	return nil
}

// assignParent records parent on child the first time it is reached as a
// child reference, and fails if a second node claims the same child --
// spec.md invariant 2 / §8 scenario 4.
func assignParent(child *Node, parent *Node, doc *Document, parentIdx int) error {
	if _, already := child.Parent.Get(); already {
		return fmt.Errorf("%w: node already has a parent", ErrMultipleParents)
	}
	child.Parent = Ref[Node]{state: refResolved, index: parentIdx, target: parent}
	return nil
}

// derivedStride implements spec.md §3 invariant 4: a bufferView's own
// nonzero stride wins; otherwise the stride is computed from the accessor's
// component layout, with the Mat2/Mat3 sub-4-byte-component alignment rule.
func derivedStride(acc *Accessor, bufferViews []BufferView) int {
	if bv, ok := acc.BufferView.Get(); ok && bv.ByteStride != 0 {
		return bv.ByteStride
	}
	compSize := acc.ComponentType.Size()
	compCount := acc.Type.Components()
	switch {
	case acc.Type == TypeMat2 && compSize == 1:
		return 8
	case acc.Type == TypeMat3 && (compSize == 1 || compSize == 2):
		return 12 * compSize
	default:
		return compSize * compCount
	}
}
