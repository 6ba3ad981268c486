package gltf

import "testing"

func TestDerivedStride(t *testing.T) {
	bvWithStride := []BufferView{{ByteStride: 32}}

	cases := []struct {
		name string
		acc  Accessor
		bv   []BufferView
		want int
	}{
		{
			name: "explicit bufferView stride wins",
			acc:  Accessor{BufferView: Ref[BufferView]{state: refResolved, index: 0, target: &bvWithStride[0]}, ComponentType: ComponentFloat, Type: TypeVec3},
			bv:   bvWithStride,
			want: 32,
		},
		{
			name: "mat2 with 1-byte components packs to 8",
			acc:  Accessor{ComponentType: ComponentByte, Type: TypeMat2},
			want: 8,
		},
		{
			name: "mat3 with 1-byte components packs to 12",
			acc:  Accessor{ComponentType: ComponentUnsignedByte, Type: TypeMat3},
			want: 12,
		},
		{
			name: "mat3 with 2-byte components packs to 24",
			acc:  Accessor{ComponentType: ComponentShort, Type: TypeMat3},
			want: 24,
		},
		{
			name: "mat4 with float components uses compSize*compCount",
			acc:  Accessor{ComponentType: ComponentFloat, Type: TypeMat4},
			want: 64,
		},
		{
			name: "vec3 float",
			acc:  Accessor{ComponentType: ComponentFloat, Type: TypeVec3},
			want: 12,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			acc := c.acc
			got := derivedStride(&acc, c.bv)
			if got != c.want {
				t.Fatalf("derivedStride = %d, want %d", got, c.want)
			}
		})
	}
}

func TestResolveRefOutOfBounds(t *testing.T) {
	r := pendingRef[Scene](5)
	err := resolveRef(&r, make([]Scene, 2), "scene")
	if err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestRequireRefUnset(t *testing.T) {
	var r Ref[Node]
	err := requireRef(&r, make([]Node, 3), "node")
	if err == nil {
		t.Fatal("expected missing-reference error for an unset ref")
	}
}

func TestAssignParentRejectsSecondParent(t *testing.T) {
	doc := &Document{Nodes: make([]Node, 3)}
	if err := assignParent(&doc.Nodes[2], &doc.Nodes[0], doc, 0); err != nil {
		t.Fatalf("first assignParent: %v", err)
	}
	if err := assignParent(&doc.Nodes[2], &doc.Nodes[1], doc, 1); err == nil {
		t.Fatal("expected error assigning a second parent")
	}
}
