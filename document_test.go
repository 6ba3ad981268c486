package gltf

import "testing"

func TestClassifyAttribute(t *testing.T) {
	cases := []struct {
		name       string
		wantKind   AttributeKind
		wantSuffix int
	}{
		{"POSITION", AttributePosition, 0},
		{"NORMAL", AttributeNormal, 0},
		{"TEXCOORD_0", AttributeTexCoord, 0},
		{"TEXCOORD_1", AttributeTexCoord, 1},
		{"COLOR_0", AttributeColor, 0},
		{"JOINTS_1", AttributeJoints, 1},
		{"WEIGHTS_0", AttributeWeights, 0},
		{"_TEMPERATURE", AttributeCustom, 0},
		{"_BATCH_ID_2", AttributeCustom, 2},
		{"SOMETHING_UNKNOWN", AttributeInvalid, 0},
	}
	for _, c := range cases {
		kind, suffix := classifyAttribute(c.name)
		if kind != c.wantKind || suffix != c.wantSuffix {
			t.Errorf("classifyAttribute(%q) = (%v, %d), want (%v, %d)", c.name, kind, suffix, c.wantKind, c.wantSuffix)
		}
	}
}

// TestTextureViewScaleStrengthNotAliased exercises the fix for the source
// bug where a single field backed both "scale" and "strength": a material
// with both a normal texture (scale) and an occlusion texture (strength)
// must keep the two values distinct.
func TestTextureViewScaleStrengthNotAliased(t *testing.T) {
	src := `{
		"asset": {"version": "2.0"},
		"materials": [{
			"normalTexture": {"index": 0, "scale": 2.5},
			"occlusionTexture": {"index": 0, "strength": 0.75}
		}],
		"textures": [{"source": 0}],
		"images": [{"uri": "tex.png"}]
	}`
	doc, err := parseString(t, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	mat := &doc.Materials[0]
	if mat.NormalTexture.Scale != 2.5 {
		t.Fatalf("NormalTexture.Scale = %v, want 2.5", mat.NormalTexture.Scale)
	}
	if mat.OcclusionTexture.Strength != 0.75 {
		t.Fatalf("OcclusionTexture.Strength = %v, want 0.75", mat.OcclusionTexture.Strength)
	}
	if _, ok := mat.NormalTexture.Texture.Get(); !ok {
		t.Fatal("NormalTexture.Texture did not resolve")
	}
}

func TestMaterialDefaults(t *testing.T) {
	doc, err := parseString(t, `{"asset":{"version":"2.0"},"materials":[{}]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := &doc.Materials[0]
	if m.PBRMetallicRoughness.BaseColorFactor != [4]float32{1, 1, 1, 1} {
		t.Fatalf("BaseColorFactor = %v, want opaque white", m.PBRMetallicRoughness.BaseColorFactor)
	}
	if m.PBRMetallicRoughness.MetallicFactor != 1.0 || m.PBRMetallicRoughness.RoughnessFactor != 1.0 {
		t.Fatalf("metallic/roughness = %v/%v, want 1.0/1.0", m.PBRMetallicRoughness.MetallicFactor, m.PBRMetallicRoughness.RoughnessFactor)
	}
	if m.AlphaCutoff != 0.5 {
		t.Fatalf("AlphaCutoff = %v, want 0.5", m.AlphaCutoff)
	}
}

func TestNodeTRSDefaults(t *testing.T) {
	doc, err := parseString(t, `{"asset":{"version":"2.0"},"nodes":[{}]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n := &doc.Nodes[0]
	if n.Rotation != [4]float32{0, 0, 0, 1} {
		t.Fatalf("Rotation = %v, want identity quaternion", n.Rotation)
	}
	if n.Scale != [3]float32{1, 1, 1} {
		t.Fatalf("Scale = %v, want (1,1,1)", n.Scale)
	}
}
