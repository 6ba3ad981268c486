package jsonval

import (
	"testing"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
)

func tokenizeAll(t *testing.T, src string) ([]byte, []jsonlex.Token) {
	t.Helper()
	data := []byte(src)
	n, err := jsonlex.Tokenize(data, nil)
	if err != nil {
		t.Fatalf("tokenize count: %v", err)
	}
	tokens := make([]jsonlex.Token, n)
	if _, err := jsonlex.Tokenize(data, tokens); err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	return data, tokens
}

func TestEquals(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"version":"2.0"}`)
	if !Equals(data, tokens[1], "version") {
		t.Fatal("expected key token to equal \"version\"")
	}
	if Equals(data, tokens[2], "version") {
		t.Fatal("string value token should not equal a different key")
	}
}

func TestToBoolValidatesFalse(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"a":false}`)
	v, ok := ToBool(data, tokens[2])
	if !ok || v != false {
		t.Fatalf("ToBool(false) = (%v, %v), want (false, true)", v, ok)
	}
}

func TestToBoolRejectsOther(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"a":1}`)
	if _, ok := ToBool(data, tokens[2]); ok {
		t.Fatal("ToBool should reject a non-boolean primitive")
	}
}

func TestToIntAndToFloat(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"a":-5,"b":3.5}`)
	n, ok := ToInt(data, tokens[2])
	if !ok || n != -5 {
		t.Fatalf("ToInt = (%d, %v), want (-5, true)", n, ok)
	}
	f, ok := ToFloat(data, tokens[4])
	if !ok || f != 3.5 {
		t.Fatalf("ToFloat = (%v, %v), want (3.5, true)", f, ok)
	}
}

func TestToSizeClampsNegative(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"a":-3}`)
	n, ok := ToSize(data, tokens[2])
	if !ok || n != 0 {
		t.Fatalf("ToSize(-3) = (%d, %v), want (0, true)", n, ok)
	}
}

func TestParseFloatArrayEnforcesArity(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"t":[1,2,3]}`)
	if _, _, err := ParseFloatArray(data, tokens, 2, 4); err == nil {
		t.Fatal("expected arity mismatch error")
	}
	out, _, err := ParseFloatArray(data, tokens, 2, 3)
	if err != nil {
		t.Fatalf("ParseFloatArray: %v", err)
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Fatalf("ParseFloatArray = %v", out)
	}
}

func TestParseFloatArrayDynamicSizesFromToken(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"weights":[0.1,0.2]}`)
	out, _, err := ParseFloatArrayDynamic(data, tokens, 2)
	if err != nil {
		t.Fatalf("ParseFloatArrayDynamic: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}

func TestSkipSubtreeSkipsNestedObject(t *testing.T) {
	data, tokens := tokenizeAll(t, `{"skip":{"x":[1,2,3],"y":"z"},"after":42}`)
	// tokens[1] = "skip" key, tokens[2] = nested object
	next, err := SkipSubtree(tokens, 2)
	if err != nil {
		t.Fatalf("SkipSubtree: %v", err)
	}
	if !Equals(data, tokens[next], "after") {
		t.Fatalf("SkipSubtree landed on %+v, want the \"after\" key", tokens[next])
	}
}
