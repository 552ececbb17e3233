package ir

import (
	"math"
	"testing"
)

func TestToJSON(t *testing.T) {
	doc := coreDoc(t)
	doc.Contents = NewMap(
		&Pair{Key: FromString("a"), Value: FromInt(1)},
		&Pair{Key: FromString("b"), Value: NewSeq(FromString("x"))},
	)
	out, err := doc.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":1,"b":["x"]}`
	if string(out) != want {
		t.Errorf("ToJSON = %s, want %s", out, want)
	}
}

func TestToJSONNonFiniteFloats(t *testing.T) {
	doc := coreDoc(t)
	doc.Contents = NewSeq(FromFloat(math.Inf(1)), FromFloat(math.NaN()))
	out, err := doc.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `["+Inf","NaN"]` {
		t.Errorf("ToJSON = %s", out)
	}
}
