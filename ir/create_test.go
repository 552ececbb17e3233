package ir

import (
	"errors"
	"math/big"
	"testing"
)

func TestCreateNodeScalars(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, true},
		{"s", "s"},
		{42, int64(42)},
		{int8(7), int64(7)},
		{uint32(9), int64(9)},
		{3.5, 3.5},
	}
	for _, tt := range tests {
		n, err := CreateNode(tt.in)
		if err != nil {
			t.Errorf("CreateNode(%v): %v", tt.in, err)
			continue
		}
		if n.Type != ScalarType || n.Value != tt.want {
			t.Errorf("CreateNode(%v) = %v (%s)", tt.in, n.Value, n.Type)
		}
	}
}

func TestCreateNodeBigUint(t *testing.T) {
	n, err := CreateNode(uint64(1) << 63)
	if err != nil {
		t.Fatal(err)
	}
	b, ok := n.Value.(*big.Int)
	if !ok {
		t.Fatalf("value = %T, want *big.Int", n.Value)
	}
	if b.String() != "9223372036854775808" {
		t.Errorf("value = %s", b)
	}
}

func TestCreateNodeCollections(t *testing.T) {
	n, err := CreateNode(map[string]any{
		"list": []any{1, "two"},
		"nil":  nil,
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.Type != MapType || len(n.Items) != 2 {
		t.Fatalf("node = %v", n)
	}
	list, err := n.Get("list", true)
	if err != nil {
		t.Fatal(err)
	}
	ln := list.(*Node)
	if ln.Type != SeqType || len(ln.Values) != 2 {
		t.Fatalf("list = %v", ln)
	}
}

func TestCreateNodeCycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	if _, err := CreateNode(m); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("err = %v, want ErrCyclicReference", err)
	}
	n, err := CreateNode(m, AllowAliases())
	if err != nil {
		t.Fatal(err)
	}
	inner, err := n.Get("self", true)
	if err != nil {
		t.Fatal(err)
	}
	if inner.(*Node) != n {
		t.Error("cycle did not reuse the same node")
	}
}

func TestCreateNodeSharedAcyclic(t *testing.T) {
	shared := []any{"one"}
	outer := []any{shared, "two", shared}

	// without aliasing the shares are expanded independently
	n, err := CreateNode(outer)
	if err != nil {
		t.Fatal(err)
	}
	if n.Values[0] == n.Values[2] {
		t.Error("expected independent copies without AllowAliases")
	}

	n, err = CreateNode(outer, AllowAliases())
	if err != nil {
		t.Fatal(err)
	}
	if n.Values[0] != n.Values[2] {
		t.Error("expected shared node with AllowAliases")
	}
}

func TestCreateNodeReplacer(t *testing.T) {
	n, err := CreateNode(
		map[string]any{"keep": 1, "drop": 2},
		CreateReplacer(func(key, v any) (any, bool) {
			if key == "drop" {
				return nil, false
			}
			return v, true
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Items) != 1 || n.Items[0].Key.Value != "keep" {
		t.Errorf("items = %v", n.Items)
	}
}

func TestCreateNodeKeyFilter(t *testing.T) {
	n, err := CreateNode(
		map[string]any{"a": 1, "b": 2, "c": 3},
		CreateReplacer(KeyFilter([]string{"a", "c"})),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Items) != 2 {
		t.Errorf("items = %d, want 2", len(n.Items))
	}
}

func TestCreateNodeUndefined(t *testing.T) {
	n, err := CreateNode(map[string]any{"u": Undefined, "v": 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Items) != 1 {
		t.Errorf("undefined entry kept: %v", n.Items)
	}

	n, err = CreateNode(map[string]any{"u": Undefined}, KeepUndefined())
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Items) != 1 || !n.Items[0].Value.IsNull() {
		t.Errorf("keepUndefined: %v", n.Items)
	}
}

func TestCreateNodeUnrepresentable(t *testing.T) {
	type opaque struct{ x int }
	if _, err := CreateNode(opaque{1}); !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("err = %v, want ErrUnrepresentable", err)
	}
}
