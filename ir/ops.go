package ir

import (
	"fmt"
	"sort"
	"strconv"
)

// Get returns the value for key in a collection. For sequences the key
// must parse as a non-negative integer. Scalar results unwrap to their
// value unless keepScalar is set.
func (n *Node) Get(key any, keepScalar bool) (any, error) {
	item, err := n.lookup(key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if !keepScalar && item.Type == ScalarType {
		return item.Value, nil
	}
	return item, nil
}

// Has reports whether key is present in a collection.
func (n *Node) Has(key any) (bool, error) {
	switch n.Type {
	case MapType:
		for _, p := range n.Items {
			if p != nil && keyMatch(p.Key, key) {
				return true, nil
			}
		}
		return false, nil
	case SeqType:
		i, err := seqIndex(key)
		if err != nil {
			return false, err
		}
		return i < len(n.Values), nil
	default:
		return false, ErrNotACollection
	}
}

// Set sets key to value in a collection, replacing an existing entry.
// For sequences, key must be an index no larger than the length.
func (n *Node) Set(key, value any) error {
	vn, err := CreateNode(value)
	if err != nil {
		return err
	}
	switch n.Type {
	case MapType:
		for _, p := range n.Items {
			if p != nil && keyMatch(p.Key, key) {
				p.Value = vn
				return nil
			}
		}
		kn, err := CreateNode(key)
		if err != nil {
			return err
		}
		n.Items = append(n.Items, &Pair{Key: kn, Value: vn})
		return nil
	case SeqType:
		i, err := seqIndex(key)
		if err != nil {
			return err
		}
		switch {
		case i < len(n.Values):
			n.Values[i] = vn
		case i == len(n.Values):
			n.Values = append(n.Values, vn)
		default:
			return fmt.Errorf("%w: index %d out of range", ErrBadKey, i)
		}
		return nil
	default:
		return ErrNotACollection
	}
}

// Add appends to a collection. Maps take a *Pair; sequences take any
// value.
func (n *Node) Add(value any) error {
	switch n.Type {
	case MapType:
		p, ok := value.(*Pair)
		if !ok {
			return ErrNotAPair
		}
		n.Items = append(n.Items, p)
		return nil
	case SeqType:
		vn, err := CreateNode(value)
		if err != nil {
			return err
		}
		n.Values = append(n.Values, vn)
		return nil
	default:
		return ErrNotACollection
	}
}

// Delete removes key from a collection, reporting whether an entry was
// removed.
func (n *Node) Delete(key any) (bool, error) {
	switch n.Type {
	case MapType:
		for i, p := range n.Items {
			if p != nil && keyMatch(p.Key, key) {
				n.Items = append(n.Items[:i], n.Items[i+1:]...)
				return true, nil
			}
		}
		return false, nil
	case SeqType:
		i, err := seqIndex(key)
		if err != nil {
			return false, err
		}
		if i >= len(n.Values) {
			return false, nil
		}
		n.Values = append(n.Values[:i], n.Values[i+1:]...)
		return true, nil
	default:
		return false, ErrNotACollection
	}
}

// SortItems orders a map's pairs with cmp, or lexicographically by
// key when cmp is nil. The sort is stable.
func (n *Node) SortItems(cmp func(a, b *Pair) int) {
	if n.Type != MapType {
		return
	}
	if cmp == nil {
		cmp = func(a, b *Pair) int {
			ka, kb := keyText(a.Key), keyText(b.Key)
			switch {
			case ka < kb:
				return -1
			case ka > kb:
				return 1
			default:
				return 0
			}
		}
	}
	sort.SliceStable(n.Items, func(i, j int) bool {
		return cmp(n.Items[i], n.Items[j]) < 0
	})
}

func (n *Node) lookup(key any) (*Node, error) {
	switch n.Type {
	case MapType:
		for _, p := range n.Items {
			if p != nil && keyMatch(p.Key, key) {
				return p.Value, nil
			}
		}
		return nil, nil
	case SeqType:
		i, err := seqIndex(key)
		if err != nil {
			return nil, err
		}
		if i >= len(n.Values) {
			return nil, nil
		}
		return n.Values[i], nil
	default:
		return nil, ErrNotACollection
	}
}

func seqIndex(key any) (int, error) {
	switch k := key.(type) {
	case int:
		if k < 0 {
			return 0, fmt.Errorf("%w: negative index", ErrBadKey)
		}
		return k, nil
	case int64:
		if k < 0 {
			return 0, fmt.Errorf("%w: negative index", ErrBadKey)
		}
		return int(k), nil
	case string:
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return 0, fmt.Errorf("%w: %q is not a sequence index", ErrBadKey, k)
		}
		return i, nil
	case *Node:
		if k != nil && k.Type == ScalarType {
			return seqIndex(k.Value)
		}
	}
	return 0, fmt.Errorf("%w: %v is not a sequence index", ErrBadKey, key)
}

func keyMatch(kn *Node, key any) bool {
	if keyN, ok := key.(*Node); ok {
		if keyN == kn {
			return true
		}
		if keyN != nil && keyN.Type == ScalarType {
			key = keyN.Value
		}
	}
	if kn == nil {
		return key == nil
	}
	if kn.Type != ScalarType {
		return false
	}
	if kn.Value == key {
		return true
	}
	// tolerate int/int64 mismatches from literal keys
	switch k := key.(type) {
	case int:
		if v, ok := kn.Value.(int64); ok {
			return v == int64(k)
		}
	case int64:
		if v, ok := kn.Value.(int64); ok {
			return v == k
		}
	}
	return false
}

func keyText(kn *Node) string {
	if kn == nil || kn.Value == nil {
		return ""
	}
	if s, ok := kn.Value.(string); ok {
		return s
	}
	return fmt.Sprint(kn.Value)
}
