package ir

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"time"
)

// Undefined is the "no value" sentinel. A map entry whose value is
// Undefined is dropped during node creation (unless KeepUndefined is
// set), and an Undefined document root stringifies to no output.
var Undefined = undefined{}

type undefined struct{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// ReplacerFunc filters and transforms values during node creation. It
// receives the key (map key, sequence index or "" at the root) and the
// candidate value, and returns the value to emit; returning ok=false
// skips the entry.
type ReplacerFunc func(key any, value any) (value2 any, ok bool)

// KeyFilter builds a replacer that keeps only the named map keys,
// matching JSON's array-replacer behavior. Sequence entries always
// pass, as does every call with key "" (the root value and the
// conversion of map keys).
func KeyFilter(keys []string) ReplacerFunc {
	allow := make(map[string]bool, len(keys))
	for _, k := range keys {
		allow[k] = true
	}
	return func(key any, value any) (any, bool) {
		if s, ok := key.(string); ok && s != "" && !allow[s] {
			return nil, false
		}
		return value, true
	}
}

type createOpts struct {
	tag           string
	replacer      ReplacerFunc
	allowAliases  bool
	keepUndefined bool
}

type CreateOption func(*createOpts)

// CreateTag applies a tag to the created root node.
func CreateTag(tag string) CreateOption {
	return func(o *createOpts) { o.tag = tag }
}

// CreateReplacer installs a replacer; see ReplacerFunc.
func CreateReplacer(r ReplacerFunc) CreateOption {
	return func(o *createOpts) { o.replacer = r }
}

// AllowAliases accepts cyclic and shared references by reusing one
// node per host object; the stringifier then introduces anchors and
// aliases for the shared nodes. Without it, cycles are an error.
func AllowAliases() CreateOption {
	return func(o *createOpts) { o.allowAliases = true }
}

// KeepUndefined maps Undefined values to null nodes instead of
// dropping their entries.
func KeepUndefined() CreateOption {
	return func(o *createOpts) { o.keepUndefined = true }
}

// CreateNode builds a node tree from a host value: nil, booleans,
// integers (falling back to *big.Int beyond int64), floats, strings,
// []byte, time.Time, slices, arrays, maps, *Node and *Pair values.
func CreateNode(value any, opts ...CreateOption) (*Node, error) {
	o := &createOpts{}
	for _, f := range opts {
		f(o)
	}
	c := &creator{
		opts: o,
		seen: map[any]*Node{},
		open: map[any]bool{},
	}
	n, err := c.node("", value)
	if err != nil {
		return nil, err
	}
	if n == nil {
		n = Null()
	}
	if o.tag != "" {
		n.Tag = o.tag
	}
	return n, nil
}

type creator struct {
	opts *createOpts
	// seen maps host-object identities to their nodes so shared and
	// cyclic references reuse one node
	seen map[any]*Node
	open map[any]bool
}

func (c *creator) node(key any, value any) (*Node, error) {
	if c.opts.replacer != nil {
		v2, ok := c.opts.replacer(key, value)
		if !ok {
			return nil, nil
		}
		value = v2
	}
	switch v := value.(type) {
	case nil:
		return Null(), nil
	case undefined:
		if c.opts.keepUndefined {
			return Null(), nil
		}
		return nil, nil
	case *Node:
		return v, nil
	case *Pair:
		return NewMap(v), nil
	case *Document:
		return c.node(key, v.Contents)
	case bool:
		return FromBool(v), nil
	case string:
		return FromString(v), nil
	case int:
		return FromInt(int64(v)), nil
	case int8:
		return FromInt(int64(v)), nil
	case int16:
		return FromInt(int64(v)), nil
	case int32:
		return FromInt(int64(v)), nil
	case int64:
		return FromInt(v), nil
	case uint:
		return fromUint(uint64(v)), nil
	case uint8:
		return FromInt(int64(v)), nil
	case uint16:
		return FromInt(int64(v)), nil
	case uint32:
		return FromInt(int64(v)), nil
	case uint64:
		return fromUint(v), nil
	case float32:
		return FromFloat(float64(v)), nil
	case float64:
		return FromFloat(v), nil
	case *big.Int:
		return FromBigInt(v), nil
	case time.Time:
		return FromTime(v), nil
	case []byte:
		return &Node{Type: ScalarType, Value: v}, nil
	}
	return c.reflectNode(key, value)
}

func (c *creator) reflectNode(key any, value any) (*Node, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return c.node(key, rv.Elem().Interface())
	case reflect.Slice, reflect.Map:
		id := identity(rv)
		if n, ok := c.seen[id]; ok {
			if c.opts.allowAliases {
				return n, nil
			}
			if c.open[id] {
				return nil, ErrCyclicReference
			}
			// shared but acyclic: emit an independent copy
		}
		var n *Node
		if rv.Kind() == reflect.Slice {
			n = NewSeq()
		} else {
			n = NewMap()
		}
		c.seen[id] = n
		c.open[id] = true
		defer delete(c.open, id)
		if rv.Kind() == reflect.Slice {
			return c.fillSeq(n, rv)
		}
		return c.fillMap(n, rv)
	case reflect.Array:
		n := NewSeq()
		return c.fillSeq(n, rv)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnrepresentable, value)
	}
}

func (c *creator) fillSeq(n *Node, rv reflect.Value) (*Node, error) {
	for i := 0; i < rv.Len(); i++ {
		item, err := c.node(i, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		if item == nil {
			item = Null()
		}
		n.Values = append(n.Values, item)
	}
	return n, nil
}

func (c *creator) fillMap(n *Node, rv reflect.Value) (*Node, error) {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		ki := k.Interface()
		item, err := c.node(ki, rv.MapIndex(k).Interface())
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		kn, err := c.node("", ki)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, &Pair{Key: kn, Value: item})
	}
	return n, nil
}

func fromUint(v uint64) *Node {
	if v <= 1<<63-1 {
		return FromInt(int64(v))
	}
	return FromBigInt(new(big.Int).SetUint64(v))
}

// identity keys a map or slice by its referent so shared references
// are detected across the walk.
func identity(rv reflect.Value) any {
	return rv.Pointer()
}
