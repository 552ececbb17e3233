package encode

import (
	"strconv"
	"time"

	"github.com/yamlkit/yamlkit/ir"
)

// aliasable reports whether a shared node may be replaced by an
// alias: collections and object-identity scalars, but never null and
// never primitive scalar values.
func aliasable(n *ir.Node) bool {
	switch n.Type {
	case ir.MapType, ir.SeqType:
		return true
	case ir.ScalarType:
		switch n.Value.(type) {
		case time.Time, []byte:
			return true
		}
	}
	return false
}

// assignAnchors walks the tree for identity-shared nodes and gives
// each a fresh label, skipping labels the user already took. It
// returns the nodes needing anchor-or-alias treatment.
func assignAnchors(root *ir.Node, prefix string) map[*ir.Node]string {
	count := map[*ir.Node]int{}
	taken := map[string]bool{}
	root.Visit(func(n *ir.Node, post bool) (bool, error) {
		if post {
			return true, nil
		}
		if n.Anchor != "" {
			taken[n.Anchor] = true
		}
		count[n]++
		// don't re-walk a subtree we've already seen; once is enough
		// to know it is shared, and genuine cycles must terminate
		return count[n] == 1, nil
	})

	shared := map[*ir.Node]string{}
	next := 1
	root.Visit(func(n *ir.Node, post bool) (bool, error) {
		if post {
			return true, nil
		}
		if _, done := shared[n]; done {
			return false, nil
		}
		if count[n] > 1 && aliasable(n) {
			label := n.Anchor
			if label == "" {
				for {
					label = prefix + strconv.Itoa(next)
					next++
					if !taken[label] {
						break
					}
				}
				taken[label] = true
			}
			shared[n] = label
		}
		return true, nil
	})
	return shared
}
