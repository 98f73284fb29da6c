package tagquery

import "fmt"

// Evaluate walks the expression tree against one record's tag set.
// An AndNode with no children is vacuously true, an OrNode with no children
// is vacuously false. Malformed trees built outside the parser are a
// programmer error and panic.
func Evaluate(n Node, tags TagSet) bool {
	switch node := n.(type) {
	case TagNode:
		return tags.Has(node.Value)
	case AndNode:
		for _, c := range node.Children {
			if !Evaluate(c, tags) {
				return false
			}
		}
		return true
	case OrNode:
		for _, c := range node.Children {
			if Evaluate(c, tags) {
				return true
			}
		}
		return false
	case NotNode:
		return !Evaluate(node.Child, tags)
	default:
		panic(fmt.Sprintf("tagquery: unknown node type %T", n))
	}
}

// CollectTags returns every distinct tag referenced anywhere in the tree,
// including inside NOT, in first-occurrence order. Empty tag values from
// degenerate input are skipped.
func CollectTags(n Node) []string {
	var out []string
	seen := make(map[string]struct{})
	collectTags(n, seen, &out)
	return out
}

func collectTags(n Node, seen map[string]struct{}, out *[]string) {
	switch node := n.(type) {
	case TagNode:
		if node.Value == "" {
			return
		}
		if _, ok := seen[node.Value]; ok {
			return
		}
		seen[node.Value] = struct{}{}
		*out = append(*out, node.Value)
	case AndNode:
		for _, c := range node.Children {
			collectTags(c, seen, out)
		}
	case OrNode:
		for _, c := range node.Children {
			collectTags(c, seen, out)
		}
	case NotNode:
		collectTags(node.Child, seen, out)
	}
}
