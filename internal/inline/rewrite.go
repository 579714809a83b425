package inline

// Rule maps one node to zero or more replacement nodes. Returning
// []Node{n} leaves n in place.
type Rule func(Node) []Node

// RewriteNode applies rule to n.
func RewriteNode(n Node, rule Rule) []Node {
	return rule(n)
}

// Rewrite flat-maps rule over the top level of nodes. The input slice and
// its nodes are left untouched; rule is responsible for descending into
// children if it needs to.
func Rewrite(nodes []Node, rule Rule) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, RewriteNode(n, rule)...)
	}
	return out
}

// RewriteDeep applies rule bottom-up: the children of every container are
// rewritten first, then rule sees the rebuilt container itself.
func RewriteDeep(nodes []Node, rule Rule) []Node {
	return Rewrite(nodes, func(n Node) []Node {
		if n.Kind().IsContainer() {
			n = n.WithChildren(RewriteDeep(n.Children(), rule))
		}
		return rule(n)
	})
}
