package depot

import (
	"strconv"
	"strings"
)

// MenuStateCookie holds the expanded tree nodes, written by the client script.
const MenuStateCookie = "depotmenustate"

// menuStatePrefix is the element-id selector prefix the client writes in
// front of every node id.
const menuStatePrefix = "#api"

// NavigationState is the set of expanded node ids.
type NavigationState map[string]struct{}

// ParseNavigationState reads the comma separated cookie value. Tokens may be
// bare node ids ("3_0") or element selectors ("#api3_0").
func ParseNavigationState(raw string) NavigationState {
	state := NavigationState{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		tok = strings.TrimPrefix(tok, menuStatePrefix)
		if tok != "" {
			state[tok] = struct{}{}
		}
	}
	return state
}

// Expanded reports whether the node id is open.
func (s NavigationState) Expanded(id string) bool {
	_, ok := s[id]
	return ok
}

// NodeID is the id of the package node with the given ordinal. Ordinals run
// across the constant, function and class trees of a page, so ids never
// collide between trees.
func NodeID(version int64, ordinal int) string {
	return strconv.FormatInt(version, 10) + "_" + strconv.Itoa(ordinal)
}

// TreeNode is a package node, or an entry node when Entry is set. Entry
// nodes carry the id and visibility of their package.
type TreeNode struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Expanded bool       `json:"expanded"`
	Entry    *Entry     `json:"entry,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// Trees are the three navigation trees of a page.
type Trees struct {
	Constants []TreeNode `json:"constants"`
	Functions []TreeNode `json:"functions"`
	Classes   []TreeNode `json:"classes"`
}

// BuildTrees turns the index into trees, opening the package nodes found in
// state.
func BuildTrees(idx *Index, version int64, state NavigationState) Trees {
	ordinal := 0
	build := func(pi PackageIndex) []TreeNode {
		nodes := make([]TreeNode, 0, len(pi))
		for _, g := range pi {
			id := NodeID(version, ordinal)
			ordinal++
			open := state.Expanded(id)
			node := TreeNode{
				ID:       id,
				Label:    g.Name,
				Expanded: open,
				Children: make([]TreeNode, 0, len(g.Entries)),
			}
			for i := range g.Entries {
				node.Children = append(node.Children, TreeNode{
					ID:       id,
					Label:    g.Entries[i].Label,
					Expanded: open,
					Entry:    &g.Entries[i],
				})
			}
			nodes = append(nodes, node)
		}
		return nodes
	}

	return Trees{
		Constants: build(idx.Constants),
		Functions: build(idx.Functions),
		Classes:   build(idx.Classes),
	}
}
