package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// TreeNode is one node of the assembled category tree. ProductCount is the
// aggregated count: the node's own available products plus those of all its
// descendants.
type TreeNode struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description,omitempty"`
	Icon         string     `json:"icon,omitempty"`
	Color        string     `json:"color,omitempty"`
	Image        string     `json:"image,omitempty"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	ProductCount int64      `json:"product_count"`
	Children     []TreeNode `json:"children"`
}

// BuildTree assembles the ordered category tree from a flat category list and
// a map of direct available-product counts per category.
//
// A category whose parent ID references no existing category is attached as
// an additional root rather than dropped, so aggregated counts stay
// conserved. Categories trapped in a stored parent cycle among existing rows
// are recovered the same way: one member per cycle is promoted to a root and
// the rest hang off it as ordinary children. Sibling groups are ordered by
// display order ascending with case-insensitive name as the tie-breaker. The
// result is a pure function of its inputs.
func BuildTree(categories []Category, directCounts map[uuid.UUID]int64) []TreeNode {
	byID := make(map[uuid.UUID]*Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	var roots []*Category
	children := make(map[uuid.UUID][]*Category)
	for i := range categories {
		cat := &categories[i]
		if cat.ParentID == nil {
			roots = append(roots, cat)
			continue
		}
		if _, ok := byID[*cat.ParentID]; !ok {
			// Orphan: dangling parent reference, promote to root
			roots = append(roots, cat)
			continue
		}
		children[*cat.ParentID] = append(children[*cat.ParentID], cat)
	}

	// Nodes in a parent cycle are neither roots nor reachable from one.
	// Find them and break each cycle so no category or count is lost.
	reachable := make(map[uuid.UUID]bool, len(categories))
	mark := func(start *Category) {
		stack := []*Category{start}
		for len(stack) > 0 {
			cat := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if reachable[cat.ID] {
				continue
			}
			reachable[cat.ID] = true
			stack = append(stack, children[cat.ID]...)
		}
	}
	for _, root := range roots {
		mark(root)
	}
	if len(reachable) < len(categories) {
		var trapped []*Category
		for i := range categories {
			if !reachable[categories[i].ID] {
				trapped = append(trapped, &categories[i])
			}
		}
		// Sibling order makes the choice of promoted member deterministic
		sortSiblings(trapped)
		for _, cat := range trapped {
			if reachable[cat.ID] {
				continue
			}
			group := children[*cat.ParentID]
			for j := range group {
				if group[j].ID == cat.ID {
					children[*cat.ParentID] = append(group[:j:j], group[j+1:]...)
					break
				}
			}
			roots = append(roots, cat)
			mark(cat)
		}
	}

	sortSiblings(roots)
	for _, group := range children {
		sortSiblings(group)
	}

	// Pre-order walk with an explicit stack; reversing it yields a
	// post-order sequence, so every node is assembled after its children.
	// No recursion, so pathological depth cannot overflow the call stack.
	order := make([]*Category, 0, len(categories))
	stack := make([]*Category, len(roots))
	copy(stack, roots)
	for len(stack) > 0 {
		cat := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cat)
		stack = append(stack, children[cat.ID]...)
	}

	built := make(map[uuid.UUID]TreeNode, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		cat := order[i]
		node := TreeNode{
			ID:           cat.ID,
			Name:         cat.Name,
			Slug:         cat.Slug,
			Description:  cat.Description,
			Icon:         cat.Icon,
			Color:        cat.Color,
			Image:        cat.Image,
			ParentID:     cat.ParentID,
			DisplayOrder: cat.DisplayOrder,
			IsActive:     cat.IsActive,
			ProductCount: directCounts[cat.ID],
			Children:     make([]TreeNode, 0, len(children[cat.ID])),
		}
		for _, child := range children[cat.ID] {
			childNode := built[child.ID]
			node.ProductCount += childNode.ProductCount
			node.Children = append(node.Children, childNode)
		}
		built[cat.ID] = node
	}

	result := make([]TreeNode, 0, len(roots))
	for _, root := range roots {
		result = append(result, built[root.ID])
	}
	return result
}

// FilterActive prunes inactive nodes from a built tree. An inactive node is
// removed together with its subtree, matching what storefront surfaces show.
func FilterActive(nodes []TreeNode) []TreeNode {
	result := make([]TreeNode, 0, len(nodes))
	for _, node := range nodes {
		if !node.IsActive {
			continue
		}
		node.Children = FilterActive(node.Children)
		result = append(result, node)
	}
	return result
}

func sortSiblings(group []*Category) {
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].DisplayOrder != group[j].DisplayOrder {
			return group[i].DisplayOrder < group[j].DisplayOrder
		}
		return strings.ToLower(group[i].Name) < strings.ToLower(group[j].Name)
	})
}
