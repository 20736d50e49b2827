package extensions

import (
	"sort"

	"github.com/quillhq/writeflow/models"
)

// CommentNode is a comment with its resolved replies.
type CommentNode struct {
	models.CommentModel
	Children []*CommentNode
}

// BuildCommentTree assembles the flat comment set of a flow into its
// reply tree: one pass to build a parentId -> children adjacency map,
// then a walk from the roots. Roots come out newest first, replies
// oldest first. A reply whose parent was deleted is an orphan and is
// not reachable from any root; it stays addressable by its own id.
func BuildCommentTree(comments []models.CommentModel) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].CommentId] = &CommentNode{CommentModel: comments[i]}
	}

	roots := []*CommentNode{}
	for i := range comments {
		node := nodes[comments[i].CommentId]
		if len(node.ParentId) == 0 {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[node.ParentId]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	for _, node := range nodes {
		sort.SliceStable(node.Children, func(i, j int) bool {
			return node.Children[i].CreatedOn < node.Children[j].CreatedOn
		})
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedOn > roots[j].CreatedOn
	})
	return roots
}

// GroupCommentsByFlow splits one batch comment fetch across its flows.
func GroupCommentsByFlow(comments []models.CommentModel) map[string][]models.CommentModel {
	grouped := map[string][]models.CommentModel{}
	for _, comment := range comments {
		grouped[comment.FlowId] = append(grouped[comment.FlowId], comment)
	}
	return grouped
}
