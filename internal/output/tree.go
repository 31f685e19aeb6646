package output

import (
	"strings"

	"github.com/vanehq/vane/internal/core"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	componentMark = "◇ "
)

// treeEntry is one rendered line below a scope: a component or a child scope.
type treeEntry struct {
	label     string
	component bool
	scope     *core.Snapshot
}

// RenderScopeTree renders a scope snapshot in cascade order: each scope lists
// its components first, then its child scopes. Child scopes are labelled by
// their local segment.
func RenderScopeTree(name string, root core.Snapshot, styles *Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(name))
	if root.Namespace != "" {
		sb.WriteString(" ")
		sb.WriteString(styles.Muted.Render(root.Namespace))
	}
	sb.WriteString("\n")
	renderScope(&sb, root, "", styles)
	return sb.String()
}

func renderScope(sb *strings.Builder, s core.Snapshot, prefix string, styles *Styles) {
	entries := make([]treeEntry, 0, len(s.Components)+len(s.Children))
	for _, c := range s.Components {
		entries = append(entries, treeEntry{label: c, component: true})
	}
	for i := range s.Children {
		child := &s.Children[i]
		entries = append(entries, treeEntry{label: localSegment(s.Namespace, child.Namespace), scope: child})
	}

	for i, e := range entries {
		isLast := i == len(entries)-1
		connector, childPrefix := treeEdge, prefix+treeVert
		if isLast {
			connector, childPrefix = treeLast, prefix+treeSpace
		}

		sb.WriteString(prefix)
		sb.WriteString(connector)
		if e.component {
			sb.WriteString(styles.Muted.Render(componentMark + e.label))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(styles.Noun.Render(e.label))
		sb.WriteString("  ")
		sb.WriteString(styles.Muted.Render(e.scope.Namespace))
		sb.WriteString("\n")
		renderScope(sb, *e.scope, childPrefix, styles)
	}
}

// localSegment strips the parent namespace from a child namespace.
func localSegment(parent, child string) string {
	if parent == "" {
		return child
	}
	return strings.TrimPrefix(child, parent+core.Separator)
}
