package session

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"autosize/pkg/layout"
)

// BoxTree prints the current layout as a tree of boxes with their border
// box geometry.
func (s *Session) BoxTree() string {
	root := s.Page.Engine().Root()
	tree := treeprint.NewWithRoot(s.boxLabel(root))
	s.addBoxes(tree, root.Children)
	return tree.String()
}

func (s *Session) WriteBoxTree(w io.Writer) error {
	_, err := io.WriteString(w, s.BoxTree())
	return err
}

func (s *Session) addBoxes(tree treeprint.Tree, boxes []*layout.Box) {
	for _, b := range boxes {
		if len(b.Children) == 0 {
			tree.AddNode(s.boxLabel(b))
			continue
		}
		s.addBoxes(tree.AddBranch(s.boxLabel(b)), b.Children)
	}
}

func (s *Session) boxLabel(b *layout.Box) string {
	le := s.Page.Engine()
	if b == le.Root() {
		w, h := le.Viewport()
		return fmt.Sprintf("viewport %gx%g scroll=%g/%g", w, h, le.ScrollTop(b.Node), b.MaxScrollTop())
	}
	if b.Node == nil {
		return fmt.Sprintf("text (%g,%g) %gx%g lines=%d", b.X, b.Y, b.Width, b.Height, len(b.Lines))
	}

	name := b.Node.TagName
	if el := s.Page.Element(b.Node); el != nil {
		name = el.String()
	}
	label := fmt.Sprintf("%s (%g,%g) %gx%g", name, b.X, b.Y, b.OffsetWidth(), b.OffsetHeight())
	if b.Node.TagName == "textarea" {
		label += fmt.Sprintf(" lines=%d", len(b.Lines))
	}
	if b.ScrollbarWidth > 0 {
		label += fmt.Sprintf(" scrollbar=%g", b.ScrollbarWidth)
	}
	if top := le.ScrollTop(b.Node); top > 0 {
		label += fmt.Sprintf(" scroll=%g/%g", top, b.MaxScrollTop())
	}
	return label
}
