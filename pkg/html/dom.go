package html

import "strings"

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// DocumentTag is the tag name of the synthetic root node.
const DocumentTag = "document"

type Document struct {
	Root        *Node
	Stylesheets []string // CSS from <style> tags
	Scripts     []string // JavaScript from <script> tags
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  DocumentTag,
			Children: make([]*Node, 0),
		},
		Stylesheets: make([]string, 0),
		Scripts:     make([]string, 0),
	}
}

// NewElement returns a detached element node.
func NewElement(tag string) *Node {
	return &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tag),
		Attributes: make(map[string]string),
		Children:   make([]*Node, 0),
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

func (n *Node) RemoveAttribute(name string) {
	if n.Attributes != nil {
		delete(n.Attributes, name)
	}
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(&Node{Type: TextNode, Text: text})
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// InsertBefore inserts newChild before refChild. A nil or unknown refChild
// appends. newChild is removed from any previous parent first.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	if refChild != nil {
		for i, c := range n.Children {
			if c == refChild {
				n.Children = append(n.Children, nil)
				copy(n.Children[i+1:], n.Children[i:])
				n.Children[i] = newChild
				newChild.Parent = n
				return newChild
			}
		}
	}
	n.AddChild(newChild)
	return newChild
}

// Contains returns true if other is a descendant of n (or n itself).
func (n *Node) Contains(other *Node) bool {
	for ; other != nil; other = other.Parent {
		if other == n {
			return true
		}
	}
	return false
}

// IsConnected reports whether the node hangs off a document root.
func (n *Node) IsConnected() bool {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root.Type == ElementNode && root.TagName == DocumentTag
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	n.AppendText(text)
}

// ElementByID walks the tree and returns the first node with matching id.
func (n *Node) ElementByID(id string) *Node {
	if n.Type == ElementNode {
		if val, ok := n.Attributes["id"]; ok && val == id {
			return n
		}
	}
	for _, child := range n.Children {
		if found := child.ElementByID(id); found != nil {
			return found
		}
	}
	return nil
}

// ElementsByTagName collects all descendant elements (n included) with the
// given tag name, in document order.
func (n *Node) ElementsByTagName(tag string) []*Node {
	var result []*Node
	if n.Type == ElementNode && n.TagName == tag {
		result = append(result, n)
	}
	for _, child := range n.Children {
		result = append(result, child.ElementsByTagName(tag)...)
	}
	return result
}

// HasClass reports whether the class attribute lists cls.
func (n *Node) HasClass(cls string) bool {
	classes, ok := n.GetAttribute("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == cls {
			return true
		}
	}
	return false
}
