// Package markup abstracts XML/HTML tree parsing behind an injectable
// accessor so the format parsers never touch a concrete markup library.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrUnavailable is returned when a parser that requires markup support was
// constructed without an accessor. It is a hard failure at the point of use.
var ErrUnavailable = errors.New("markup accessor unavailable")

// Accessor turns raw markup bytes into a queryable tree.
type Accessor interface {
	Parse(content []byte) (*Node, error)
}

// Node is one element or text node in a parsed markup tree. Tag names and
// attribute keys are lowercase regardless of source casing.
type Node struct {
	Tag      string            // element name, empty for text nodes
	Attrs    map[string]string // nil for text nodes without attributes
	Data     string            // raw text for text nodes
	Children []*Node
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	return n.Attrs[strings.ToLower(name)]
}

// HasClass reports whether the node's class attribute contains the given
// class token.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns the first descendant element with the given tag name, or nil.
func (n *Node) Find(tag string) *Node {
	tag = strings.ToLower(tag)
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns all descendant elements with the given tag name in
// document order.
func (n *Node) FindAll(tag string) []*Node {
	tag = strings.ToLower(tag)
	var out []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		for _, c := range node.Children {
			if c.Tag == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Walk visits every element node in document order. Returning false from
// the visitor skips the node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	for _, c := range n.Children {
		if c.Tag != "" && !visit(c) {
			continue
		}
		c.Walk(visit)
	}
}

// Text returns the node's concatenated descendant text, trimmed.
func (n *Node) Text() string {
	var buf strings.Builder
	var collect func(*Node)
	collect = func(node *Node) {
		if node.Tag == "" {
			buf.WriteString(node.Data)
		}
		for _, c := range node.Children {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(buf.String())
}

// NetHTML is the Accessor for HTML exports, backed by golang.org/x/net/html.
// Its tokenizer tolerates tag soup. HTML raw-text rules apply, so elements
// named script, style, or title swallow their children as text; the XML
// screenplay dialects use StdXML instead.
type NetHTML struct{}

func (NetHTML) Parse(content []byte) (*Node, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	root := &Node{Tag: "#document"}
	convert(doc, root)
	return root, nil
}

func convert(n *html.Node, parent *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			node := &Node{Tag: strings.ToLower(c.Data)}
			if len(c.Attr) > 0 {
				node.Attrs = make(map[string]string, len(c.Attr))
				for _, a := range c.Attr {
					node.Attrs[strings.ToLower(a.Key)] = a.Val
				}
			}
			parent.Children = append(parent.Children, node)
			convert(c, node)
		case html.TextNode:
			parent.Children = append(parent.Children, &Node{Data: c.Data})
		default:
			// Comments, doctypes: carry no screenplay content.
			convert(c, parent)
		}
	}
}
