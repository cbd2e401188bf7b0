package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// StdXML is the Accessor for the XML screenplay dialects, backed by
// encoding/xml. Unlike an HTML parser it has no raw-text elements, so
// dialect tags that collide with HTML ones (script, title, style) keep
// their child elements instead of having them swallowed as inert text.
// Namespace prefixes are stripped: <cx:sceneheading> queries as
// "sceneheading".
type StdXML struct{}

func (StdXML) Parse(content []byte) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(content))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity

	root := &Node{Tag: "#document"}
	stack := []*Node{root}
	for {
		tok, err := d.Token()
		if tok == nil {
			if err == nil || errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: strings.ToLower(t.Name.Local)}
			if len(t.Attr) > 0 {
				node.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					node.Attrs[strings.ToLower(a.Name.Local)] = a.Value
				}
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Data: string(t)})
		}
		// Comments, directives, and processing instructions carry no
		// screenplay content.
	}
	return root, nil
}
