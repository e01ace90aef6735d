package reports

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockItem
)

// textBlock is one flowable unit of a markdown body. Inline formatting is
// flattened; the canvas lays out plain runs.
type textBlock struct {
	kind   blockKind
	level  int    // heading level
	marker string // list marker, "-" or "1."
	text   string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// parseMarkdown flattens a markdown body into headings, paragraphs and list items
func parseMarkdown(body string) []textBlock {
	source := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var blocks []textBlock
	add := func(b textBlock) {
		if b.text != "" {
			blocks = append(blocks, b)
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			add(textBlock{kind: blockHeading, level: node.Level, text: inlineText(node, source)})
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			add(textBlock{kind: blockItem, marker: listMarker(node), text: inlineText(node, source)})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.TextBlock:
			add(textBlock{kind: blockParagraph, text: inlineText(node, source)})
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				add(textBlock{kind: blockParagraph, text: strings.TrimRight(string(seg.Value(source)), "\n")})
			}
			return ast.WalkSkipChildren, nil

		case *east.TableHeader, *east.TableRow:
			var cells []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				cells = append(cells, inlineText(c, source))
			}
			add(textBlock{kind: blockParagraph, text: strings.Join(cells, " | ")})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return blocks
}

func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "-"
	}
	n := list.Start
	for c := list.FirstChild(); c != nil && c != ast.Node(item); c = c.NextSibling() {
		n++
	}
	return strconv.Itoa(n) + "."
}

// inlineText collects the visible text under n with whitespace collapsed
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if c != n && c.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.URL(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
