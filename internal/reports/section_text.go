package reports

import (
	"ecoreport/internal/document"
	"ecoreport/internal/templates"
)

// textLine is one laid-out line of a text section
type textLine struct {
	text   string
	marker string
	indent float64
	style  string
	size   float64
	height float64
	gap    float64 // space above the line
}

func (p *pass) renderText(cur document.Cursor, s templates.TextSection) document.Cursor {
	body, err := templates.Expand(s.Body, p.placeholders)
	if err != nil {
		p.logger.Warn("Text body could not be expanded, using it verbatim", map[string]interface{}{
			"template": p.template.ID,
			"section":  s.Heading,
			"error":    err.Error(),
		})
		body = s.Body
	}

	lines := p.layoutText(parseMarkdown(body), p.geom.ContentWidth())

	// keep the title with the first line
	first := 0.0
	if len(lines) > 0 {
		first = lines[0].height
	}
	cur = p.begin(cur, titleSpace(s.Heading)+first)
	cur = p.sectionTitle(cur, s.Heading)

	x := p.geom.MarginLeft
	for i, l := range lines {
		if i > 0 {
			cur = cur.Advance(l.gap)
		}
		cur = document.Reserve(p.cv, cur, l.height)

		p.cv.SetTextColor(colorText)
		p.cv.SetFont(l.style, l.size)
		baseline := cur.Y + l.height*0.72
		if l.marker != "" {
			p.cv.Text(x+1, baseline, l.marker)
		}
		p.cv.Text(x+l.indent, baseline, l.text)
		cur = cur.Advance(l.height)
	}
	return cur
}

// layoutText wraps blocks to width. Each line is reserved on its own so long
// bodies flow across pages.
func (p *pass) layoutText(blocks []textBlock, width float64) []textLine {
	var lines []textLine
	for _, b := range blocks {
		proto := textLine{style: document.Regular, size: 10, height: bodyLine, gap: paraGap}
		switch b.kind {
		case blockHeading:
			proto.style, proto.height, proto.gap = document.Bold, headingLine, paraGap*2
			proto.size = 13 - float64(min(b.level, 3))
		case blockItem:
			proto.indent, proto.gap = listIndent, 1
		}

		p.cv.SetFont(proto.style, proto.size)
		for i, text := range p.cv.SplitText(b.text, width-proto.indent) {
			l := proto
			l.text = text
			if i > 0 {
				l.gap = 0
			} else if b.kind == blockItem {
				l.marker = b.marker
			}
			lines = append(lines, l)
		}
	}
	return lines
}
