package composer

// SegmentKind distinguishes removable tag units from plain body text.
type SegmentKind int

const (
	SegmentHeadTag SegmentKind = iota
	SegmentBody
	SegmentTailTag
)

// Segment is one unit of the rendered output. Tag segments are removable:
// the view offers a delete action on them which cascades through the data
// model; the body segment is plain text.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Removable reports whether the segment supports a user-initiated delete.
func (s Segment) Removable() bool {
	return s.Kind != SegmentBody
}

// Segments builds the ordered output sequence: each head tag as its own
// removable unit, the body as plain text, then each tail tag.
func Segments(head []string, body string, tail []string) []Segment {
	segs := make([]Segment, 0, len(head)+len(tail)+1)
	for _, h := range head {
		if h != "" {
			segs = append(segs, Segment{Kind: SegmentHeadTag, Text: h})
		}
	}
	if body != "" {
		segs = append(segs, Segment{Kind: SegmentBody, Text: body})
	}
	for _, t := range tail {
		if t != "" {
			segs = append(segs, Segment{Kind: SegmentTailTag, Text: t})
		}
	}
	return segs
}

// Render flattens a segment sequence to the plain output string.
func Render(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Text
	}
	return Compose(parts, "", nil)
}
