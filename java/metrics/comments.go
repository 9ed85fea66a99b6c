package metrics

import (
	"fmt"

	"github.com/dhamidi/javamet/java/syntax"
)

// take attributes one comment to dst unless it is nil or was already
// claimed during this unit. Marking instead of detaching keeps the
// parsed tree intact while still counting each comment exactly once.
func (c *Collector) take(dst *Comments, cm *syntax.Comment) {
	if cm == nil || c.claimed[cm] {
		return
	}
	c.claimed[cm] = true
	switch cm.Kind {
	case syntax.LineComment:
		dst.Line.Count++
		dst.Line.Length += cm.ContentLength()
	case syntax.BlockComment:
		dst.Block.Count++
		dst.Block.Lines += cm.Lines()
		dst.Block.Length += cm.ContentLength()
	case syntax.DocComment:
		dst.Doc.Count++
		dst.Doc.Lines += cm.Lines()
		dst.Doc.Length += cm.ContentLength()
	default:
		panic(fmt.Sprintf("metrics: unhandled comment kind %v", cm.Kind))
	}
}

// drainNode collects a node's own doc, primary, and still unclaimed
// orphan comments. Drivers call this last, after children had their
// chance to claim.
func (c *Collector) drainNode(dst *Comments, n *syntax.Node) {
	c.take(dst, n.Doc)
	c.take(dst, n.Comment)
	for _, o := range n.Orphans {
		c.take(dst, o)
	}
}

// claimAdjacent moves the holder's orphan comments that sit directly
// above the child, or on the child's own lines, into dst.
//
// Orphans are scanned bottom-up. A comment ending on the line right
// above the boundary is claimed and moves the boundary up to its own
// start, so a stack of comments is absorbed as a chain. Orphans lying
// entirely below the child belong to a later sibling and are skipped;
// the first comment above the boundary separated by a gap ends the
// scan.
func (c *Collector) claimAdjacent(dst *Comments, holder, child *syntax.Node) {
	boundary := child.EffectiveStartLine()
	for i := len(holder.Orphans) - 1; i >= 0; i-- {
		o := holder.Orphans[i]
		if c.claimed[o] {
			continue
		}
		if o.Span.End.Line == boundary-1 {
			c.take(dst, o)
			boundary = o.Span.Start.Line
			continue
		}
		if o.Span.Start.Line > child.Span.End.Line {
			continue
		}
		if o.Span.End.Line < boundary-1 {
			return
		}
		// overlaps the child's own lines: same-line or trailing comment
		c.take(dst, o)
		if o.Span.Start.Line < boundary {
			boundary = o.Span.Start.Line
		}
	}
}
