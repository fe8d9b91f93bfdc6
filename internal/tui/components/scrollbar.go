package components

import (
	"strings"

	"github.com/sardesh/srebuddy/internal/tui/styles"
)

const (
	scrollTrack = "│"
	scrollThumb = "█"
)

// RenderScrollbar renders a 1-column vertical scrollbar for a view of
// viewHeight lines over contentHeight lines scrolled to yOffset. When the
// content fits, a blank gutter keeps the layout width stable.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}
	if contentHeight <= viewHeight {
		return strings.Repeat(" \n", viewHeight-1) + " "
	}

	thumbSize := max(1, viewHeight*viewHeight/contentHeight)
	thumbTop := 0
	if maxOffset := contentHeight - viewHeight; maxOffset > 0 {
		thumbTop = yOffset * (viewHeight - thumbSize) / maxOffset
	}
	thumbTop = min(max(thumbTop, 0), viewHeight-thumbSize)

	rows := make([]string, viewHeight)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = styles.ThumbStyle.Render(scrollThumb)
		} else {
			rows[i] = styles.TrackStyle.Render(scrollTrack)
		}
	}
	return strings.Join(rows, "\n")
}
