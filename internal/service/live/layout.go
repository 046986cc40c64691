package live

import "github.com/sharetube/livepage/internal/domain"

// StickyHeaderBreakpoint is the viewport width below which the video header
// is pinned to the top.
const StickyHeaderBreakpoint = 640

var stickyHeaderClasses = []string{"sticky", "top-0", "w-full", "z-100"}

// HeaderLayout returns the commands that keep #video_header in sync with a
// viewport of the given width.
func HeaderLayout(width int) []domain.Command {
	cmds := []domain.Command{domain.ClearStyle(domain.ElementVideoHeader, "height")}
	if width < StickyHeaderBreakpoint {
		return append(cmds, domain.AddClass(domain.ElementVideoHeader, stickyHeaderClasses...))
	}

	return append(cmds, domain.RemoveClass(domain.ElementVideoHeader, stickyHeaderClasses...))
}
