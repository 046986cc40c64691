package live

import (
	"testing"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderLayout(t *testing.T) {
	sticky := []string{"sticky", "top-0", "w-full", "z-100"}

	for _, width := range []int{0, 320, 639} {
		cmds := HeaderLayout(width)
		require.Len(t, cmds, 2)
		assert.Equal(t, domain.ClearStyle(domain.ElementVideoHeader, "height"), cmds[0])
		assert.Equal(t, domain.AddClass(domain.ElementVideoHeader, sticky...), cmds[1], width)
	}

	for _, width := range []int{640, 641, 1920} {
		cmds := HeaderLayout(width)
		require.Len(t, cmds, 2)
		assert.Equal(t, domain.RemoveClass(domain.ElementVideoHeader, sticky...), cmds[1], width)
	}
}

func TestHeaderLayoutFollowsEveryResize(t *testing.T) {
	page := domain.NewPage()
	for _, width := range []int{1024, 500, 500, 700, 639, 640} {
		page.Apply(HeaderLayout(width)...)
		assert.Equal(t, width < StickyHeaderBreakpoint, page.HasClass(domain.ElementVideoHeader, "sticky"), width)
		assert.Equal(t, width < StickyHeaderBreakpoint, page.HasClass(domain.ElementVideoHeader, "z-100"), width)
	}
}
