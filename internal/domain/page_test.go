package domain

import (
	"testing"

	"github.com/sharetube/livepage/pkg/ytembed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer() Player {
	return Player{MountID: ElementYoutube, VideoID: "xyz", Width: 1280, Height: 720, PlayerVars: ytembed.LivePlayerVars()}
}

func TestPageApplyCreatesPlayerOnce(t *testing.T) {
	p := NewPage()
	p.Apply(CreatePlayer(testPlayer()))
	p.Apply(CreatePlayer(Player{MountID: ElementYoutube, VideoID: "other"}))

	require.NotNil(t, p.Player)
	assert.Equal(t, "xyz", p.Player.VideoID)
	assert.Equal(t, 1, p.PlayersCreated)
}

func TestPageApplyIsIdempotent(t *testing.T) {
	cmds := []Command{
		CreatePlayer(testPlayer()),
		SetDocumentTitle("T"),
		SetHTML(ElementTitle, "T"),
		SetHTML(ElementSummary, "S"),
		Remove(ElementLoading),
		RemoveClass(ElementMainContent, ClassHidden),
		AddClass(ElementContentWrapper, ClassHidden),
	}

	once := NewPage()
	once.Apply(cmds...)

	twice := NewPage()
	twice.Apply(cmds...)
	twice.Apply(cmds...)

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{ClassHidden}, twice.Elements[ElementContentWrapper].Added)
}

func TestPageClassToggle(t *testing.T) {
	p := NewPage()
	p.Apply(RemoveClass(ElementContentWrapper, ClassHidden))
	assert.True(t, p.ClassRemoved(ElementContentWrapper, ClassHidden))
	assert.False(t, p.HasClass(ElementContentWrapper, ClassHidden))

	p.Apply(AddClass(ElementContentWrapper, ClassHidden))
	assert.False(t, p.ClassRemoved(ElementContentWrapper, ClassHidden))
	assert.True(t, p.HasClass(ElementContentWrapper, ClassHidden))
}

func TestPageRemovedElementIgnoresUpdates(t *testing.T) {
	p := NewPage()
	p.Apply(Remove(ElementYoutube))
	p.Apply(CreatePlayer(testPlayer()))
	p.Apply(SetHTML(ElementYoutube, "x"))

	assert.Nil(t, p.Player)
	assert.Equal(t, "", p.HTML(ElementYoutube))
	assert.True(t, p.IsGone(ElementYoutube))
}

func TestPageReplayRebuildsPage(t *testing.T) {
	p := NewPage()
	p.Apply(
		CreatePlayer(testPlayer()),
		SetDocumentTitle("T"),
		SetHTML(ElementTitle, "T"),
		Remove(ElementLoading),
		RemoveClass(ElementMainContent, ClassHidden),
		ClearStyle(ElementVideoHeader, "height"),
	)

	replay := p.Replay()
	require.NotEmpty(t, replay)
	assert.Equal(t, OpCreatePlayer, replay[0].Op)

	rebuilt := NewPage()
	rebuilt.Apply(replay...)
	assert.Equal(t, p, rebuilt)
}

func TestPageReplayAfterEndSkipsPlayer(t *testing.T) {
	p := NewPage()
	p.Apply(CreatePlayer(testPlayer()), Remove(ElementYoutube))

	for _, cmd := range p.Replay() {
		assert.NotEqual(t, OpCreatePlayer, cmd.Op)
	}
}

func TestPageClone(t *testing.T) {
	p := NewPage()
	p.Apply(CreatePlayer(testPlayer()), SetHTML(ElementTitle, "T"), AddClass(ElementStreamingEnd, "a"))

	c := p.Clone()
	assert.Equal(t, p, c)

	c.Apply(SetHTML(ElementTitle, "changed"), AddClass(ElementStreamingEnd, "b"))
	assert.Equal(t, "T", p.HTML(ElementTitle))
	assert.Equal(t, []string{"a"}, p.Elements[ElementStreamingEnd].Added)
}
