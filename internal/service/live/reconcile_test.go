package live

import (
	"testing"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/repository/content"
	"github.com/sharetube/livepage/pkg/ytembed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultOptions = ReconcileOptions{PlayerWidth: 1280, PlayerHeight: 720}

func findOps(cmds []domain.Command, op domain.Op) []domain.Command {
	var found []domain.Command
	for _, cmd := range cmds {
		if cmd.Op == op {
			found = append(found, cmd)
		}
	}

	return found
}

func TestReconcileFirstFetch(t *testing.T) {
	record := content.Record{VideoID: "xyz", Title: "T", Summary: "S", ContentVisible: false, StreamEnded: false}

	cmds, next := Reconcile(record, StateUninitialized, defaultOptions)
	assert.Equal(t, StateLive, next)

	players := findOps(cmds, domain.OpCreatePlayer)
	require.Len(t, players, 1)
	assert.Equal(t, &domain.Player{
		MountID:    domain.ElementYoutube,
		VideoID:    "xyz",
		Width:      1280,
		Height:     720,
		PlayerVars: &ytembed.PlayerVars{Controls: 0, DisableKB: 1, ModestBranding: 1, Rel: 0},
	}, players[0].Player)

	page := domain.NewPage()
	page.Apply(cmds...)
	assert.Equal(t, "T", *page.DocumentTitle)
	assert.Equal(t, "T", page.HTML(domain.ElementTitle))
	assert.Equal(t, "S", page.HTML(domain.ElementSummary))
	assert.True(t, page.IsGone(domain.ElementLoading))
	assert.True(t, page.ClassRemoved(domain.ElementMainContent, domain.ClassHidden))
	assert.True(t, page.HasClass(domain.ElementContentWrapper, domain.ClassHidden))
	assert.False(t, page.IsGone(domain.ElementYoutube))
}

func TestReconcileArchiveModeKeepsDefaultControls(t *testing.T) {
	opts := defaultOptions
	opts.ArchiveMode = true

	cmds, _ := Reconcile(content.Record{VideoID: "xyz", Title: "T"}, StateUninitialized, opts)
	players := findOps(cmds, domain.OpCreatePlayer)
	require.Len(t, players, 1)
	assert.Nil(t, players[0].Player.PlayerVars)
}

func TestReconcileParsesVideoURL(t *testing.T) {
	cmds, _ := Reconcile(content.Record{VideoID: "https://youtu.be/dQw4w9WgXcQ"}, StateUninitialized, defaultOptions)
	players := findOps(cmds, domain.OpCreatePlayer)
	require.Len(t, players, 1)
	assert.Equal(t, "dQw4w9WgXcQ", players[0].Player.VideoID)
}

func TestReconcileLiveDoesNotCreatePlayer(t *testing.T) {
	cmds, next := Reconcile(content.Record{VideoID: "xyz", Title: "T2", Summary: "S2"}, StateLive, defaultOptions)
	assert.Equal(t, StateLive, next)
	assert.Empty(t, findOps(cmds, domain.OpCreatePlayer))
	assert.Empty(t, findOps(cmds, domain.OpRemove))

	page := domain.NewPage()
	page.Apply(cmds...)
	assert.Equal(t, "T2", page.HTML(domain.ElementTitle))
	assert.Equal(t, "S2", page.HTML(domain.ElementSummary))
}

func TestReconcileContentVisibility(t *testing.T) {
	tests := []struct {
		name    string
		record  content.Record
		visible bool
	}{
		{"visible with content", content.Record{ContentVisible: true, Content: strPtr("<p>more</p>")}, true},
		{"visible without content", content.Record{ContentVisible: true}, false},
		{"visible with empty content", content.Record{ContentVisible: true, Content: strPtr("")}, false},
		{"hidden with content", content.Record{ContentVisible: false, Content: strPtr("<p>more</p>")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, _ := Reconcile(tt.record, StateLive, defaultOptions)
			page := domain.NewPage()
			page.Apply(cmds...)

			assert.Equal(t, tt.visible, page.ClassRemoved(domain.ElementContentWrapper, domain.ClassHidden))
			assert.Equal(t, !tt.visible, page.HasClass(domain.ElementContentWrapper, domain.ClassHidden))
			if tt.visible {
				assert.Equal(t, "<p>more</p>", page.HTML(domain.ElementContent))
			}
		})
	}
}

func TestReconcileContentToggle(t *testing.T) {
	page := domain.NewPage()

	shown, _ := Reconcile(content.Record{ContentVisible: true, Content: strPtr("x")}, StateLive, defaultOptions)
	page.Apply(shown...)
	assert.True(t, page.ClassRemoved(domain.ElementContentWrapper, domain.ClassHidden))

	hidden, _ := Reconcile(content.Record{ContentVisible: false, Content: strPtr("x")}, StateLive, defaultOptions)
	page.Apply(hidden...)
	assert.True(t, page.HasClass(domain.ElementContentWrapper, domain.ClassHidden))
	assert.False(t, page.ClassRemoved(domain.ElementContentWrapper, domain.ClassHidden))
}

func TestReconcileIsIdempotent(t *testing.T) {
	record := content.Record{VideoID: "xyz", Title: "T", Summary: "S", ContentVisible: true, Content: strPtr("C")}

	page := domain.NewPage()
	first, state := Reconcile(record, StateUninitialized, defaultOptions)
	page.Apply(first...)
	afterFirst := page.Clone()

	second, _ := Reconcile(record, state, defaultOptions)
	page.Apply(second...)
	assert.Equal(t, afterFirst, page)

	third, _ := Reconcile(record, state, defaultOptions)
	assert.Equal(t, second, third)
}

func TestReconcileStreamEnded(t *testing.T) {
	cmds, next := Reconcile(content.Record{VideoID: "xyz", Title: "T", StreamEnded: true}, StateLive, defaultOptions)
	assert.Equal(t, StateStopped, next)

	page := domain.NewPage()
	page.Apply(cmds...)
	assert.True(t, page.IsGone(domain.ElementYoutube))
	assert.Equal(t, "配信は<br>終了しました", page.HTML(domain.ElementStreamingEnd))
	assert.True(t, page.ClassRemoved(domain.ElementStreamingEnd, domain.ClassHidden))
	for _, class := range []string{"text-white", "text-5xl", "py-40", "text-center", "leading-relaxed", "max-md:py-10"} {
		assert.True(t, page.HasClass(domain.ElementStreamingEnd, class), class)
	}
}

func TestReconcileEndedOnFirstFetch(t *testing.T) {
	cmds, next := Reconcile(content.Record{VideoID: "xyz", StreamEnded: true}, StateUninitialized, defaultOptions)
	assert.Equal(t, StateStopped, next)

	page := domain.NewPage()
	page.Apply(cmds...)
	assert.Equal(t, 1, page.PlayersCreated)
	assert.True(t, page.IsGone(domain.ElementYoutube))
	assert.Empty(t, findOps(page.Replay(), domain.OpCreatePlayer))
}

func TestReconcileStoppedIsTerminal(t *testing.T) {
	cmds, next := Reconcile(content.Record{VideoID: "xyz", Title: "T"}, StateStopped, defaultOptions)
	assert.Nil(t, cmds)
	assert.Equal(t, StateStopped, next)
}

func TestReconcileSanitizes(t *testing.T) {
	record := content.Record{
		Title:          `<b>Live</b> &amp; <script>alert(1)</script>`,
		Summary:        `<p onclick="x()">hi</p><script>alert(1)</script>`,
		ContentVisible: true,
		Content:        strPtr(`<a href="javascript:alert(1)">x</a><strong>ok</strong>`),
	}

	cmds, _ := Reconcile(record, StateLive, defaultOptions)
	page := domain.NewPage()
	page.Apply(cmds...)

	assert.Equal(t, "Live &amp;", page.HTML(domain.ElementTitle))
	assert.Equal(t, "Live &", *page.DocumentTitle)
	assert.Equal(t, "<p>hi</p>", page.HTML(domain.ElementSummary))
	assert.NotContains(t, page.HTML(domain.ElementContent), "javascript")
	assert.Contains(t, page.HTML(domain.ElementContent), "<strong>ok</strong>")
}
