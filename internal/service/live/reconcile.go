package live

import (
	"strings"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/repository/content"
	"github.com/sharetube/livepage/pkg/ytembed"
)

// StreamEndedHTML is the banner text shown once the stream is over.
const StreamEndedHTML = "配信は<br>終了しました"

var streamEndedClasses = []string{"text-white", "text-5xl", "py-40", "text-center", "leading-relaxed", "max-md:py-10"}

type ReconcileOptions struct {
	ArchiveMode  bool
	PlayerWidth  int
	PlayerHeight int
}

func (c Config) ReconcileOptions() ReconcileOptions {
	return ReconcileOptions{
		ArchiveMode:  c.ArchiveMode,
		PlayerWidth:  c.PlayerWidth,
		PlayerHeight: c.PlayerHeight,
	}
}

// Reconcile turns one fetched record into the commands that bring the page up
// to date, and returns the state the poller moves to.
func Reconcile(record content.Record, state State, opts ReconcileOptions) ([]domain.Command, State) {
	if state == StateStopped {
		return nil, StateStopped
	}

	titleHTML := strings.TrimSpace(plainTextPolicy.Sanitize(record.Title))
	summaryHTML := sanitizeRichText(record.Summary)

	cmds := make([]domain.Command, 0, 12)
	next := StateLive

	if state == StateUninitialized {
		cmds = append(cmds,
			domain.CreatePlayer(newPlayer(record.VideoID, opts)),
			domain.Remove(domain.ElementLoading),
			domain.RemoveClass(domain.ElementMainContent, domain.ClassHidden),
		)
	}

	cmds = append(cmds,
		domain.SetDocumentTitle(plainText(record.Title)),
		domain.SetHTML(domain.ElementTitle, titleHTML),
		domain.SetHTML(domain.ElementSummary, summaryHTML),
	)

	if record.ContentVisible && record.HasContent() {
		cmds = append(cmds,
			domain.SetHTML(domain.ElementContent, sanitizeRichText(*record.Content)),
			domain.RemoveClass(domain.ElementContentWrapper, domain.ClassHidden),
		)
	} else {
		cmds = append(cmds, domain.AddClass(domain.ElementContentWrapper, domain.ClassHidden))
	}

	if record.StreamEnded {
		cmds = append(cmds,
			domain.Remove(domain.ElementYoutube),
			domain.AddClass(domain.ElementStreamingEnd, streamEndedClasses...),
			domain.RemoveClass(domain.ElementStreamingEnd, domain.ClassHidden),
			domain.SetHTML(domain.ElementStreamingEnd, StreamEndedHTML),
		)
		next = StateStopped
	}

	return cmds, next
}

func newPlayer(videoID string, opts ReconcileOptions) domain.Player {
	id, err := ytembed.ParseVideoID(videoID)
	if err != nil {
		id = strings.TrimSpace(videoID)
	}

	player := domain.Player{
		MountID: domain.ElementYoutube,
		VideoID: id,
		Width:   opts.PlayerWidth,
		Height:  opts.PlayerHeight,
	}
	if !opts.ArchiveMode {
		player.PlayerVars = ytembed.LivePlayerVars()
	}

	return player
}
