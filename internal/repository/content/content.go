package content

import "errors"

var (
	ErrNotFound         = errors.New("content not found")
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// Record is the stream metadata a content record carries. Content is nil when
// the editor left the field empty.
type Record struct {
	VideoID        string  `json:"youtube"`
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	Content        *string `json:"content"`
	ContentVisible bool    `json:"content_view_flag"`
	StreamEnded    bool    `json:"streaming_end_flag"`
}

// HasContent reports whether the auxiliary content block has anything to show.
func (r Record) HasContent() bool {
	return r.Content != nil && *r.Content != ""
}

type GetParams struct {
	Endpoint  string
	ContentID string
	DraftKey  string
}
