package live

import "github.com/sharetube/livepage/internal/domain"

const (
	OutputRender       = "RENDER"
	OutputPageState    = "PAGE_STATE"
	OutputHeaderLayout = "HEADER_LAYOUT"
	OutputError        = "ERROR"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type RenderPayload struct {
	State    string           `json:"state,omitempty"`
	Commands []domain.Command `json:"commands"`
}

type ConnectParams struct {
	ContentID string
	DraftKey  string
	Conn      domain.Conn
}

type ConnectResponse struct {
	Viewer *domain.Viewer
	State  State
	Replay []domain.Command
}
