package ytembed

// IFrameAPIURL is the script the landing page injects to load YT.Player.
const IFrameAPIURL = "https://www.youtube.com/iframe_api"

// PlayerVars mirrors the subset of YT.Player playerVars the page sets.
type PlayerVars struct {
	Controls       int `json:"controls"`
	DisableKB      int `json:"disablekb"`
	ModestBranding int `json:"modestbranding"`
	Rel            int `json:"rel"`
}

// LivePlayerVars hides the player chrome for live streams.
func LivePlayerVars() *PlayerVars {
	return &PlayerVars{
		Controls:       0,
		DisableKB:      1,
		ModestBranding: 1,
		Rel:            0,
	}
}
