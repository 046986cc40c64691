package domain

import "github.com/sharetube/livepage/pkg/ytembed"

// Player describes the embedded YouTube player bound to the #youtube mount.
type Player struct {
	MountID    string              `json:"mount_id"`
	VideoID    string              `json:"video_id"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	PlayerVars *ytembed.PlayerVars `json:"player_vars,omitempty"`
}
