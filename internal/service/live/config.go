package live

import (
	"errors"
	"fmt"
	"time"

	"github.com/sharetube/livepage/pkg/validator"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrFetch         = errors.New("fetch error")
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultPlayerWidth  = 1280
	DefaultPlayerHeight = 720
)

var configValidator = validator.NewValidator()

// Settings are the page-wide options shared by every content id.
type Settings struct {
	ServerDomain string        `json:"server_domain"`
	APIKey       string        `json:"-"`
	Endpoint     string        `json:"end_point"`
	ArchiveMode  bool          `json:"archive_mode"`
	PollInterval time.Duration `json:"api_time"`
	PlayerWidth  int           `json:"youtube_width"`
	PlayerHeight int           `json:"youtube_height"`
}

// Config is what one poller runs with: the shared settings plus the content
// id and draft key taken from the page query.
type Config struct {
	ServerDomain string        `json:"server_domain" validate:"required"`
	APIKey       string        `json:"api_key" validate:"required"`
	Endpoint     string        `json:"end_point" validate:"required"`
	ArchiveMode  bool          `json:"archive_mode"`
	PollInterval time.Duration `json:"api_time" validate:"gt=0"`
	PlayerWidth  int           `json:"youtube_width" validate:"gt=0"`
	PlayerHeight int           `json:"youtube_height" validate:"gt=0"`
	ContentID    string        `json:"cid" validate:"required"`
	DraftKey     string        `json:"dkey"`
}

// NewConfig fills optional settings with their defaults.
func NewConfig(s *Settings, contentID, draftKey string) Config {
	cfg := Config{
		ServerDomain: s.ServerDomain,
		APIKey:       s.APIKey,
		Endpoint:     s.Endpoint,
		ArchiveMode:  s.ArchiveMode,
		PollInterval: s.PollInterval,
		PlayerWidth:  s.PlayerWidth,
		PlayerHeight: s.PlayerHeight,
		ContentID:    contentID,
		DraftKey:     draftKey,
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.PlayerWidth == 0 {
		cfg.PlayerWidth = DefaultPlayerWidth
	}
	if cfg.PlayerHeight == 0 {
		cfg.PlayerHeight = DefaultPlayerHeight
	}

	return cfg
}

// Validate requires every mandatory field to be non-empty.
func (c Config) Validate() error {
	if errs, ok := configValidator.Validate(c); !ok {
		return fmt.Errorf("%w: %w", ErrConfiguration, validator.Join(errs))
	}

	return nil
}

func (c Config) Key() string {
	return ContentKey(c.ContentID, c.DraftKey)
}

// ContentKey identifies one poller; drafts are polled separately from the
// published record.
func ContentKey(contentID, draftKey string) string {
	if draftKey == "" {
		return contentID
	}

	return contentID + "#" + draftKey
}
