package ytembed

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var ErrInvalidVideoID = errors.New("invalid youtube video id")

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

func IsVideoID(s string) bool {
	return videoIDRe.MatchString(s)
}

// ParseVideoID accepts a bare id or a watch/short/live/embed URL.
func ParseVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if IsVideoID(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", ErrInvalidVideoID
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			candidate = v
			break
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 && (parts[0] == "live" || parts[0] == "embed" || parts[0] == "shorts") {
			candidate = parts[1]
		}
	}

	if !IsVideoID(candidate) {
		return "", ErrInvalidVideoID
	}

	return candidate, nil
}
