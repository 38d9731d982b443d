package utils

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidWebsite is returned when a website cannot be parsed into a host.
var ErrInvalidWebsite = errors.New("invalid website address")

// NormalizeWebsite maps the different spellings of one site to a single stored form so that
// "https://acme.pl/", "http://www.acme.pl" and "acme.pl" collide on the unique website column.
// The stored form is always "http://www.<host><path>" without a trailing slash.
func NormalizeWebsite(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidWebsite
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrInvalidWebsite
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidWebsite
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, ".") {
		return "", ErrInvalidWebsite
	}
	if !strings.HasPrefix(host, "www.") {
		host = "www." + host
	}

	path := strings.TrimRight(u.EscapedPath(), "/")

	return "http://" + host + path, nil
}
