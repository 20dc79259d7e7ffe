package entities

import (
	"fmt"
	"strings"
)

// BrowserKind selects which browser engine a session drives
type BrowserKind string

const (
	BrowserChrome  BrowserKind = "chrome"
	BrowserFirefox BrowserKind = "firefox"
	BrowserWebKit  BrowserKind = "webkit"
)

// ParseBrowserKind - anything that is not firefox or webkit falls back to chrome
func ParseBrowserKind(s string) BrowserKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "firefox":
		return BrowserFirefox
	case "webkit", "safari":
		return BrowserWebKit
	default:
		return BrowserChrome
	}
}

// Backend selects the automation library behind a session
type Backend string

const (
	BackendPlaywright Backend = "playwright"
	BackendSelenium   Backend = "selenium"
	// BackendSimulator drives an in-memory copy of the application.
	BackendSimulator Backend = "simulator"
)

// ParseBackend - empty means playwright, anything unrecognised is an error
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendPlaywright, nil
	case BackendPlaywright, BackendSelenium, BackendSimulator:
		return b, nil
	default:
		return "", fmt.Errorf("unknown browser backend %q (want playwright, selenium or simulator)", s)
	}
}
