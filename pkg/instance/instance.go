package instance

import "os"

// GetID returns the serving instance identifier for log tagging. Heroku-style
// DYNO names win, then the container hostname.
func GetID() string {
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
