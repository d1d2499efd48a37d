package models

import "time"

// Session is a server-side login session. The browser holds a signed token
// referencing ID; deleting the row logs the session out everywhere.
type Session struct {
	ID         string
	AccountKey string
	ExpiresAt  time.Time
}
