package models

import "time"

// SetRegistryClock lets tests drive session expiry.
func SetRegistryClock(r *SessionRegistry, now func() time.Time) {
	r.now = now
}
