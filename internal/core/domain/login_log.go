package domain

import "time"

// LoginMethod identifies how a login attempt authenticated. Closed set; every
// consumption site must handle all variants.
type LoginMethod string

const (
	LoginMethodPassword LoginMethod = "password"
	LoginMethodGoogle   LoginMethod = "google"
)

// IsValid reports whether m is one of the known login methods.
func (m LoginMethod) IsValid() bool {
	switch m {
	case LoginMethodPassword, LoginMethodGoogle:
		return true
	}
	return false
}

// DeviceType is the coarse device class derived from the User-Agent header.
// Anything that is neither mobile nor desktop is classified as a bot.
type DeviceType string

const (
	DeviceMobile DeviceType = "mobile"
	DevicePC     DeviceType = "pc"
	DeviceBot    DeviceType = "bot"
)

// IsValid reports whether d is one of the known device classes.
func (d DeviceType) IsValid() bool {
	switch d {
	case DeviceMobile, DevicePC, DeviceBot:
		return true
	}
	return false
}

// LoginLogEntry is an immutable audit record of a single login attempt.
// Entries are append-only; nothing in the application mutates or deletes them.
type LoginLogEntry struct {
	ID               int64       `json:"id"`
	UserID           *string     `json:"userID,omitempty"` // nil when the username is unknown
	Username         string      `json:"username"`
	LoginMethod      LoginMethod `json:"loginMethod"`
	Success          bool        `json:"success"`
	IPAddress        string      `json:"ipAddress"`
	UserAgent        string      `json:"userAgent"`
	DeviceType       DeviceType  `json:"deviceType"`
	IsSuspicious     bool        `json:"isSuspicious"`
	SuspiciousReason *string     `json:"suspiciousReason,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}
