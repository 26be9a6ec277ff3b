package utils

import (
	"github.com/SscSPs/secure_auth_app/internal/core/domain"
	"github.com/mileusna/useragent"
)

// ClassifyDevice derives the coarse device class from a raw User-Agent header.
// Phones map to mobile, desktop browsers to pc, and everything else (crawlers,
// scripts, empty or unparseable agents) to bot.
func ClassifyDevice(userAgentString string) domain.DeviceType {
	ua := useragent.Parse(userAgentString)
	switch {
	case ua.Mobile:
		return domain.DeviceMobile
	case ua.Desktop:
		return domain.DevicePC
	default:
		return domain.DeviceBot
	}
}
