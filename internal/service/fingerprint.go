package service

import (
	"strings"

	"github.com/techserve_ng/backend/internal/utils"
)

const userAgentPrefix = 50

// Fingerprint derives the rate-limit key for a requester from the first
// X-Forwarded-For hop (or the connection address) and a truncated user agent.
func Fingerprint(forwardedFor, remoteIP, userAgent string) string {
	ip := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	if ip == "" {
		ip = strings.TrimSpace(remoteIP)
	}
	if ip == "" {
		ip = "unknown"
	}
	ua := userAgent
	if r := []rune(ua); len(r) > userAgentPrefix {
		ua = string(r[:userAgentPrefix])
	}
	return utils.HashKey(ip + "|" + ua)
}
