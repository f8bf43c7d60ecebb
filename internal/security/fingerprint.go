package security

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// ClientIP prefers the first X-Forwarded-For hop over the socket address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func DeviceInfo(r *http.Request) string {
	if ua := r.Header.Get("User-Agent"); ua != "" {
		return ua
	}
	return "Unknown Device"
}

// Fingerprint hashes the headers that stay stable for one browser install.
// encoding/json sorts map keys, which keeps the digest deterministic.
func Fingerprint(r *http.Request, ip string) string {
	data := map[string]string{
		"user_agent":         DeviceInfo(r),
		"ip_address":         ip,
		"accept_language":    r.Header.Get("Accept-Language"),
		"accept_encoding":    r.Header.Get("Accept-Encoding"),
		"sec_ch_ua":          r.Header.Get("Sec-Ch-Ua"),
		"sec_ch_ua_platform": r.Header.Get("Sec-Ch-Ua-Platform"),
	}

	raw, err := json.Marshal(data)
	if err != nil {
		raw = []byte(data["user_agent"] + ":" + ip)
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
