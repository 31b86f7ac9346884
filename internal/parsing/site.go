package parsing

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Site returns the registrable domain of a URL (e.g. "youtube.com" for "https://m.youtube.com/watch?v=x").
//
// IP hosts are returned as is. Unparseable input returns "".
func Site(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || net.ParseIP(host) != nil {
		return host
	}

	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}
