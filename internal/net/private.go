// Package net provides networking utilities for media-dupes.
package net

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"media-dupes/internal/utils/logging"
)

const lookupTimeout = 2 * time.Second

// IsPrivateNetwork returns true if the host is detected as a LAN address.
func IsPrivateNetwork(host string) bool {
	var h string
	if strings.Contains(host, "://") {
		if u, err := url.Parse(host); err == nil {
			h = u.Hostname()
		}
	} else if hostOnly, _, err := net.SplitHostPort(host); err == nil {
		h = hostOnly
	}
	if h == "" {
		h = host // fallback to original input
	}
	h = strings.Trim(h, "[]")

	if h == "localhost" || strings.HasSuffix(h, ".local") || strings.HasSuffix(h, ".lan") {
		return true
	}

	if ip := net.ParseIP(h); ip != nil {
		return IsPrivateIP(ip)
	}
	return isPrivateNetworkFallback(h)
}

// IsPrivateIP reports whether ip is loopback, RFC 1918, ULA, or link-local.
func IsPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

// isPrivateNetworkFallback resolves the hostname and checks if any address is private.
func isPrivateNetworkFallback(h string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, h)
	if err != nil {
		logging.D(1, "Failed to resolve hostname %q: %v", h, err)
		return false
	}
	for _, a := range addrs {
		if IsPrivateIP(a.IP) {
			logging.D(2, "Host %q resolved to private IP address %q.", h, a.IP)
			return true
		}
	}
	logging.D(2, "Host %q resolved to public IP address(es) %v.", h, addrs)
	return false
}
