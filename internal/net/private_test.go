package net

import "testing"

func TestIsPrivateNetwork(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"localhost:8080", true},
		{"127.0.0.1", true},
		{"10.1.2.3:443", true},
		{"172.16.0.1", true},
		{"172.32.0.1", false},
		{"192.168.1.20:8000", true},
		{"[::1]:80", true},
		{"fd00::1", true},
		{"fe80::1", true},
		{"8.8.8.8", false},
		{"2001:4860:4860::8888", false},
		{"nas.local", true},
		{"http://192.168.0.5/hook", true},
	}
	for _, tt := range tests {
		if got := IsPrivateNetwork(tt.host); got != tt.want {
			t.Errorf("IsPrivateNetwork(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}
