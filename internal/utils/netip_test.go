package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "10.1.2.3:5555", want: "10.1.2.3"},
		{name: "ipv6 remote addr", remote: "[::1]:5555", want: "::1"},
		{
			name:    "headers ignored without trust",
			remote:  "10.1.2.3:5555",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.9"},
			want:    "10.1.2.3",
		},
		{
			name:       "left-most forwarded for",
			remote:     "127.0.0.1:5555",
			headers:    map[string]string{"X-Forwarded-For": " 203.0.113.9 , 10.0.0.1"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:   "cloudflare header first",
			remote: "127.0.0.1:5555",
			headers: map[string]string{
				"CF-Connecting-IP": "198.51.100.7",
				"X-Forwarded-For":  "203.0.113.9",
			},
			trustProxy: true,
			want:       "198.51.100.7",
		},
		{
			name:       "trusted but no headers",
			remote:     "127.0.0.1:5555",
			trustProxy: true,
			want:       "127.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.20 ", "fd00::/8", "garbage", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.20.30.40", true},
		{"192.168.1.20", true},
		{"192.168.1.21", false},
		{"::ffff:10.0.0.1", true},
		{"fd12::1", true},
		{"2001:db8::1", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := m.Allow(tt.ip); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}

	if m.IsEmpty() {
		t.Error("IsEmpty() = true with valid rules")
	}
	if inv := m.Invalid(); len(inv) != 1 || inv[0] != "garbage" {
		t.Errorf("Invalid() = %v, want [garbage]", inv)
	}
	if !NewIPMatcher([]string{"nope"}).IsEmpty() {
		t.Error("IsEmpty() = false with only invalid rules")
	}
}
