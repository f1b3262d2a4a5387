package utils

import "testing"

// TestNormalizeIP 测试IP标准化
func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ipv4", "192.168.1.10", "192.168.1.10"},
		{"ipv4 with port", "192.168.1.10:8080", "192.168.1.10"},
		{"forwarded list", "10.0.0.1, 192.168.1.1", "10.0.0.1"},
		{"ipv4 mapped ipv6", "::ffff:192.0.2.1", "192.0.2.1"},
		{"ipv6 with port", "[2001:db8::1]:443", "2001:db8::1"},
		{"plain ipv6", "2001:db8::1", "2001:db8::1"},
		{"not an ip", "localhost", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIP(tt.input); got != tt.want {
				t.Errorf("NormalizeIP(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
