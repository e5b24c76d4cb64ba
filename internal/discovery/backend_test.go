package discovery

import "testing"

func TestBackend_String(t *testing.T) {
	backend := &Backend{
		Instance: "campuspass-mock",
		Hostname: "devbox.local.",
		IP:       "192.168.1.20",
		Port:     8787,
	}

	expected := "campuspass-mock (devbox.local.) at http://192.168.1.20:8787"
	if backend.String() != expected {
		t.Errorf("Backend.String() = %v, want %v", backend.String(), expected)
	}
}

func TestBackend_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		backend  *Backend
		expected string
	}{
		{
			name:     "IPv4",
			backend:  &Backend{IP: "10.0.0.5", Port: 8787},
			expected: "http://10.0.0.5:8787",
		},
		{
			name:     "IPv6 is bracketed",
			backend:  &Backend{IP: "fe80::1", Port: 9000},
			expected: "http://[fe80::1]:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.backend.BaseURL(); got != tt.expected {
				t.Errorf("Backend.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBackend_GetMetadata_NilMap(t *testing.T) {
	backend := &Backend{}

	if got := backend.GetMetadata("anything"); got != "" {
		t.Errorf("Backend.GetMetadata() with nil map = %v, want empty string", got)
	}
}
