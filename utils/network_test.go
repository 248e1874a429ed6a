package utils

import "testing"

func TestIsNetworkDriveUNC(t *testing.T) {
	for _, p := range []string{"//nas/media/movie.mkv", `\\nas\media\movie.mkv`} {
		if !IsNetworkDrive(p) {
			t.Errorf("IsNetworkDrive(%q) = false, expected true", p)
		}
	}
}

func TestLooksLikeNetworkPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"Linux mnt", "/mnt/nas/movie.mkv", true},
		{"Linux media", "/media/usb/movie.mkv", true},
		{"macOS volumes", "/Volumes/Share/movie.mkv", true},
		{"NFS in path", "/srv/nfs/movies/movie.mkv", true},
		{"Local home", "/home/user/Videos/movie.mkv", false},
		{"Local tmp", "/tmp/movie.mkv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeNetworkPath(tt.path); got != tt.expected {
				t.Errorf("looksLikeNetworkPath(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path, mount string
		expected    bool
	}{
		{"/srv/media/a.mkv", "/", true},
		{"/srv/media/a.mkv", "/srv/media", true},
		{"/srv/media/a.mkv", "/srv/media/", true},
		{"/srv/media", "/srv/media", true},
		{"/srv/mediafiles/a.mkv", "/srv/media", false},
		{"/home/a.mkv", "/srv", false},
	}

	for _, tt := range tests {
		if got := isWithin(tt.path, tt.mount); got != tt.expected {
			t.Errorf("isWithin(%q, %q) = %v, expected %v", tt.path, tt.mount, got, tt.expected)
		}
	}
}
