package api

import "testing"

func TestResolveUploadURL(t *testing.T) {
	tests := []struct {
		base, in, want string
	}{
		{"http://host/api", "/uploads/img.png", "http://host/uploads/img.png"},
		{"http://host/api/", "/uploads/pdfs/r.pdf", "http://host/uploads/pdfs/r.pdf"},
		{"http://host", "/uploads/img.png", "http://host/uploads/img.png"},
		{"http://host/api", "https://cdn.example/img.png", "https://cdn.example/img.png"},
		{"http://host/api", "/static/logo.svg", "/static/logo.svg"},
		{"http://host/api", "", ""},
	}
	for _, tt := range tests {
		if got := ResolveUploadURL(tt.base, tt.in); got != tt.want {
			t.Errorf("ResolveUploadURL(%q, %q) = %q; want %q", tt.base, tt.in, got, tt.want)
		}
	}
}

func TestClientResolveUploadURL(t *testing.T) {
	c, err := New("http://host/api")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.ResolveUploadURL("/uploads/img.png"); got != "http://host/uploads/img.png" {
		t.Errorf("got %q", got)
	}
}
