package storage

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "with version",
			url:  "https://res.cloudinary.com/demo/image/upload/v1700000000/abc123.png",
			want: "abc123",
		},
		{
			name: "nested folder",
			url:  "https://res.cloudinary.com/demo/image/upload/v1700000000/avatars/user-1.jpg",
			want: "avatars/user-1",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/abc123.webp",
			want: "abc123",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := publicIDFromURL(tc.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPublicIDFromURL_Unrecognised(t *testing.T) {
	if _, err := publicIDFromURL("https://example.com/nothing-here.png"); err == nil {
		t.Fatalf("expected error for non-delivery URL")
	}
}
