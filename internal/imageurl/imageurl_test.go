package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name string
		ref  string
		want string
	}{
		{name: "empty", ref: "", want: "/assets/General Photo1.jpg"},
		{name: "absolute path", ref: "/x.jpg", want: "/x.jpg"},
		{name: "http url", ref: "https://cdn.example.com/a.jpg", want: "https://cdn.example.com/a.jpg"},
		{name: "data uri", ref: "data:image/png;base64,AAAA", want: "data:image/png;base64,AAAA"},
		{name: "uploaded file", ref: "1700000000000-abc.jpg", want: "/attached_assets/1700000000000-abc.jpg"},
		{name: "brand keyword", ref: "matcha-swirl.jpg", want: "/attached_assets/matcha-swirl.jpg"},
		{name: "brand keyword any case", ref: "Matcha1.jpg", want: "/attached_assets/Matcha1.jpg"},
		{name: "plain asset", ref: "plain.jpg", want: "/assets/plain.jpg"},
		{name: "asset with spaces", ref: "General Photo3.jpg", want: "/assets/General Photo3.jpg"},
		{name: "short timestamp is not an upload", ref: "170000-abc.jpg", want: "/assets/170000-abc.jpg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.ref))
		})
	}
}

func TestResolveOrder(t *testing.T) {
	// A leading slash wins over both upload rules.
	assert.Equal(t, "/1700000000000-matcha.jpg", Resolve("/1700000000000-matcha.jpg"))
}

func TestResolverCustomSettings(t *testing.T) {
	r := Resolver{
		DefaultImage:  "/static/placeholder.png",
		UploadsPrefix: "/uploads/",
		AssetsPrefix:  "/static/",
		Keywords:      []string{" Hojicha "},
	}

	assert.Equal(t, "/static/placeholder.png", r.Resolve(""))
	assert.Equal(t, "/uploads/hojicha-loaf.jpg", r.Resolve("hojicha-loaf.jpg"))
	assert.Equal(t, "/static/matcha.jpg", r.Resolve("matcha.jpg"))
}
