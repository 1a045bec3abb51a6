package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventaris-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Kursi Lipat":         "kursi-lipat",
		"  Meja   Rapat  ":    "meja-rapat",
		"Proyektor (Epson) X": "proyektor-epson-x",
		"Café Olé":            "cafe-ole",
		"Kabel_HDMI 2m":       "kabel-hdmi-2m",
		"---":                 "",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "slug de %q", in)
	}
}
