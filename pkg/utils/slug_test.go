package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Teddy Bear!!":          "teddy-bear",
		"Teddy Bear":            "teddy-bear",
		"  LEGO Bricks Mix  ":   "lego-bricks-mix",
		"Don't Stop":            "dont-stop",
		`Say "Cheese"`:          "say-cheese",
		"Jigsaw Puzzle 1000pc":  "jigsaw-puzzle-1000pc",
		"---weird---name---":    "weird-name",
		"!!!":                   "",
		"Многоцветные кубики":   "", // 非 ASCII 全部归为分隔符
		"Robot 3000 (Deluxe +)": "robot-3000-deluxe",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	names := []string{"Teddy Bear!!", "LEGO Bricks Mix (Placeholder)", "a--b", "Hello, World!"}
	for _, n := range names {
		once := Slugify(n)
		assert.Equal(t, once, Slugify(once), "slugify must be idempotent for %q", n)
	}
}
