package style

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestColorCodes(t *testing.T) {
	cases := map[Color]string{
		White:        "\x1b[97m",
		Black:        "\x1b[30m",
		Red:          "\x1b[31m",
		Green:        "\x1b[32m",
		Yellow:       "\x1b[33m",
		Blue:         "\x1b[34m",
		Magenta:      "\x1b[35m",
		Cyan:         "\x1b[36m",
		LightGray:    "\x1b[37m",
		DarkGray:     "\x1b[90m",
		LightRed:     "\x1b[91m",
		LightGreen:   "\x1b[92m",
		LightYellow:  "\x1b[93m",
		LightBlue:    "\x1b[94m",
		LightMagenta: "\x1b[95m",
		LightCyan:    "\x1b[96m",
	}
	for c, want := range cases {
		assert.Equal(t, want, c.String(), c.Name())
	}
}

func TestStyleCodes(t *testing.T) {
	cases := map[Style]string{
		Normal:        "\x1b[0m",
		Bold:          "\x1b[1m",
		Dim:           "\x1b[2m",
		Italic:        "\x1b[3m",
		Underlined:    "\x1b[4m",
		Blink:         "\x1b[5m",
		Reverse:       "\x1b[7m",
		Hidden:        "\x1b[8m",
		StrikeThrough: "\x1b[9m",
	}
	for s, want := range cases {
		assert.Equal(t, want, s.String(), s.Name())
	}
}

func TestParse(t *testing.T) {
	c, err := ParseColor("Light-Green")
	assert.NoError(t, err)
	assert.Equal(t, LightGreen, c)

	s, err := ParseStyle(" BOLD ")
	assert.NoError(t, err)
	assert.Equal(t, Bold, s)

	m, err := ParseMode("center")
	assert.NoError(t, err)
	assert.Equal(t, Center, m)

	_, err = ParseColor("chartreuse")
	assert.Error(t, err)
	_, err = ParseStyle("")
	assert.Error(t, err)
	_, err = ParseMode("justify")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "      Failed", Normalize("Failed"))
	assert.Equal(t, "     Success", Normalize("Success"))
	assert.Equal(t, "exactly12chr", Normalize("exactly12chr"))
	assert.Equal(t, "a much longe", Normalize("a much longer label"))
	assert.Equal(t, strings.Repeat(" ", 12), Normalize(""))
}

func TestNormalizeProperties(t *testing.T) {
	inputs := []string{"", "a", "Loading", "exactly12chr", "thirteen char", "下载中", "一二三四五六七八九十十一十二十三", strings.Repeat("x", 100)}
	for _, in := range inputs {
		for _, mode := range []Mode{Right, Left, Center} {
			once := NormalizeMode(in, mode)
			assert.Equal(t, LabelWidth, utf8.RuneCountInString(once), in)
			assert.Equal(t, once, NormalizeMode(once, mode), in)
		}
	}
}

func TestNormalizeModes(t *testing.T) {
	assert.Equal(t, "Warn        ", NormalizeMode("Warn", Left))
	assert.Equal(t, "    Warn    ", NormalizeMode("Warn", Center))
	assert.Equal(t, "    Error   ", NormalizeMode("Error", Center))
	assert.Equal(t, "        Warn", NormalizeMode("Warn", Right))
}
