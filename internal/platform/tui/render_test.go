package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-dash/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(1, 1, "cd")

	assert.Equal(t, "ab  \n cd ", RenderScreen(s))
}

func TestRenderScreenColored(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColored(1, 1, "###", core.Color("#FF0055"))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "###")
	assert.Equal(t, "      ", lines[0])
}

func TestStyleForCaches(t *testing.T) {
	c := core.Color("#123456")
	first := styleFor(c)

	styleCache.RLock()
	_, ok := styleCache.styles[c]
	styleCache.RUnlock()

	assert.True(t, ok)
	assert.Equal(t, first.Render("x"), styleFor(c).Render("x"))
}
