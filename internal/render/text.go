package render

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	messageColumns = 24
	messagePadding = 3
	lineHeight     = 13
)

// Wrap breaks text into lines of at most width runes, on spaces where it can.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = 1
	}
	var lines []string
	var line strings.Builder
	lineLen := 0
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineLen = 0
	}

	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if lineLen > 0 && lineLen+1+n > width {
			flush()
		}
		for n > width {
			cut := runeOffset(word, width-lineLen)
			line.WriteString(word[:cut])
			flush()
			word = word[cut:]
			n = utf8.RuneCountInString(word)
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += n
	}
	if lineLen > 0 {
		flush()
	}
	return lines
}

func runeOffset(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

// drawNametag centers name under the actor's anchor.
func drawNametag(screen *ebiten.Image, name string, x, y float64, clr color.Color) {
	face := basicfont.Face7x13
	w := textWidth(name)
	ebitext.Draw(screen, name, face, int(x)-w/2, int(y)+face.Ascent+2, clr)
}

// drawMessage draws a speech box whose bottom edge sits at y.
func drawMessage(screen *ebiten.Image, msg string, x, y float64) {
	lines := Wrap(msg, messageColumns)
	if len(lines) == 0 {
		return
	}
	w := 0
	for _, l := range lines {
		w = max(w, textWidth(l))
	}
	h := len(lines) * lineHeight
	left := int(x) - w/2 - messagePadding
	top := int(y) - h - 2*messagePadding

	vector.DrawFilledRect(screen, float32(left), float32(top), float32(w+2*messagePadding), float32(h+2*messagePadding), ColorMessageBox, false)

	face := basicfont.Face7x13
	for i, l := range lines {
		ebitext.Draw(screen, l, face, left+messagePadding, top+messagePadding+i*lineHeight+face.Ascent, ColorMessage)
	}
}
