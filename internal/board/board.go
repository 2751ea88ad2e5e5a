// Package board draws a game snapshot as terminal text.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/arcanaland/matcher/internal/artwork"
	"github.com/arcanaland/matcher/internal/card"
	"github.com/arcanaland/matcher/internal/deck"
	"github.com/arcanaland/matcher/internal/game"
)

const gap = 2

var (
	backColor   = color.New(color.FgBlue)
	numberColor = color.New(color.FgHiWhite, color.Bold)
	titleColor  = color.New(color.FgCyan)
	winColor    = color.New(color.FgHiGreen, color.Bold)
	warnColor   = color.New(color.FgYellow)
)

// Layout is the size of one card and of the terminal
type Layout struct {
	CardWidth  int // cells
	CardHeight int // rows of art, excluding the label row
	Width      int // terminal width
}

// Render draws the board. faces maps image URLs to ANSI art; cards without a
// face show their title when flipped.
func Render(snap game.Snapshot, faces map[string]string, l Layout) string {
	var b strings.Builder

	if snap.NoData {
		b.WriteString(warnColor.Sprint("we do not have images!"))
		b.WriteString("\n")
		return b.String()
	}

	if snap.Won {
		b.WriteString(winColor.Sprintf("You won! %d pairs matched.", snap.Matched))
		b.WriteString("\n")
		return b.String()
	}

	perRow := (l.Width + gap) / (l.CardWidth + gap)
	if perRow < 1 {
		perRow = 1
	}

	for start := 0; start < len(snap.Deck); start += perRow {
		end := start + perRow
		if end > len(snap.Deck) {
			end = len(snap.Deck)
		}

		blocks := make([][]string, 0, end-start)
		for i := start; i < end; i++ {
			c := snap.Deck[i]
			blocks = append(blocks, cardBlock(c, i+1, snap.IsCardSelected(c.CardID), faces[c.URL], l))
		}
		writeRow(&b, blocks, l.CardWidth)
		b.WriteString("\n")
	}

	b.WriteString(Status(snap))
	b.WriteString("\n")

	return b.String()
}

// Status is the line shown under the board
func Status(snap game.Snapshot) string {
	left := deck.Pairs(snap.Deck)
	switch snap.Phase {
	case game.OneSelected:
		return fmt.Sprintf("Pick a second card. %d matched, %d pairs left.", snap.Matched, left)
	case game.Resolving:
		return fmt.Sprintf("Comparing... %d matched, %d pairs left.", snap.Matched, left)
	default:
		return fmt.Sprintf("Pick a card by number. %d matched, %d pairs left.", snap.Matched, left)
	}
}

// cardBlock returns CardHeight+1 lines, each CardWidth cells wide
func cardBlock(c card.Card, position int, selected bool, face string, l Layout) []string {
	lines := make([]string, 0, l.CardHeight+1)

	switch {
	case !selected:
		for i := 0; i < l.CardHeight; i++ {
			lines = append(lines, backColor.Sprint(strings.Repeat("░", l.CardWidth)))
		}
		label := center("#"+strconv.Itoa(position), l.CardWidth)
		lines = append(lines, numberColor.Sprint(label))
		return lines

	case face != "":
		for _, line := range strings.Split(face, "\n") {
			if len(lines) == l.CardHeight {
				break
			}
			lines = append(lines, pad(line, l.CardWidth))
		}

	default:
		for _, line := range wrapText(c.Title, l.CardWidth) {
			if len(lines) == l.CardHeight {
				break
			}
			lines = append(lines, titleColor.Sprint(pad(line, l.CardWidth)))
		}
	}

	for len(lines) < l.CardHeight {
		lines = append(lines, strings.Repeat(" ", l.CardWidth))
	}

	title := c.Title
	if title == "" || face == "" {
		title = "#" + strconv.Itoa(position)
	}
	lines = append(lines, titleColor.Sprint(pad(truncate(title, l.CardWidth), l.CardWidth)))

	return lines
}

func writeRow(b *strings.Builder, blocks [][]string, width int) {
	height := 0
	for _, block := range blocks {
		if len(block) > height {
			height = len(block)
		}
	}

	for row := 0; row < height; row++ {
		for i, block := range blocks {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			if row < len(block) {
				b.WriteString(block[row])
			} else {
				b.WriteString(strings.Repeat(" ", width))
			}
		}
		b.WriteString("\n")
	}
}

// visibleWidth counts cells, ignoring escape sequences
func visibleWidth(s string) int {
	return len([]rune(artwork.StripAnsi(s)))
}

func pad(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func center(s string, width int) string {
	w := visibleWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		word = truncate(word, width)
		if len(currentLine) == 0 {
			currentLine = word
		} else if len([]rune(currentLine))+1+len([]rune(word)) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
