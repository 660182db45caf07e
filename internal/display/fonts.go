package display

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hammamikhairi/ottotimer/internal/logger"
)

//go:embed fonts/*.txt
var fontFS embed.FS

// Weight selects one of the bundled digit fonts.
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

func (w Weight) file() string {
	if w == WeightBold {
		return "fonts/bold.txt"
	}
	return "fonts/regular.txt"
}

// Font is a fixed-height block font for the countdown digits.
//
// Font files list glyphs one after another. A line "=c" starts glyph c;
// the rows that follow draw it, with '.' for blank cells. Lines starting
// with '!' are comments.
type Font struct {
	height int
	glyphs map[rune][]string
}

// ParseFont reads a font file.
func ParseFont(data string) (*Font, error) {
	f := &Font{glyphs: make(map[rune][]string)}

	var (
		cur  rune
		rows []string
		open bool
	)
	flush := func() error {
		if !open {
			return nil
		}
		if len(rows) == 0 {
			return fmt.Errorf("glyph %q has no rows", cur)
		}
		if f.height == 0 {
			f.height = len(rows)
		}
		if len(rows) != f.height {
			return fmt.Errorf("glyph %q is %d rows, want %d", cur, len(rows), f.height)
		}
		f.glyphs[cur] = padRows(rows)
		return nil
	}

	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "!"):
			continue
		case strings.HasPrefix(line, "="):
			if err := flush(); err != nil {
				return nil, err
			}
			name := strings.TrimPrefix(line, "=")
			if utf8.RuneCountInString(name) != 1 {
				return nil, fmt.Errorf("bad glyph header %q", line)
			}
			cur, _ = utf8.DecodeRuneInString(name)
			rows, open = nil, true
		case line == "":
			continue
		default:
			if !open {
				return nil, fmt.Errorf("row %q outside a glyph", line)
			}
			rows = append(rows, strings.ReplaceAll(line, ".", " "))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(f.glyphs) == 0 {
		return nil, errors.New("font has no glyphs")
	}
	return f, nil
}

// padRows right-pads rows to the width of the widest one.
func padRows(rows []string) []string {
	width := 0
	for _, r := range rows {
		width = max(width, utf8.RuneCountInString(r))
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r + strings.Repeat(" ", width-utf8.RuneCountInString(r))
	}
	return out
}

// Height returns the number of rows every glyph spans.
func (f *Font) Height() int { return f.height }

// Render draws text in the font, one space between glyphs. It reports
// false when a character has no glyph.
func (f *Font) Render(text string) (string, bool) {
	lines := make([]strings.Builder, f.height)
	for i, r := range []rune(text) {
		g, ok := f.glyphs[r]
		if !ok {
			return "", false
		}
		for row := range lines {
			if i > 0 {
				lines[row].WriteByte(' ')
			}
			lines[row].WriteString(g[row])
		}
	}

	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n"), true
}

// LoadFont parses one of the embedded fonts.
func LoadFont(w Weight) (*Font, error) {
	data, err := fontFS.ReadFile(w.file())
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	f, err := ParseFont(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", w.file(), err)
	}
	return f, nil
}

// Fonts holds the loaded weights. A nil weight falls back to plain text.
type Fonts struct {
	Regular *Font
	Bold    *Font
}

// LoadFonts loads both weights once at startup. Failures are logged and
// leave that weight nil.
func LoadFonts(log *logger.Logger) Fonts {
	var fonts Fonts
	for _, w := range []Weight{WeightRegular, WeightBold} {
		f, err := LoadFont(w)
		if err != nil {
			log.Warn("font unavailable, using plain text: %v", err)
			continue
		}
		if w == WeightBold {
			fonts.Bold = f
		} else {
			fonts.Regular = f
		}
	}
	return fonts
}

// Render draws text with the requested weight, falling back to the other
// weight and then to the text itself.
func (fs Fonts) Render(w Weight, text string) string {
	order := []*Font{fs.Regular, fs.Bold}
	if w == WeightBold {
		order = []*Font{fs.Bold, fs.Regular}
	}
	for _, f := range order {
		if f == nil {
			continue
		}
		if out, ok := f.Render(text); ok {
			return out
		}
	}
	return text
}
