package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	cloudWidth    = 800
	cloudHeight   = 400
	cloudMaxWords = 100
	maxFontSize   = 72.0
	minFontSize   = 10.0
)

var ErrNoWords = errors.New("no words to draw")

var cloudPalette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a about above after again against all am an and any are as at be because been
		before being below between both but by can could did do does doing down during each few for from further had
		has have having he her here hers herself him himself his how i if in into is it its itself just me more most
		my myself no nor not now of off on once only or other our ours ourselves out over own same she should so some
		such than that the their theirs them themselves then there these they this those through to too under until up
		very was we were what when where which while who whom why will with would you your yours yourself yourselves`) {
		stopWords[w] = struct{}{}
	}
}

// WordCloud lays out words sized by frequency along an Archimedean spiral.
type WordCloud struct {
	font *truetype.Font
}

func NewWordCloud() (*WordCloud, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("error parsing font: %w", err)
	}

	return &WordCloud{font: f}, nil
}

type wordCount struct {
	word  string
	count int
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) overlaps(o rect) bool {
	return r.x0 < o.x1 && o.x0 < r.x1 && r.y0 < o.y1 && o.y0 < r.y1
}

func (w *WordCloud) RenderWordCloud(text string) ([]byte, error) {
	words := countWords(text)
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	if len(words) > cloudMaxWords {
		words = words[:cloudMaxWords]
	}

	dc := gg.NewContext(cloudWidth, cloudHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	maxCount := float64(words[0].count)
	placed := make([]rect, 0, len(words))

	for i, wc := range words {
		size := minFontSize + (maxFontSize-minFontSize)*float64(wc.count)/maxCount

		box, ok := w.place(dc, wc.word, size, placed)
		if !ok {
			log.Debug().Str("word", wc.word).Msg("no room left for word")
			continue
		}

		placed = append(placed, box)
		dc.SetColor(cloudPalette[i%len(cloudPalette)])
		dc.DrawStringAnchored(wc.word, (box.x0+box.x1)/2, (box.y0+box.y1)/2, 0.5, 0.35)
	}

	buf := new(bytes.Buffer)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, fmt.Errorf("error encoding word cloud: %w", err)
	}

	return buf.Bytes(), nil
}

// place finds a free spot for word, shrinking it until it fits or reaches the minimum size. It leaves the
// context's font face set to the size it settled on.
func (w *WordCloud) place(dc *gg.Context, word string, size float64, placed []rect) (rect, bool) {
	cx, cy := cloudWidth/2.0, cloudHeight/2.0

	for ; size >= minFontSize; size *= 0.8 {
		dc.SetFontFace(truetype.NewFace(w.font, &truetype.Options{Size: size}))
		tw, th := dc.MeasureString(word)
		tw += 4
		th += 4

		for t := 0.0; t < 200; t += 0.05 {
			x := cx + 2*t*math.Cos(t) - tw/2
			y := cy + t*math.Sin(t) - th/2

			box := rect{x0: x, y0: y, x1: x + tw, y1: y + th}
			if box.x0 < 0 || box.y0 < 0 || box.x1 > cloudWidth || box.y1 > cloudHeight {
				continue
			}

			if !slices.ContainsFunc(placed, box.overlaps) {
				return box, true
			}
		}
	}

	return rect{}, false
}

// countWords returns the non stop words of text by descending frequency, ties in alphabetical order.
func countWords(text string) []wordCount {
	counts := map[string]int{}
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	}) {
		word := strings.Trim(field, "'")
		if len([]rune(word)) < 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		counts[word]++
	}

	words := make([]wordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, wordCount{word: word, count: count})
	}

	slices.SortFunc(words, func(a, b wordCount) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return strings.Compare(a.word, b.word)
	})

	return words
}
