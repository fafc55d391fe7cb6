package chunker

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 800
	// DefaultOverlap is how many characters consecutive chunks share.
	DefaultOverlap = 150
	// DefaultMinChunkLen filters out fragments that add noise instead of content.
	DefaultMinChunkLen = 50
)

// defaultSeparators are tried in priority order: paragraph break, line break,
// sentence end, word boundary, and finally a hard character cut.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Chunker splits long text into overlapping chunks suitable for embedding.
// It prefers natural boundaries (paragraphs, lines, sentences) and only
// falls back to hard slicing when a single unbroken run exceeds the target.
type Chunker struct {
	chunkSize  int
	overlap    int
	minLen     int
	separators []string
}

func New() *Chunker {
	return NewWithConfig(DefaultChunkSize, DefaultOverlap, DefaultMinChunkLen)
}

func NewWithConfig(chunkSize, overlap, minLen int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Chunker{
		chunkSize:  chunkSize,
		overlap:    overlap,
		minLen:     minLen,
		separators: defaultSeparators,
	}
}

// Split chunks the input text. Chunks come back trimmed, in source order.
// Fragments at or below the minimum length are dropped; an input that is
// entirely below the threshold yields an empty slice, which callers must
// treat as "not enough content to process".
func (c *Chunker) Split(text string) []string {
	pieces := c.split(text, c.separators)

	chunks := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > c.minLen {
			chunks = append(chunks, p)
		}
	}
	return chunks
}

// split recursively divides text on the first separator present, merging the
// resulting fragments back into chunks close to chunkSize. Fragments that are
// still too large descend to the next separator in the priority list.
func (c *Chunker) split(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= c.chunkSize {
		return []string{text}
	}

	separator := separators[len(separators)-1]
	var next []string
	for i, s := range separators {
		if s == "" {
			separator = ""
			break
		}
		if strings.Contains(text, s) {
			separator = s
			next = separators[i+1:]
			break
		}
	}

	if separator == "" {
		return c.hardSlice(text)
	}

	// SplitAfter keeps the separator attached so no source text is lost.
	splits := strings.SplitAfter(text, separator)

	var final []string
	var pending []string
	for _, s := range splits {
		if utf8.RuneCountInString(s) <= c.chunkSize {
			pending = append(pending, s)
			continue
		}
		if len(pending) > 0 {
			final = append(final, c.merge(pending)...)
			pending = nil
		}
		if len(next) == 0 {
			final = append(final, c.hardSlice(s)...)
		} else {
			final = append(final, c.split(s, next)...)
		}
	}
	if len(pending) > 0 {
		final = append(final, c.merge(pending)...)
	}
	return final
}

// merge greedily packs fragments into chunks of at most chunkSize characters,
// carrying the tail fragments forward so consecutive chunks overlap.
func (c *Chunker) merge(splits []string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		if len(window) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(window, ""))
	}

	for _, s := range splits {
		l := utf8.RuneCountInString(s)
		if total+l > c.chunkSize && len(window) > 0 {
			flush()
			// Shrink the window from the front until it fits the overlap
			// budget; what remains seeds the next chunk.
			for total > c.overlap || (total+l > c.chunkSize && total > 0) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, s)
		total += l
	}
	flush()
	return chunks
}

// hardSlice cuts an unbreakable run into fixed-size rune windows with overlap.
func (c *Chunker) hardSlice(text string) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= c.chunkSize {
		return []string{text}
	}

	step := c.chunkSize - c.overlap
	if step <= 0 {
		step = c.chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + c.chunkSize
		if end > totalLen {
			end = totalLen
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == totalLen {
			break
		}
	}
	return chunks
}
