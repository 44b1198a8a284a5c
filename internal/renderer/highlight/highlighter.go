package highlight

import (
	"strings"
	"unicode"

	"github.com/dshills/quill/internal/engine/buffer"
)

// separators end a word for keyword and number detection.
const separators = ",.()+-/*=~%<>[]\"';&{}:"

// Document is the line store being highlighted.
type Document interface {
	LineCount() int
	Line(i int) *buffer.Line
	MarkAllDirty()
}

// compiled holds a profile converted to rune slices for scanning.
type compiled struct {
	lineComment []rune
	blockStart  []rune
	blockEnd    []rune
	quotes      string
	chars       string
	multiline   string
	numbers     bool
	keywords    [][]rune
	types       [][]rune
}

func compile(p *Profile) *compiled {
	c := &compiled{
		lineComment: []rune(p.LineComment),
		quotes:      p.Strings,
		chars:       p.Chars,
		multiline:   p.MultilineStrings,
		numbers:     p.Numbers,
	}
	if len(p.BlockComment) == 2 {
		c.blockStart = []rune(p.BlockComment[0])
		c.blockEnd = []rune(p.BlockComment[1])
	}
	for _, kw := range p.Keywords {
		c.keywords = append(c.keywords, []rune(kw))
	}
	for _, kw := range p.Types {
		c.types = append(c.types, []rune(kw))
	}
	return c
}

// Highlighter tags render strings according to the active profile.
type Highlighter struct {
	profile *Profile
	c       *compiled
}

// New creates a highlighter. A nil profile tags everything TagNormal.
func New(p *Profile) *Highlighter {
	h := &Highlighter{}
	h.setProfile(p)
	return h
}

// Profile returns the active profile, or nil.
func (h *Highlighter) Profile() *Profile {
	return h.profile
}

// Name returns the active profile name, or "" when none is set.
func (h *Highlighter) Name() string {
	if h.profile == nil {
		return ""
	}
	return h.profile.Name
}

// SetProfile switches language and marks every line for re-tagging.
func (h *Highlighter) SetProfile(p *Profile, doc Document) {
	h.setProfile(p)
	doc.MarkAllDirty()
}

func (h *Highlighter) setProfile(p *Profile) {
	h.profile = p
	h.c = nil
	if p != nil {
		h.c = compile(p)
	}
}

// Update re-tags dirty lines. When a re-tagged line's exit state differs
// from what it was, the following lines are re-tagged too until one ends
// in the same state as before. It returns the number of lines re-tagged.
func (h *Highlighter) Update(doc Document) int {
	count := 0
	carry := false
	var prev buffer.LineState

	for i := 0; i < doc.LineCount(); i++ {
		l := doc.Line(i)
		if l.Dirty() || carry {
			was := l.ExitState()
			tags, exit := h.TagLine(l.Render(), prev)
			_ = l.SetHighlight(tags, exit)
			count++
			carry = exit != was
		}
		prev = l.ExitState()
	}
	return count
}

// TagLine classifies each rune of a render string. prev is the state the
// previous line ended in: an open block comment, or a string whose
// delimiter may span lines. The second result is the state this line ends in.
func (h *Highlighter) TagLine(render []rune, prev buffer.LineState) ([]buffer.Tag, buffer.LineState) {
	tags := make([]buffer.Tag, len(render))
	p := h.c
	if p == nil {
		return tags, buffer.LineState{}
	}

	prevSep := true
	var inString rune
	if p.spansLines(prev.Quote) {
		inString = prev.Quote
	}
	inComment := prev.Comment && inString == 0 && len(p.blockStart) > 0

	i := 0
	for i < len(render) {
		c := render[i]
		prevTag := buffer.TagNormal
		if i > 0 {
			prevTag = tags[i-1]
		}

		if len(p.lineComment) > 0 && inString == 0 && !inComment && hasPrefix(render[i:], p.lineComment) {
			fill(tags[i:], buffer.TagComment)
			break
		}

		if len(p.blockStart) > 0 && inString == 0 {
			if inComment {
				if hasPrefix(render[i:], p.blockEnd) {
					fill(tags[i:i+len(p.blockEnd)], buffer.TagBlockComment)
					i += len(p.blockEnd)
					inComment = false
					prevSep = true
					continue
				}
				tags[i] = buffer.TagBlockComment
				i++
				continue
			}
			if hasPrefix(render[i:], p.blockStart) {
				fill(tags[i:i+len(p.blockStart)], buffer.TagBlockComment)
				i += len(p.blockStart)
				inComment = true
				continue
			}
		}

		if inString != 0 {
			tags[i] = p.quoteTag(inString)
			if c == '\\' && i+1 < len(render) {
				tags[i+1] = tags[i]
				i += 2
				continue
			}
			if c == inString {
				inString = 0
			}
			i++
			prevSep = true
			continue
		}
		if p.isQuote(c) {
			inString = c
			tags[i] = p.quoteTag(c)
			i++
			continue
		}

		if p.numbers && ((unicode.IsDigit(c) && (prevSep || prevTag == buffer.TagNumber)) ||
			(c == '.' && prevTag == buffer.TagNumber)) {
			tags[i] = buffer.TagNumber
			i++
			prevSep = false
			continue
		}

		if prevSep {
			if n := matchWord(render[i:], p.keywords); n > 0 {
				fill(tags[i:i+n], buffer.TagKeyword)
				i += n
				prevSep = false
				continue
			}
			if n := matchWord(render[i:], p.types); n > 0 {
				fill(tags[i:i+n], buffer.TagType)
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	exit := buffer.LineState{Comment: inComment}
	if p.spansLines(inString) {
		exit.Quote = inString
	}
	return tags, exit
}

// spansLines reports whether a string opened with r continues past the end
// of its line.
func (c *compiled) spansLines(r rune) bool {
	return r != 0 && strings.ContainsRune(c.multiline, r)
}

func (c *compiled) isQuote(r rune) bool {
	return strings.ContainsRune(c.quotes, r) || strings.ContainsRune(c.chars, r)
}

func (c *compiled) quoteTag(r rune) buffer.Tag {
	if strings.ContainsRune(c.chars, r) {
		return buffer.TagChar
	}
	return buffer.TagString
}

// matchWord returns the length of the first word that prefixes s and is
// followed by a separator or the end of s.
func matchWord(s []rune, words [][]rune) int {
	for _, w := range words {
		if !hasPrefix(s, w) {
			continue
		}
		if len(s) == len(w) || isSeparator(s[len(w)]) {
			return len(w)
		}
	}
	return 0
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == 0 || strings.ContainsRune(separators, r)
}

func hasPrefix(s, prefix []rune) bool {
	if len(prefix) == 0 || len(s) < len(prefix) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

func fill(tags []buffer.Tag, tag buffer.Tag) {
	for i := range tags {
		tags[i] = tag
	}
}
