package buffer

// Tag classifies one rendered character for styling.
type Tag uint8

const (
	TagNormal Tag = iota
	TagComment
	TagBlockComment
	TagKeyword
	TagType
	TagString
	TagChar
	TagNumber
	TagMatch
	TagSelection
)

var tagNames = [...]string{
	TagNormal:       "normal",
	TagComment:      "comment",
	TagBlockComment: "block_comment",
	TagKeyword:      "keyword",
	TagType:         "type",
	TagString:       "string",
	TagChar:         "char",
	TagNumber:       "number",
	TagMatch:        "match",
	TagSelection:    "selection",
}

// String returns the configuration name of the tag.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// ParseTag returns the tag with the given configuration name.
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return TagNormal, false
}

// Tags returns every defined tag in declaration order.
func Tags() []Tag {
	out := make([]Tag, len(tagNames))
	for i := range tagNames {
		out[i] = Tag(i)
	}
	return out
}
