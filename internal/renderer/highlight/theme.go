package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/core"
)

// Theme defines colors and styles for syntax highlighting.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Foreground is the default text color.
	Foreground core.Color

	// Gutter is the line number color.
	Gutter core.Color

	// TagStyles maps highlight tags to their styles.
	TagStyles map[buffer.Tag]core.Style
}

// StyleFor returns the style for a highlight tag.
func (t *Theme) StyleFor(tag buffer.Tag) core.Style {
	if style, ok := t.TagStyles[tag]; ok {
		return style
	}
	// Fall back to default style
	return core.Style{
		Foreground: t.Foreground,
		Background: core.ColorDefault,
	}
}

// GutterStyle returns the style for line numbers.
func (t *Theme) GutterStyle() core.Style {
	return core.NewStyle(t.Gutter).Dim()
}

// Override replaces the foreground color of tags named in colors with the
// given hex values. Unknown tag names and malformed colors are errors and
// leave the theme unchanged.
func (t *Theme) Override(colors map[string]string) error {
	if len(colors) == 0 {
		return nil
	}
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	updated := make(map[buffer.Tag]core.Style, len(t.TagStyles))
	for k, v := range t.TagStyles {
		updated[k] = v
	}
	for _, name := range names {
		tag, ok := buffer.ParseTag(name)
		if !ok {
			return fmt.Errorf("unknown highlight tag %q", name)
		}
		c, err := core.ColorFromHex(colors[name])
		if err != nil {
			return fmt.Errorf("theme color %s: %w", name, err)
		}
		updated[tag] = t.StyleFor(tag).WithForeground(c)
	}
	t.TagStyles = updated
	return nil
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return []string{"default", "monokai"}
}

// ThemeByName returns a fresh copy of a built-in theme.
func ThemeByName(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultTheme(), nil
	case "monokai":
		return MonokaiTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// DefaultTheme returns a sensible default dark theme.
func DefaultTheme() *Theme {
	comment := core.ColorFromRGB(106, 153, 85)
	keyword := core.ColorFromRGB(86, 156, 214)
	str := core.ColorFromRGB(206, 145, 120)
	number := core.ColorFromRGB(181, 206, 168)
	typ := core.ColorFromRGB(78, 201, 176)

	return &Theme{
		Name:       "Default Dark",
		Foreground: core.ColorDefault,
		Gutter:     core.ColorFromRGB(133, 133, 133),
		TagStyles: map[buffer.Tag]core.Style{
			buffer.TagNormal:       core.DefaultStyle(),
			buffer.TagComment:      core.NewStyle(comment).Italic(),
			buffer.TagBlockComment: core.NewStyle(comment).Italic(),
			buffer.TagKeyword:      core.NewStyle(keyword),
			buffer.TagType:         core.NewStyle(typ),
			buffer.TagString:       core.NewStyle(str),
			buffer.TagChar:         core.NewStyle(core.ColorFromRGB(215, 186, 125)),
			buffer.TagNumber:       core.NewStyle(number),
			buffer.TagMatch:        core.DefaultStyle().WithBackground(core.ColorFromRGB(81, 92, 106)).Bold(),
			buffer.TagSelection:    core.DefaultStyle().Reverse(),
		},
	}
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	pink := core.ColorFromRGB(249, 38, 114)
	green := core.ColorFromRGB(166, 226, 46)
	yellow := core.ColorFromRGB(230, 219, 116)
	blue := core.ColorFromRGB(102, 217, 239)
	purple := core.ColorFromRGB(174, 129, 255)
	comment := core.ColorFromRGB(117, 113, 94)

	return &Theme{
		Name:       "Monokai",
		Foreground: core.ColorFromRGB(248, 248, 242),
		Gutter:     comment,
		TagStyles: map[buffer.Tag]core.Style{
			buffer.TagComment:      core.NewStyle(comment),
			buffer.TagBlockComment: core.NewStyle(comment),
			buffer.TagKeyword:      core.NewStyle(pink),
			buffer.TagType:         core.NewStyle(blue).Italic(),
			buffer.TagString:       core.NewStyle(yellow),
			buffer.TagChar:         core.NewStyle(yellow),
			buffer.TagNumber:       core.NewStyle(purple),
			buffer.TagMatch:        core.NewStyle(core.ColorFromRGB(39, 40, 34)).WithBackground(green),
			buffer.TagSelection:    core.DefaultStyle().WithBackground(core.ColorFromRGB(73, 72, 62)),
		},
	}
}
