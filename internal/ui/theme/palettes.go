package theme

import "github.com/charmbracelet/lipgloss"

// pair is a {dark, light} hex color pair.
type pair [2]string

func (p pair) adaptive() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: p[0], Light: p[1]}
}

// palette implements Theme from a table of color pairs.
type palette struct {
	primary, secondary, accent                pair
	err, warning, success, info               pair
	text, textMuted, textEmphasized           pair
	background, backgroundSecondary, bgDarker pair
	borderNormal, borderFocused, borderDim    pair
}

func (p palette) Primary() lipgloss.AdaptiveColor { return p.primary.adaptive() }
func (p palette) Secondary() lipgloss.AdaptiveColor { return p.secondary.adaptive() }
func (p palette) Accent() lipgloss.AdaptiveColor { return p.accent.adaptive() }
func (p palette) Error() lipgloss.AdaptiveColor { return p.err.adaptive() }
func (p palette) Warning() lipgloss.AdaptiveColor { return p.warning.adaptive() }
func (p palette) Success() lipgloss.AdaptiveColor { return p.success.adaptive() }
func (p palette) Info() lipgloss.AdaptiveColor { return p.info.adaptive() }
func (p palette) Text() lipgloss.AdaptiveColor { return p.text.adaptive() }
func (p palette) TextMuted() lipgloss.AdaptiveColor { return p.textMuted.adaptive() }
func (p palette) TextEmphasized() lipgloss.AdaptiveColor { return p.textEmphasized.adaptive() }
func (p palette) Background() lipgloss.AdaptiveColor { return p.background.adaptive() }
func (p palette) BackgroundSecondary() lipgloss.AdaptiveColor { return p.backgroundSecondary.adaptive() }
func (p palette) BackgroundDarker() lipgloss.AdaptiveColor { return p.bgDarker.adaptive() }
func (p palette) BorderNormal() lipgloss.AdaptiveColor { return p.borderNormal.adaptive() }
func (p palette) BorderFocused() lipgloss.AdaptiveColor { return p.borderFocused.adaptive() }
func (p palette) BorderDim() lipgloss.AdaptiveColor { return p.borderDim.adaptive() }

// tokyonight is registered first and is therefore the default.
var tokyonight = palette{
	primary:             pair{"#82aaff", "#2e7de9"},
	secondary:           pair{"#c099ff", "#9854f1"},
	accent:              pair{"#ff966c", "#b15c00"},
	err:                 pair{"#ff757f", "#f52a65"},
	warning:             pair{"#ff966c", "#b15c00"},
	success:             pair{"#c3e88d", "#587539"},
	info:                pair{"#7dcfff", "#0db9d7"},
	text:                pair{"#c8d3f5", "#3760bf"},
	textMuted:           pair{"#636da6", "#848cb5"},
	textEmphasized:      pair{"#ffc777", "#8c6c3e"},
	background:          pair{"#222436", "#e1e2e7"},
	backgroundSecondary: pair{"#2f334d", "#c8c9ce"},
	bgDarker:            pair{"#1e2030", "#d5d6db"},
	borderNormal:        pair{"#3b4261", "#a8aecb"},
	borderFocused:       pair{"#82aaff", "#2e7de9"},
	borderDim:           pair{"#292e42", "#c8c9ce"},
}

var catppuccin = palette{
	primary:             pair{"#89b4fa", "#1e66f5"},
	secondary:           pair{"#cba6f7", "#8839ef"},
	accent:              pair{"#fab387", "#fe640b"},
	err:                 pair{"#f38ba8", "#d20f39"},
	warning:             pair{"#fab387", "#fe640b"},
	success:             pair{"#a6e3a1", "#40a02b"},
	info:                pair{"#89b4fa", "#1e66f5"},
	text:                pair{"#cdd6f4", "#4c4f69"},
	textMuted:           pair{"#6c7086", "#9ca0b0"},
	textEmphasized:      pair{"#f5e0dc", "#dc8a78"},
	background:          pair{"#1e1e2e", "#eff1f5"},
	backgroundSecondary: pair{"#313244", "#e6e9ef"},
	bgDarker:            pair{"#181825", "#dce0e8"},
	borderNormal:        pair{"#6c7086", "#9ca0b0"},
	borderFocused:       pair{"#89b4fa", "#1e66f5"},
	borderDim:           pair{"#45475a", "#ccd0da"},
}

var dracula = palette{
	primary:             pair{"#bd93f9", "#7e57c2"},
	secondary:           pair{"#8be9fd", "#0097a7"},
	accent:              pair{"#f1fa8c", "#f9a825"},
	err:                 pair{"#ff5555", "#d32f2f"},
	warning:             pair{"#ffb86c", "#ef6c00"},
	success:             pair{"#50fa7b", "#388e3c"},
	info:                pair{"#8be9fd", "#1976d2"},
	text:                pair{"#f8f8f2", "#212121"},
	textMuted:           pair{"#6272a4", "#757575"},
	textEmphasized:      pair{"#f8f8f2", "#000000"},
	background:          pair{"#282a36", "#ffffff"},
	backgroundSecondary: pair{"#44475a", "#e0e0e0"},
	bgDarker:            pair{"#1e1f29", "#bdbdbd"},
	borderNormal:        pair{"#6272a4", "#bdbdbd"},
	borderFocused:       pair{"#bd93f9", "#7e57c2"},
	borderDim:           pair{"#44475a", "#e0e0e0"},
}

var gruvbox = palette{
	primary:             pair{"#83a598", "#076678"},
	secondary:           pair{"#d3869b", "#8f3f71"},
	accent:              pair{"#fabd2f", "#b57614"},
	err:                 pair{"#fb4934", "#9d0006"},
	warning:             pair{"#fe8019", "#af3a03"},
	success:             pair{"#b8bb26", "#79740e"},
	info:                pair{"#83a598", "#076678"},
	text:                pair{"#ebdbb2", "#3c3836"},
	textMuted:           pair{"#a89984", "#7c6f64"},
	textEmphasized:      pair{"#fabd2f", "#b57614"},
	background:          pair{"#282828", "#fbf1c7"},
	backgroundSecondary: pair{"#504945", "#ebdbb2"},
	bgDarker:            pair{"#1d2021", "#d5c4a1"},
	borderNormal:        pair{"#504945", "#bdae93"},
	borderFocused:       pair{"#83a598", "#076678"},
	borderDim:           pair{"#3c3836", "#d5c4a1"},
}

// Nord: https://www.nordtheme.com/docs/colors-and-palettes
var nord = palette{
	primary:             pair{"#88C0D0", "#5E81AC"},
	secondary:           pair{"#81A1C1", "#81A1C1"},
	accent:              pair{"#8FBCBB", "#8FBCBB"},
	err:                 pair{"#BF616A", "#BF616A"},
	warning:             pair{"#D08770", "#D08770"},
	success:             pair{"#A3BE8C", "#A3BE8C"},
	info:                pair{"#88C0D0", "#5E81AC"},
	text:                pair{"#ECEFF4", "#2E3440"},
	textMuted:           pair{"#8B95A7", "#3B4252"},
	textEmphasized:      pair{"#ECEFF4", "#000000"},
	background:          pair{"#2E3440", "#ECEFF4"},
	backgroundSecondary: pair{"#3B4252", "#E5E9F0"},
	bgDarker:            pair{"#434C5E", "#D8DEE9"},
	borderNormal:        pair{"#434C5E", "#4C566A"},
	borderFocused:       pair{"#4C566A", "#434C5E"},
	borderDim:           pair{"#434C5E", "#4C566A"},
}

func init() {
	RegisterTheme("tokyonight", tokyonight)
	RegisterTheme("catppuccin", catppuccin)
	RegisterTheme("dracula", dracula)
	RegisterTheme("gruvbox", gruvbox)
	RegisterTheme("nord", nord)
}
