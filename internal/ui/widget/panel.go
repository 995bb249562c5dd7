package widget

import "mini-ui/internal/ui"

// NewPanel returns a container arranged by l whose padding and spacing
// follow its theme. Unknown themes fall back to the default.
func NewPanel(b ui.Bounds, l ui.Layout, theme string) *ui.Container {
	p := ui.NewContainerWithLayout(b, l)
	p.SetTheme(theme)
	p.SetColorCategory(ui.ColorSecondary)
	p.UseThemeMetrics()
	return p
}
