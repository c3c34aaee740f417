package browser

import "github.com/playwright-community/playwright-go"

// The functions below are probes over a locator: they never fail, and report an error
// the same way as absence.

func Count(loc playwright.Locator) int {
	n, err := loc.Count()
	if err != nil {
		return 0
	}
	return n
}

func Visible(loc playwright.Locator) bool {
	visible, err := loc.IsVisible()
	return err == nil && visible
}

func Attribute(loc playwright.Locator, name string) string {
	if Count(loc) == 0 {
		return ""
	}
	v, err := loc.GetAttribute(name)
	if err != nil {
		return ""
	}
	return v
}

func Text(loc playwright.Locator) string {
	if Count(loc) == 0 {
		return ""
	}
	v, err := loc.TextContent()
	if err != nil {
		return ""
	}
	return v
}
