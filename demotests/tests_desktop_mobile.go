package demotests

import (
	"regexp"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoDesktopMobileTests(s *Suite) {
	s.BeforeEach(func(t *T) {
		t.Navigate("")
		t.ScrollTo(800)
		t.Pause(contentSettle)
	})

	s.Test(`TC021: Verify "Desktop" and "Mobile" section headers`, func(t *T) {
		t.ExpectVisible(t.Locator(`h2, h3:has-text("Desktop")`).First(), "Desktop header")
		t.ExpectVisible(t.Locator(`h2, h3:has-text("Mobile")`).First(), "Mobile header")
	})

	s.Test("TC022: Verify .NET MAUI appears in both Desktop and Mobile", func(t *T) {
		count := t.Count(t.Locator("text=Telerik UI for .NET MAUI"))
		assert.GreaterOrEqual(t, count, 2, ".NET MAUI should be listed under both Desktop and Mobile")
	})

	s.Test("TC023: Test Desktop .NET MAUI demo link", func(t *T) {
		if t.Count(t.Locator(`:text(".NET MAUI"), :text("MAUI")`)) == 0 {
			return
		}
		link := t.Locator(`a:has-text("MAUI"), a:has-text(".NET"), a[href*="maui"]`).First()
		if t.Count(link) > 0 {
			assert.NotEmpty(t, t.Attr(link, "href"))
		}
	})

	s.Test("TC024: Test Mobile .NET MAUI demo link", func(t *T) {
		mobile := t.Locator(`section:has(.TK-Dash-Title:has-text("Mobile"))`)
		t.ExpectVisible(mobile, "Mobile section")

		card := mobile.Locator(`:has-text(".NET MAUI")`).First()
		t.ExpectVisible(card, ".NET MAUI card")

		t.ExpectVisible(card.Locator(`a:has-text("demos")`).First(), ".NET MAUI demos link")
	})

	s.Test(`TC025: Test "Launch WinUI demos" link`, func(t *T) {
		link := t.Locator(`a:has-text("Launch WinUI demos")`).First()
		t.ExpectVisible(link, "WinUI demos link")

		href := t.Attr(link, "href")
		require.NotEmpty(t, href)
		assert.Contains(t, strings.ToLower(href), "winui")
	})

	s.Test(`TC026: Test "Download WinForms Demos" link`, func(t *T) {
		link := t.Locator(`a:has-text("Download WinForms Demos")`).First()
		t.ExpectVisible(link, "WinForms download link")
		// May be a direct download or a redirect.
		assert.NotEmpty(t, t.Attr(link, "href"))
	})

	s.Test(`TC027: Test "Launch WPF demos" link`, func(t *T) {
		link := t.Locator(`a:has-text("Launch WPF demos")`).First()
		t.ExpectVisible(link, "WPF demos link")
		assert.NotEmpty(t, t.Attr(link, "href"))
	})

	s.Test("TC028: Verify example counts mentioned for WinForms and WPF", func(t *T) {
		hasWinForms := t.Count(t.Locator(`:text("WinForms"), :text("winforms")`).First()) > 0
		hasWPF := t.Count(t.Locator(`:text("WPF"), :text("wpf")`).First()) > 0
		assert.True(t, hasWinForms || hasWPF, "neither WinForms nor WPF is mentioned")

		assert.Regexp(t, regexp.MustCompile(`\d+`), t.BodyText(), "page should mention example counts")
	})

	s.Test(`TC029: Verify WinUI mentions "Windows 10"`, func(t *T) {
		section := t.Locator(`div:has-text("Telerik UI for WinUI")`).First()
		assert.Contains(t, t.Text(section), "Windows 10")
	})

	s.Test("TC030: Verify no broken images in Desktop/Mobile sections", func(t *T) {
		desktop := t.Locator(`h2, h3:has-text("Desktop")`).First()
		images := desktop.Locator("..").Locator("img")

		n := t.Count(images)
		for i := 0; i < n; i++ {
			assert.NotEmpty(t, t.Attr(images.Nth(i), "src"), "image %d has no src", i)
		}
	})
}
