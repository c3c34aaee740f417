package demotests

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoWebProductTests(s *Suite) {
	s.BeforeEach(func(t *T) {
		t.Navigate("")
		t.ScrollTo(500)
		t.Pause(contentSettle)
	})

	s.Test(`TC011: Verify "Web" section header is visible`, func(t *T) {
		t.ScrollTo(400)
		t.Pause(contentSettle)

		headings := t.Locator(`h2, h3, [class*="title"]`).Filter(playwright.LocatorFilterOptions{
			HasText: regexp.MustCompile(`(?i)Web`),
		})
		assert.Greater(t, t.Count(headings), 0, "no heading mentions Web")

		assert.Regexp(t, regexp.MustCompile(`(?i)Web`), t.BodyText())

		products := t.Locator(`text=/Kendo UI|Blazor|ASP\.NET/i`)
		assert.Greater(t, t.Count(products), 0, "no web product found")
	})

	s.Test("TC012: Verify all five web products are displayed", func(t *T) {
		data := t.Data()
		check := CheckProductPresence(data.WebProducts, data.RequiredWebProducts(), func(name string) bool {
			return t.Count(t.Locator(fmt.Sprintf(`:text(%q)`, name))) > 0
		})
		t.Debug("found %v, missing %v", check.Found, check.Missing)
		assert.True(t, check.OK(), "expected at least %d of %v, found %v", check.Required, data.WebProducts, check.Found)
	})

	s.Test(`TC013: Test "Launch Blazor demos" link is clickable`, func(t *T) {
		links := t.Locator(`a[href*="blazor"], a:has-text("Blazor")`)
		if t.Count(links) == 0 {
			t.Skip("no Blazor links found")
		}
		href := t.Attr(links.First(), "href")
		require.NotEmpty(t, href)
		assert.Contains(t, href, "blazor")
	})

	s.Test(`TC014: Test "Launch ASP.NET Core demos" link`, func(t *T) {
		links := t.Locator(`a[href*="aspnet-core"], a:has-text("ASP.NET Core")`)
		if t.Count(links) == 0 {
			t.Skip("no ASP.NET Core links found")
		}
		assert.NotEmpty(t, t.Attr(links.First(), "href"))
	})

	s.Test(`TC015: Test "Launch ASP.NET MVC demos" link`, func(t *T) {
		button := t.Locator(`a:has-text("Launch ASP.NET MVC demos")`).First()
		t.ExpectVisible(button, "MVC demos link")
		assert.NotEmpty(t, t.Attr(button, "href"))
	})

	s.Test(`TC016: Test "Launch ASP.NET AJAX demos" link`, func(t *T) {
		button := t.Locator(`a:has-text("Launch ASP.NET AJAX demos")`).First()
		t.ExpectVisible(button, "AJAX demos link")
		assert.NotEmpty(t, t.Attr(button, "href"))
	})

	s.Test("TC017: Check product descriptions are not empty", func(t *T) {
		descriptions := t.Locator(`section:has-text("Web") ~ div p`).Filter(playwright.LocatorFilterOptions{
			HasText: regexp.MustCompile(`(?i)UI|components|apps`),
		})
		n := t.Count(descriptions)
		if n > 5 {
			n = 5
		}
		for i := 0; i < n; i++ {
			text := strings.TrimSpace(t.Text(descriptions.Nth(i)))
			assert.Greater(t, len(text), 20, "description %d is too short: %q", i, text)
		}
	})

	s.Test("TC018: Verify Kendo UI mentions supported frameworks", func(t *T) {
		kendo := t.Locator(`div:has-text("Kendo UI")`).First()
		t.ExpectVisible(kendo, "Kendo UI section")

		text := t.Text(kendo)
		for _, framework := range t.Data().KendoFrameworks {
			assert.Contains(t, text, framework)
		}
	})

	s.Test("TC019: Verify product name and launch button exist together", func(t *T) {
		sections := t.Locator(`section, .product-section, [class*="product"]`)
		if t.Count(sections) == 0 {
			return
		}
		first := sections.First()
		hasHeading := t.Count(first.Locator("h2, h3, h4, strong").First()) > 0
		hasLink := t.Count(first.Locator("a").First()) > 0
		assert.True(t, hasHeading || hasLink, "first product section has neither a heading nor a link")
	})

	s.Test("TC020: Test Web products layout on tablet view", func(t *T) {
		tablet, ok := t.Data().Viewport("tablet")
		require.True(t, ok)
		t.SetViewport(tablet.Width, tablet.Height)
		t.Pause(contentSettle)

		t.ExpectVisible(t.Locator("body"), "page body")
		t.Screenshot("tablet-view")
	})
}
