package demotests

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/demos-qa/telerik-demos-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkAuditTimeout = 60 * time.Second

func DoLinkConsistencyTests(s *Suite) {
	s.BeforeEach(func(t *T) {
		t.Navigate("")
	})

	s.Test("TC051: Check all demo launch buttons have href attributes", func(t *T) {
		buttons := t.Locator(`a:has-text("Launch"), a:has-text("Explore"), a:has-text("View"), a:has-text("Download")`)
		n := t.Count(buttons)
		for i := 0; i < n; i++ {
			href := t.Attr(buttons.Nth(i), "href")
			assert.True(t, isMeaningfulHref(href), "button %d has href %q", i, href)
		}
	})

	s.Test("TC052: Verify external links open in new tab", func(t *T) {
		// target="_blank" is not used consistently, so only the presence of an href is checked.
		external := t.Locator(`a[href^="http"]:not([href*="telerik.com"])`)
		if t.Count(external) == 0 {
			t.Skip("no external links found")
		}
		assert.NotEmpty(t, t.Attr(external.First(), "href"))
	})

	s.Test("TC053: Verify consistent styling of primary buttons", func(t *T) {
		buttons := t.Locator(`a:has-text("Launch"), a:has-text("Sign up now")`)
		n := t.Count(buttons)
		if n > 3 {
			n = 3
		}
		if n < 2 {
			return
		}
		first := styleOf(t, buttons.First())
		for i := 1; i < n; i++ {
			style := styleOf(t, buttons.Nth(i))
			assert.True(t, first.consistentWith(style), "button %d (%+v) is styled differently from the first (%+v)", i, style, first)
		}
	})

	s.Test("TC054: Check footer section loads", func(t *T) {
		t.Navigate(t.Data().HomePath)
		t.WaitForLoad()

		selectors := []string{"footer", ".footer", "#footer", `div[class*="footer"]`}
		i := firstMatching(selectors, func(sel string) bool {
			return t.Visible(t.Locator(sel).First())
		})
		require.NotEqual(t, -1, i, "no visible footer")
		footer := t.Locator(selectors[i]).First()
		assert.Greater(t, t.Count(footer.Locator("a")), 0, "footer has no links")
	})

	s.Test("TC055: Verify copyright/trademark information", func(t *T) {
		selectors := []string{
			"text=©",
			"text=Copyright",
			"text=All rights reserved",
			"text=Telerik®",
		}
		i := firstMatching(selectors, func(sel string) bool {
			return t.Visible(t.Locator(sel).First())
		})
		assert.NotEqual(t, -1, i, "no copyright notice found")
	})

	s.Test("TC056: Test keyboard navigation with Tab key", func(t *T) {
		t.PressKey("Tab")
		t.Pause(keySettle)

		tag := t.FocusedTag()
		assert.True(t, isFocusableTag(tag, t.Data().FocusableTags), "focus landed on <%s>", tag)
	})

	s.Test("TC057: Verify URL structure consistency for demo pages", func(t *T) {
		link := t.Locator(`a:has-text("Launch")`).First()
		if !t.Visible(link) {
			return
		}
		href := t.Attr(link, "href")
		assert.True(t, matchesURLPattern(href, t.Data().DemoURLPatterns),
			"%q does not look like a demo URL", href)
	})

	s.Test("TC058: Check for 404 errors on all page links", func(t *T) {
		data := t.Data()
		candidates := auditCandidates(t.Links(), data.LinkAudit.HrefPrefix, data.LinkAuditTextPattern())
		t.Debug("%d links qualify for the audit", len(candidates))

		report := t.AuditLinks(candidates)
		if len(report.Unknown) > 0 {
			t.Debug("could not check: %v", report.Unknown)
		}
		assert.Empty(t, report.Broken, "broken links found")
	}, framework.WithTimeout(linkAuditTimeout))

	s.Test("TC059: Verify active page indicator in navigation", func(t *T) {
		nav := t.Locator(`nav, .TK-Nav, [role="navigation"], header`)
		if t.Count(nav) == 0 {
			assert.Greater(t, t.Count(t.Locator("a[href]")), 5, "page should have several links")
			return
		}
		first := nav.First()
		t.ExpectAttached(first, "navigation")
		assert.Greater(t, t.Count(first.Locator("a")), 0, "navigation has no links")
	})

	s.Test("TC060: Perform visual regression test", func(t *T) {
		t.BaselineScreenshot("main-page-baseline")

		height, err := t.Page().EvaluateInt("() => document.body.clientHeight")
		t.RequireNoError(err)
		assert.Greater(t, height, 500)
	})
}

func styleOf(t *T, loc playwright.Locator) buttonStyle {
	bg, err := loc.Evaluate("el => getComputedStyle(el).backgroundColor", nil)
	t.RequireNoError(err, "could not read button style")
	color, _ := bg.(string)
	return buttonStyle{Class: t.Attr(loc, "class"), Background: color}
}
