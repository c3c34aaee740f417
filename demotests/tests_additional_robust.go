package demotests

import (
	"strings"

	"github.com/stretchr/testify/assert"
)

func DoAdditionalRobustTests(s *Suite) {
	s.BeforeEach(func(t *T) {
		t.Navigate("")
		t.Pause(contentSettle)
	})

	s.Test("TC061: Verify all section headers are properly formatted", func(t *T) {
		headers := t.Locator(`h1, h2, h3, h4, .TK-Dash-Title, [class*="title"], [class*="header"]`)
		n := t.Count(headers)
		assert.Greater(t, n, 0, "page has no headers")
		if n > 3 {
			n = 3
		}
		for i := 0; i < n; i++ {
			text := t.Text(headers.Nth(i))
			if text != "" {
				assert.NotEmpty(t, strings.TrimSpace(text), "header %d is blank", i)
			}
		}
	})

	s.Test("TC062: Verify all product cards have consistent structure", func(t *T) {
		cards := t.Locator(`.TK-Product-Card, div[class*="product-card"]`)
		n := t.Count(cards)
		if n > 3 {
			n = 3
		}
		for i := 0; i < n; i++ {
			card := cards.Nth(i)
			t.ExpectVisible(card.Locator("h3, h4, .TK-Product-Name, strong").First(), "card title")
			t.ExpectVisible(card.Locator("p, .TK-Product-Description").First(), "card description")

			action := card.Locator("a, button").First()
			t.ExpectVisible(action, "card action")
			href, onClick := t.Attr(action, "href"), t.Attr(action, "onclick")
			assert.True(t, href != "" || onClick != "", "card %d action has neither href nor onclick", i)
		}
	})

	s.Test("TC063: Test search functionality (if available)", func(t *T) {
		search := t.Locator(`input[type="search"], input[placeholder*="Search"], #search`)
		if t.Count(search) == 0 {
			t.Skip("search functionality not found")
		}
		t.ExpectVisible(search.First(), "search input")

		t.Fill(search.First(), t.Data().SearchTerm)
		t.RequireNoError(search.First().Press("Enter"))
		t.Pause(contentSettle)

		assert.Contains(t, t.URL(), "telerik.com")
	})

	s.Test("TC064: Verify responsive design on multiple viewports", func(t *T) {
		for _, vp := range t.Data().Viewports {
			t.SetViewport(vp.Width, vp.Height)
			t.Pause(menuSettle)

			t.ExpectVisible(t.Locator(".TK-TLRK-Logo, .TK-Logo").First(), vp.Name+" logo")
			t.ExpectVisible(t.Locator(`h1:has-text("Demos")`).First(), vp.Name+" main heading")
			t.Screenshot("viewport-" + vp.Name)
		}
	})

	s.Test("TC065: Test keyboard accessibility and focus management", func(t *T) {
		focusable := t.Data().FocusableTags

		t.PressKey("Tab")
		t.Pause(keySettle)
		tag := t.FocusedTag()
		assert.True(t, isFocusableTag(tag, focusable), "first focus landed on <%s>", tag)

		for i := 0; i < 5; i++ {
			t.PressKey("Tab")
			t.Pause(tabSettle)
			if current, ok := t.Page().FocusedTagName(); ok {
				assert.True(t, isFocusableTag(current, focusable), "tab %d landed on <%s>", i+2, current)
			}
		}

		t.Navigate("")
		first := t.Locator(`a[href^="/"]:visible`).First()
		t.RequireNoError(first.Focus())
		t.PressKey("Enter")
		t.WaitForLoad()

		assert.Contains(t, t.URL(), "telerik.com")
	})
}
