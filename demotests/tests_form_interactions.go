package demotests

import (
	"regexp"

	"github.com/playwright-community/playwright-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Selectors that indicate a form rejected its input.
var validationSelectors = []string{
	".error",
	".validation",
	`[role="alert"]`,
	"text=required",
	"text=invalid",
	"text=error",
}

func DoFormInteractionTests(s *Suite) {
	s.BeforeEach(func(t *T) {
		t.Navigate("")
	})

	s.Test(`TC041: Click "Sign up now" for Test Studio Personal Demo`, func(t *T) {
		testing := t.Locator(`section:has(.TK-Dash-Title:has-text("Testing & Mocking"))`)
		card := testing.Locator(`:has-text("Test Studio")`).First()
		signup := card.Locator(`a:has-text("Sign up"), button:has-text("Sign up")`).First()
		if t.Count(signup) == 0 {
			return
		}
		t.ExpectVisible(signup, "Test Studio sign up link")

		popup := t.ClickForPopup(signup)
		assert.Contains(t, popup.URL(), "telerik.com")
	})

	s.Test("TC042: Verify form title/header is visible when opened", func(t *T) {
		t.Click(t.Locator("text=Sign up now").First())
		t.Pause(contentSettle)

		selectors := []string{
			"h1", "h2", "h3", "h4",
			".modal-title",
			`[role="heading"]`,
			`div[class*="title"]`,
			`div[class*="header"]`,
		}
		headerText := regexp.MustCompile(`(?i)demo|sign|up|register|request`)
		found := firstMatching(selectors, func(sel string) bool {
			return t.Count(t.Locator(sel).Filter(playwright.LocatorFilterOptions{HasText: headerText})) > 0
		})
		if found < 0 {
			t.Skip("no form detected after clicking sign up")
		}
		t.Debug("form header matched %s", selectors[found])
	})

	s.Test("TC043: Test form input fields are editable", func(t *T) {
		buttons := t.Locator(`button:has-text("Sign up"), a:has-text("Sign up")`)
		if t.Count(buttons) == 0 {
			t.Skip("no sign up forms found on main page")
		}
		t.ExpectAttached(buttons.First(), "sign up button")
	})

	s.Test("TC044: Submit empty form and verify validation errors", func(t *T) {
		signup := t.Locator("text=Sign up now").First()
		if !t.Visible(signup) {
			return
		}
		t.Click(signup)
		t.Pause(contentSettle)

		form := t.Locator("form").First()
		if !t.Visible(form) {
			return
		}
		t.Click(form.Locator(`button[type="submit"], input[type="submit"]`).First())
		t.Pause(menuSettle)

		found := firstMatching(validationSelectors, func(sel string) bool {
			return t.Visible(t.Locator(sel).First())
		})
		assert.NotEqual(t, -1, found, "submitting an empty form showed no validation error")
	})

	s.Test("TC045: Submit form with invalid email and verify validation", func(t *T) {
		signup := t.Locator("text=Sign up now").First()
		if !t.Visible(signup) {
			return
		}
		t.Click(signup)
		t.Pause(contentSettle)

		email := t.Locator(`input[type="email"], input[name*="email"]`).First()
		if !t.Visible(email) {
			return
		}
		t.Fill(email, t.Data().Forms.InvalidEmail)
		t.Click(t.Locator(`button[type="submit"]`).First())
		t.Pause(menuSettle)

		message := t.Locator("text=valid email, text=invalid, text=format").First()
		if t.Visible(message) {
			t.ExpectVisible(message, "email validation message")
		}
	})

	s.Test("TC046: Test dropdown/select menus in forms", func(t *T) {
		if t.Count(t.Locator("form")) == 0 {
			t.Skip("no forms found on main page")
		}
		selects := t.Locator("select")
		if t.Count(selects) > 0 {
			t.ExpectAttached(selects.First(), "select menu")
		}
	})

	s.Test("TC047: Test checkbox elements in forms", func(t *T) {
		if t.Count(t.Locator("form")) == 0 {
			t.Skip("no forms found on main page")
		}
		checkboxes := t.Locator(`input[type="checkbox"]`)
		if t.Count(checkboxes) > 0 {
			t.ExpectAttached(checkboxes.First(), "checkbox")
		}
	})

	s.Test(`TC048: Verify "Close" or "Cancel" button works`, func(t *T) {
		menuButton := t.Locator(`button[aria-label*="menu"], .TK-Mobile-Menu-Button`)
		if t.Count(menuButton) == 0 || !t.Visible(menuButton.First()) {
			return
		}
		t.Click(menuButton.First())
		t.Pause(menuSettle)

		closeButton := t.Locator(`button[aria-label*="close"], .TK-Close-Menu`).First()
		if t.Count(closeButton) == 0 {
			return
		}
		t.Click(closeButton)
		t.Pause(keySettle)
		t.ExpectHidden(closeButton, "close button")
	})

	s.Test("TC049: Test Sitefinity CMS demo signup link", func(t *T) {
		wcm := t.Locator(`section:has(.TK-Dash-Title:has-text("Web Content Management"))`)
		card := wcm.Locator(`:has-text("Sitefinity")`).First()
		signup := card.Locator(`a:has-text("Sign up")`).First()
		if t.Count(signup) == 0 {
			return
		}
		t.ExpectVisible(signup, "Sitefinity sign up link")

		href := t.Attr(signup, "href")
		require.NotEmpty(t, href)
		assert.Contains(t, href, "telerik.com")
	})

	s.Test("TC050: Verify Sitefinity form validation", func(t *T) {
		link := t.Locator("text=Sign up now").Filter(playwright.LocatorFilterOptions{
			HasText: "Sitefinity",
		}).First()
		if !t.Visible(link) {
			return
		}
		t.Click(link)
		t.WaitForLoad()

		form := t.Locator("form").First()
		if !t.Visible(form) {
			return
		}
		t.Click(form.Locator(`button[type="submit"]`).First())
		t.Pause(menuSettle)

		invalid := t.Count(t.Locator(`.error, .validation, [aria-invalid="true"]`))
		assert.Greater(t, invalid, 0, "submitting the Sitefinity form showed no validation")
	})
}
