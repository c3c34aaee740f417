package demotests

import (
	"github.com/stretchr/testify/assert"
)

func DoReportingTestingTests(s *Suite) {
	s.BeforeEach(func(t *T) {
		t.Navigate("")
		t.Pause(contentSettle)
	})

	s.Test(`TC031: Verify "Reporting & Document Processing" section exists`, func(t *T) {
		section := t.Locator(`h2, h3:has-text("Reporting & Document Processing")`).First()
		t.ExpectVisible(section, "Reporting & Document Processing header")
	})

	launchLinkTest := func(label string) func(*T) {
		return func(t *T) {
			link := t.Locator(`a:has-text("` + label + `")`).First()
			t.ExpectVisible(link, label+" link")
			assert.NotEmpty(t, t.Attr(link, "href"))
		}
	}

	s.Test(`TC032: Test "Launch Reporting demos" link`, launchLinkTest("Launch Reporting demos"))
	s.Test(`TC033: Test "Launch Report Server demo" link`, launchLinkTest("Launch Report Server demo"))
	s.Test(`TC034: Test "Launch Document Processing demos" link`, launchLinkTest("Launch Document Processing demos"))

	s.Test(`TC035: Verify "Testing & Mocking" section exists`, func(t *T) {
		section := t.Locator(`h2, h3:has-text("Testing & Mocking")`).First()
		t.ExpectVisible(section, "Testing & Mocking header")
	})

	s.Test("TC036: Verify JustMock video thumbnail/link exists", func(t *T) {
		justMock := t.Locator(`div:has-text("JustMock")`).First()
		t.ExpectVisible(justMock, "JustMock section")

		videos := justMock.Locator(`[href*="video"], [href*="youtube"], [href*="watch"]`)
		if t.Count(videos) > 0 {
			t.ExpectVisible(videos.First(), "JustMock video link")
		}
	})

	s.Test(`TC037: Test "Sign up now" for Test Studio is interactable`, func(t *T) {
		testing := t.Locator(`section:has(.TK-Dash-Title:has-text("Testing & Mocking"))`)
		t.ExpectVisible(testing, "Testing & Mocking section")

		card := testing.Locator(`:has-text("Test Studio")`).First()
		t.ExpectVisible(card, "Test Studio card")

		signup := card.Locator(`a:has-text("Sign up"), button:has-text("Sign up")`).First()
		if t.Count(signup) > 0 {
			t.ExpectVisible(signup, "Test Studio sign up link")
			t.ExpectEnabled(signup, "Test Studio sign up link")
		}
	})

	s.Test(`TC038: Test "Reserve your seat" for Testing Meetup`, func(t *T) {
		button := t.Locator("text=Reserve your seat").First()
		t.ExpectVisible(button, "Reserve your seat link")
		assert.NotEmpty(t, t.Attr(button, "href"))
	})

	s.Test(`TC039: Verify "Debugging" section with FiddlerCore`, func(t *T) {
		t.ExpectVisible(t.Locator(`h2, h3:has-text("Debugging")`).First(), "Debugging header")
		t.ExpectVisible(t.Locator(`a:has-text("View FiddlerCore demos")`).First(), "FiddlerCore demos link")
	})
}
