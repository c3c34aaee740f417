package demotests

import (
	"time"

	"github.com/demos-qa/telerik-demos-tests/framework"
)

// Pauses used inside tests, on top of the configured settle delays, where the site keeps
// changing the page after an interaction.
const (
	contentSettle = 2 * time.Second
	menuSettle    = time.Second
	keySettle     = 500 * time.Millisecond
	tabSettle     = 300 * time.Millisecond
)

// Suite declares the tests of one thematic group for one browser project.
type Suite struct {
	plan       *framework.Plan
	env        *Environment
	project    string
	beforeEach func(*T)
}

// BeforeEach sets up a function that runs at the start of every test declared after it,
// once the browser session is open.
func (s *Suite) BeforeEach(action func(*T)) {
	s.beforeEach = action
}

// Test declares a test.
func (s *Suite) Test(name string, action func(*T), options ...framework.TestOption) {
	s.plan.Test(name, s.wrap(action), options...)
}

// Only declares a focused test. While any test is focused, only focused tests run, and CI
// runs refuse to start.
func (s *Suite) Only(name string, action func(*T), options ...framework.TestOption) {
	s.plan.Only(name, s.wrap(action), options...)
}

func (s *Suite) wrap(action func(*T)) func(*framework.Context) {
	beforeEach := s.beforeEach
	return func(c *framework.Context) {
		t := newTestScope(c, s.env, s.project)
		t.open()
		if beforeEach != nil {
			beforeEach(t)
		}
		action(t)
	}
}

// Plan declares every test for every configured browser project. Test IDs are
// project/suite/test.
func Plan(env *Environment) *framework.Plan {
	plan := framework.NewPlan()
	for _, project := range env.Config.Browsers {
		project := project
		plan.Group(project, func(p *framework.Plan) {
			suite := func(name string, declare func(*Suite)) {
				p.Group(name, func(g *framework.Plan) {
					declare(&Suite{plan: g, env: env, project: project})
				})
			}
			suite("General Website & Navigation Tests", DoGeneralNavigationTests)
			suite("Web Product Demos Section Tests", DoWebProductTests)
			suite("Desktop & Mobile Product Demos Section Tests", DoDesktopMobileTests)
			suite("Reporting, Testing & Other Sections Tests", DoReportingTestingTests)
			suite("Form Interactions & Dynamic Content Tests", DoFormInteractionTests)
			suite("Link Integrity & Page Consistency Tests", DoLinkConsistencyTests)
			suite("Additional Robust Tests", DoAdditionalRobustTests)
		})
	}
	return plan
}
