// Package fixtures provides the static input values the demo tests rely on: product and
// section names, viewport sizes, and link audit parameters.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

//go:embed test-data.json
var defaultData []byte

//go:embed schema.json
var schemaData []byte

const (
	defaultMinWebProducts = 4
	defaultMaxLinks       = 5
)

type Viewport struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type LinkAudit struct {
	HrefPrefix string              `json:"hrefPrefix"`
	Keywords   []string            `json:"keywords"`
	MaxLinks   ldvalue.OptionalInt `json:"maxLinks"`
}

type Forms struct {
	InvalidEmail string `json:"invalidEmail"`
}

type Data struct {
	DemosPath       string              `json:"demosPath"`
	HomePath        string              `json:"homePath"`
	Sections        []string            `json:"sections"`
	WebProducts     []string            `json:"webProducts"`
	MinWebProducts  ldvalue.OptionalInt `json:"minWebProducts"`
	KendoFrameworks []string            `json:"kendoFrameworks"`
	DesktopProducts []string            `json:"desktopProducts"`
	Viewports       []Viewport          `json:"viewports"`
	FocusableTags   []string            `json:"focusableTags"`
	DemoURLPatterns []string            `json:"demoUrlPatterns"`
	LinkAudit       LinkAudit           `json:"linkAudit"`
	Forms           Forms               `json:"forms"`
	SearchTerm      string              `json:"searchTerm"`
}

// Load parses the fixture data built into the program.
func Load() (Data, error) {
	return Parse(defaultData)
}

// Parse validates data against the fixture schema and decodes it.
func Parse(data []byte) (Data, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return Data{}, fmt.Errorf("could not validate fixture data: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return Data{}, fmt.Errorf("invalid fixture data: %s", strings.Join(problems, "; "))
	}
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return Data{}, fmt.Errorf("could not decode fixture data: %w", err)
	}
	return d, nil
}

// RequiredWebProducts is how many of WebProducts must be present on the page.
func (d Data) RequiredWebProducts() int {
	n := d.MinWebProducts.OrElse(defaultMinWebProducts)
	if n > len(d.WebProducts) {
		return len(d.WebProducts)
	}
	return n
}

func (d Data) LinkAuditMaxLinks() int {
	return d.LinkAudit.MaxLinks.OrElse(defaultMaxLinks)
}

// LinkAuditTextPattern matches link text containing any of the audit keywords, ignoring
// case.
func (d Data) LinkAuditTextPattern() *regexp.Regexp {
	quoted := make([]string, 0, len(d.LinkAudit.Keywords))
	for _, k := range d.LinkAudit.Keywords {
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	return regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
}

func (d Data) Viewport(name string) (Viewport, bool) {
	for _, v := range d.Viewports {
		if v.Name == name {
			return v, true
		}
	}
	return Viewport{}, false
}
