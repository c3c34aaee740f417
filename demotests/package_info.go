// Package demotests contains the UI tests for the Telerik demos site and the API they are
// written against.
//
// Browser control and generic test-runner infrastructure are in the lower-level browser and
// framework packages.
package demotests
