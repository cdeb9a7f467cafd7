// Package playwright adapts a Playwright page to the toolkit's query
// surface abstraction. It translates selector strategies into Playwright
// selector expressions, classifies driver errors into the not-found /
// stale-reference / other taxonomy the wait loop understands, and
// exposes script evaluation through the optional Scripter capability so
// the highlight decorator works against a live browser.
//
// Browser process lifecycle stays deliberately thin: Launch installs and
// starts Playwright the same way a caller would by hand, for the demo
// binary's convenience. Tests use pkg/driver/domtest instead.
package playwright
