// Package browser provides the tab resolvers and URL openers sitefilter uses to talk to the
// user's browser.
//
// DevTools drives an already running Chrome over the DevTools protocol: it reads the URL of
// the visible tab and opens new tabs. Chrome must have been started with
// --remote-debugging-port for it to connect. Static returns a fixed URL and is used when the
// URL is given on the command line.
package browser
