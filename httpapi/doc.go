// Package httpapi exposes a sitefilter session over HTTP so a browser-extension popup (or any
// other local client) can manage the exclusion list and compose searches.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /api/v1/exclusions
//	POST   /api/v1/exclusions          {"domain": "..."} or {"url": "..."}
//	DELETE /api/v1/exclusions/{domain}
//	GET    /api/v1/search?q=keyword
//	GET    /api/v1/current
//
// Errors are returned as {"error": "..."}.
package httpapi
