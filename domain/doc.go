// Package domain defines the core data structures and collaborator contracts of the sitefilter
// application. It contains the exclusion data model (Domain, ExclusionList), the activity Log,
// and the interfaces for everything the core talks to but does not implement itself: the
// persistent key-value store, the active-tab resolver and the navigation sink.
//
// Keeping these contracts here lets the registry and query composer stay independent of the
// storage technology (SQLite, Redis, a JSON file) and of how a browser is driven.
package domain
