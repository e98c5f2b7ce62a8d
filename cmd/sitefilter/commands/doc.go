// Package commands defines the sitefilter CLI and wires dependencies for subcommands.
//
// Commands
//
//   - add          Exclude a domain (or the active tab with --current)
//   - remove       Stop excluding a domain
//   - list         Print the exclusion list
//   - search       Compose a search that skips excluded domains and open it
//   - current      Print the domain of the active browser tab
//   - history      Print the activity log
//   - export       Write the exclusion list as YAML
//   - import       Add every domain from a YAML export
//   - serve        Serve the HTTP API for a browser-extension popup
//   - chrome-path  Manage custom Chrome locations
//   - config       Change settings in config.yaml
//
// # Implementation
//
// The root command loads the configuration from the home directory and builds a
// sitefilter.Filter (store, activity log, browser collaborators) before any subcommand
// runs. The filter is closed after the subcommand returns.
package commands
