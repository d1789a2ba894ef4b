// Command selenium-grid starts, stops, restarts and checks a Selenium grid
// running as docker-compose services on the local docker host.
//
// # Installation
//
//	go install github.com/blackwell-systems/selenium-grid-control/cmd/selenium-grid@latest
//
// # Quick Start
//
//	selenium-grid start
//	selenium-grid status
//	selenium-grid restart
//	selenium-grid stop
//
// # Configuration
//
// Settings are read from $HOME/.selenium-grid/config.yaml or ./config.yaml,
// and from SELENIUM_GRID_* environment variables:
//   - host, port: where the hub console is queried (default localhost:4444)
//   - compose-command: the compose tool (default docker-compose)
//   - compose-file: a service definition to use instead of the bundled one
//   - startup-timeout, poll-interval: how long start waits for the hub
//   - log-level: diagnostic logging on stderr (default warn)
//
// # Exit Codes
//
// status exits 1 when no grid is detected. start, stop and restart report
// failures on stderr and exit 0.
package main
