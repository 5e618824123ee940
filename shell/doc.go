// Package shell holds the application-side helpers around the lending core:
// retrying of aborted transactions here, configuration and connection setup in shell/config.
package shell
