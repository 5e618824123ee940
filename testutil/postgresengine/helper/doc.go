// Package helper provides the fixtures for the lending integration tests.
package helper
