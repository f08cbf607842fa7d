// Package secret expands environment references embedded in configuration
// values such as connection URLs, so credentials can live in their own
// variables.
package secret
