// Package services contains the application services sitting between the
// HTTP transport and the dataset: dashboard payload composition and health
// reporting.
package services
