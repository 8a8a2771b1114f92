// Package http implements the HTTP handlers for the dashboard service. It is
// a thin layer between transport and the services: request parsing and
// validation, response rendering, and conversion of service errors to
// RFC 7807 responses. All business logic lives in the service layer.
package http
