// Package security holds the HTTP hardening middleware: CSRF protection,
// response security headers and cookie-backed sessions for flash messages.
package security
