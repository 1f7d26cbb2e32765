// Package sfs exposes a client for the simple-file-server REST API. Files are
// addressed by server-relative paths; uploads answer with the stored path,
// reads stream the raw contents back. Transport failures surface as
// *ConnectionError, non-success statuses as *APIError (404 maps to
// ErrNotFound).
package sfs
