// Package sfssdk bootstraps a file-server client from environment variables.
// SFS_RUNTIME_MODE selects between the HTTP transport and an in-memory mock
// that stays API compatible with it, so code written against the client runs
// unchanged with or without a live container.
package sfssdk
