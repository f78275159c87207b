package server

import "embed"

// publicFS holds the embedded single-page client.
//
//go:embed public
var publicFS embed.FS
