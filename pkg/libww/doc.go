// Package libww contains the client-side types and the HTTP client used to
// talk to a Whisperwall server. It is consumed by the wwc command line tool
// and its terminal UI.
package libww
