// Package data embeds the reference dataset the server uses when no data
// directory is configured.
package data

import "embed"

//go:embed *.csv
var dataFS embed.FS

// FS returns the embedded CSV tables
func FS() embed.FS {
	return dataFS
}
