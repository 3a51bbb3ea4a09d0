// Package static embeds the admin console stylesheet and scripts.
package static

import "embed"

// FS holds the files served under /static/.
//
//go:embed *.css
var FS embed.FS
