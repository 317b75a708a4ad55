package assets

import _ "embed"

// Static pages embedded at compile time

//go:embed home.html
var HomePage string
