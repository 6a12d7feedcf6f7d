package main

import "embed"

// configFS holds the default YAML configs and the demo's textures and
// sounds under configs/.
//
//go:embed configs
var configFS embed.FS
