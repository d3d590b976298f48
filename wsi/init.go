// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"os"
)

// init selects the platform from the TERM environment
// variable: the terminal is used unless TERM is unset or
// "dumb".
func init() {
	if t := os.Getenv("TERM"); t != "" && t != "dumb" {
		initTerminal()
		return
	}
	initDummy()
}
