//go:build !notcell

package backends

import _ "github.com/mauromedda/termroot/pkg/tui/backend/tcellscreen"
