//go:build unix && !notermios

package backends

import _ "github.com/mauromedda/termroot/pkg/tui/backend/termios"
