// Package termios is a raw POSIX terminal backend. It puts the tty into
// raw mode with golang.org/x/term, switches to the alternate screen, reads
// keys with poll(2), and writes ANSI sequences directly. Importing it
// registers backend.KindTermios.
package termios
