//go:build unix

package conn

import (
	"net"

	"golang.org/x/sys/unix"
)

// tuneSocket applies platform socket options beyond what net.TCPConn
// exposes directly. SO_REUSEADDR lets a client reconnect immediately
// after a crash without waiting out TIME_WAIT on the local port.
func tuneSocket(tc *net.TCPConn) {
	raw, err := tc.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
}
