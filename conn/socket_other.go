//go:build !unix

package conn

import "net"

// tuneSocket is a no-op on non-Unix platforms; net.TCPConn's portable
// options (SetNoDelay) are applied by the caller regardless.
func tuneSocket(tc *net.TCPConn) {}
