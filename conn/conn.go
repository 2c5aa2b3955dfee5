package conn

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/protocol"
	"github.com/divotmaker/ironsight/wire"
)

// DefaultAddr is the device's factory IP and port.
const DefaultAddr = "192.168.2.1:5100"

// Envelope is a decoded device message, tagged with its source bus
// address and the raw (unstuffed) payload bytes it decoded from.
type Envelope struct {
	Src     addr.BusAddr
	TypeID  byte
	Raw     []byte
	Message protocol.Message
}

func (e Envelope) String() string {
	s := fmt.Sprintf("%#v [%s 0x%02X %dB", e.Message, e.Src, e.TypeID, len(e.Raw))
	if len(e.Raw) > 0 {
		s += " | "
		for i, b := range e.Raw {
			if i > 0 {
				s += " "
			}
			s += fmt.Sprintf("%02X", b)
		}
	}
	return s + "]"
}

// OnSendFunc is invoked at the top of every Send call, before encoding.
type OnSendFunc func(cmd protocol.Command, dest addr.BusAddr)

// OnRecvFunc is invoked after every successful frame decode in Recv or
// RecvTimeout.
type OnRecvFunc func(env Envelope)

// Connection is a synchronous, single-threaded TCP connection to the
// device. Callers drive timing via RecvTimeout; Connection performs no
// background reads and holds no goroutines of its own.
type Connection struct {
	stream  net.Conn
	splitter *wire.FrameSplitter
	readBuf [4096]byte

	// pending holds frames split out of a single TCP read that were not
	// yet returned by Recv, in arrival order. recvInner appends to the
	// tail and takes from the head — plain FIFO, deliberately not a stack.
	pending [][]byte

	onSend OnSendFunc
	onRecv OnRecvFunc
}

// Connect dials the device with the platform's default TCP connect
// timeout.
func Connect(address string) (*Connection, error) {
	c, err := net.Dial("tcp", address)
	if err != nil {
		return nil, ioErr("connect", err)
	}
	return fromConn(c), nil
}

// Dial connects to the device with an explicit timeout.
func Dial(address string, timeout time.Duration) (*Connection, error) {
	c, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, ioErr("dial", err)
	}
	return fromConn(c), nil
}

// NewFromConn wraps an already-established net.Conn as a Connection. This
// is the entry point for callers that manage their own dialing (TLS
// tunnels, test harnesses, or a connection handed off from a listener).
func NewFromConn(c net.Conn) *Connection {
	return fromConn(c)
}

func fromConn(c net.Conn) *Connection {
	if tc, ok := c.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
		tuneSocket(tc)
	}
	return &Connection{
		stream:   c,
		splitter: wire.NewFrameSplitter(),
	}
}

// SetOnSend registers a callback invoked at the top of every Send call.
func (c *Connection) SetOnSend(f OnSendFunc) { c.onSend = f }

// SetOnRecv registers a callback invoked after every successful decode.
func (c *Connection) SetOnRecv(f OnRecvFunc) { c.onRecv = f }

// Send encodes cmd addressed to dest and writes it to the stream.
func (c *Connection) Send(cmd protocol.Command, dest addr.BusAddr) error {
	if c.onSend != nil {
		c.onSend(cmd, dest)
	}
	return c.SendRaw(cmd.Encode(dest))
}

// SendRaw writes a pre-built frame, for messages with no Command variant
// (such as a ClubPrc page request).
func (c *Connection) SendRaw(frame wire.RawFrame) error {
	if _, err := c.stream.Write(frame.Encode()); err != nil {
		return ioErr("send", err)
	}
	return nil
}

// Recv blocks indefinitely until a complete frame arrives, and decodes
// it.
func (c *Connection) Recv() (Envelope, error) {
	if err := c.stream.SetReadDeadline(time.Time{}); err != nil {
		return Envelope{}, ioErr("recv", err)
	}
	return c.recvInner("recv")
}

// RecvTimeout blocks up to d for a complete frame. Returns a *ConnError
// wrapping ErrTimeout if none arrives in time.
func (c *Connection) RecvTimeout(d time.Duration) (Envelope, error) {
	if err := c.stream.SetReadDeadline(time.Now().Add(d)); err != nil {
		return Envelope{}, ioErr("recv", err)
	}
	env, err := c.recvInner("recv")
	if err != nil {
		if ne, ok := asNetTimeout(err); ok && ne {
			return Envelope{}, timeoutErr("recv", d)
		}
		return Envelope{}, err
	}
	return env, nil
}

func asNetTimeout(err error) (bool, bool) {
	ce, ok := err.(*ConnError)
	if !ok || ce.Cause == nil {
		return false, false
	}
	type timeouter interface{ Timeout() bool }
	if te, ok := ce.Cause.(timeouter); ok {
		return te.Timeout(), true
	}
	return false, true
}

// PeerAddr returns the remote address of the underlying TCP connection.
func (c *Connection) PeerAddr() net.Addr { return c.stream.RemoteAddr() }

// Shutdown closes the TCP connection.
func (c *Connection) Shutdown() error {
	if err := c.stream.Close(); err != nil {
		return ioErr("shutdown", err)
	}
	return nil
}

func (c *Connection) recvInner(op string) (Envelope, error) {
	for {
		if len(c.pending) > 0 {
			raw := c.pending[0]
			c.pending = c.pending[1:]
			return c.decodeWire(op, raw)
		}

		n, err := c.stream.Read(c.readBuf[:])
		if err != nil {
			if err == io.EOF {
				return Envelope{}, disconnectedErr(op)
			}
			return Envelope{}, ioErr(op, err)
		}
		if n == 0 {
			return Envelope{}, disconnectedErr(op)
		}

		frames := c.splitter.Feed(c.readBuf[:n])
		if len(frames) == 0 {
			continue
		}
		first := frames[0]
		// Queue the rest in arrival order, tail-append — never reverse,
		// never treat pending as a stack.
		c.pending = append(c.pending, frames[1:]...)
		return c.decodeWire(op, first)
	}
}

func (c *Connection) decodeWire(op string, raw []byte) (Envelope, error) {
	frame, err := wire.ParseFrame(raw)
	if err != nil {
		return Envelope{}, wireErr(op, err)
	}
	msg, err := protocol.Decode(frame)
	if err != nil {
		return Envelope{}, wireErr(op, err)
	}
	env := Envelope{Src: frame.Src, TypeID: frame.TypeID, Raw: frame.Payload, Message: msg}
	if c.onRecv != nil {
		c.onRecv(env)
	}
	return env, nil
}
