package conn

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/protocol"
	"github.com/divotmaker/ironsight/wire"
)

func pipeConns(t *testing.T) (*Connection, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	return NewFromConn(client), server
}

func TestSendRecvRoundTrip(t *testing.T) {
	c, server := pipeConns(t)
	defer c.Shutdown()
	defer server.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		frame := wire.RawFrame{Dest: addr.App, Src: addr.Avr, TypeID: protocol.TypeModeAck, Payload: []byte{0x02, 0x00, 0x00}}
		server.Write(frame.Encode())
	}()

	env, err := c.RecvTimeout(time.Second)
	if err != nil {
		t.Fatalf("RecvTimeout: %v", err)
	}
	<-done
	if env.Src != addr.Avr || env.TypeID != protocol.TypeModeAck {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if _, ok := env.Message.(protocol.ModeAck); !ok {
		t.Fatalf("expected ModeAck, got %T", env.Message)
	}
}

func TestSendEncodesCommand(t *testing.T) {
	c, server := pipeConns(t)
	defer c.Shutdown()
	defer server.Close()

	readDone := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		readDone <- buf[:n]
	}()

	if err := c.Send(protocol.StatusPoll{}, addr.Dsp); err != nil {
		t.Fatalf("Send: %v", err)
	}
	got := <-readDone
	want := protocol.StatusPoll{}.Encode(addr.Dsp).Encode()
	if string(got) != string(want) {
		t.Fatalf("Send wrote % X, want % X", got, want)
	}
}

func TestRecvTimeoutWithNoData(t *testing.T) {
	c, server := pipeConns(t)
	defer c.Shutdown()
	defer server.Close()

	_, err := c.RecvTimeout(50 * time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestRecvDisconnected(t *testing.T) {
	c, server := pipeConns(t)
	defer c.Shutdown()
	server.Close()

	_, err := c.RecvTimeout(time.Second)
	if err == nil {
		t.Fatal("expected an error after the peer closed the connection")
	}
	var ce *ConnError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConnError, got %T: %v", err, err)
	}
}

func TestRecvDeliversConcatenatedFramesInOrder(t *testing.T) {
	c, server := pipeConns(t)
	defer c.Shutdown()
	defer server.Close()

	f1 := wire.RawFrame{Dest: addr.App, Src: addr.Dsp, TypeID: 0x01, Payload: []byte{0xAA}}
	f2 := wire.RawFrame{Dest: addr.App, Src: addr.Avr, TypeID: 0x02, Payload: []byte{0xBB}}
	f3 := wire.RawFrame{Dest: addr.App, Src: addr.Pi, TypeID: 0x03, Payload: []byte{0xCC}}

	go func() {
		var stream []byte
		stream = append(stream, f1.Encode()...)
		stream = append(stream, f2.Encode()...)
		stream = append(stream, f3.Encode()...)
		server.Write(stream)
	}()

	for i, want := range []wire.RawFrame{f1, f2, f3} {
		env, err := c.RecvTimeout(time.Second)
		if err != nil {
			t.Fatalf("RecvTimeout(%d): %v", i, err)
		}
		if env.TypeID != want.TypeID || env.Src != want.Src {
			t.Fatalf("frame %d out of order: got src=%s type=0x%02X, want src=%s type=0x%02X",
				i, env.Src, env.TypeID, want.Src, want.TypeID)
		}
	}
}
