package seq

import (
	"net"
	"testing"
	"time"

	"github.com/divotmaker/ironsight/addr"
	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/protocol"
	"github.com/divotmaker/ironsight/wire"
)

// scriptedDevice reads one frame at a time off server and replies with
// whatever handler returns for that frame's TypeID, until stop fires.
type scriptedDevice struct {
	server   net.Conn
	splitter *wire.FrameSplitter
	handlers map[byte]func(f wire.RawFrame) []wire.RawFrame
}

func newScriptedDevice(server net.Conn) *scriptedDevice {
	return &scriptedDevice{
		server:   server,
		splitter: wire.NewFrameSplitter(),
		handlers: map[byte]func(f wire.RawFrame) []wire.RawFrame{},
	}
}

func (d *scriptedDevice) on(typeID byte, handler func(f wire.RawFrame) []wire.RawFrame) {
	d.handlers[typeID] = handler
}

func (d *scriptedDevice) run(t *testing.T, stop <-chan struct{}) {
	buf := make([]byte, 4096)
	for {
		select {
		case <-stop:
			return
		default:
		}
		d.server.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, err := d.server.Read(buf)
		if err != nil {
			return
		}
		for _, raw := range d.splitter.Feed(buf[:n]) {
			f, err := wire.ParseFrame(raw)
			if err != nil {
				t.Errorf("scripted device: parse frame: %v", err)
				continue
			}
			handler, ok := d.handlers[f.TypeID]
			if !ok {
				t.Errorf("scripted device: no handler for type 0x%02X", f.TypeID)
				continue
			}
			for _, reply := range handler(f) {
				d.server.Write(reply.Encode())
			}
		}
	}
}

func reply(dest addr.BusAddr, src addr.BusAddr, typeID byte, payload []byte) wire.RawFrame {
	return wire.RawFrame{Dest: dest, Src: src, TypeID: typeID, Payload: payload}
}

func dspStatus80Payload() []byte {
	p := make([]byte, 64)
	p[0] = 0x80
	return p
}

func avrStatusPayload() []byte {
	p := make([]byte, 25)
	return p
}

func nulString(s string, width int) []byte {
	b := make([]byte, width)
	copy(b, s)
	return b
}

func TestSyncDsp(t *testing.T) {
	client, server := net.Pipe()
	connection := conn.NewFromConn(client)

	dev := newScriptedDevice(server)
	dev.on(protocol.TypeStatus, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{reply(addr.App, addr.Dsp, protocol.TypeStatus, dspStatus80Payload())}
	})
	dev.on(protocol.TypeDspQuery, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{reply(addr.App, addr.Dsp, protocol.TypeDspQueryResp, []byte{0x01, 0x80, 0x02})}
	})
	dev.on(protocol.TypeDevInfoReq, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{reply(addr.App, addr.Dsp, protocol.TypeDevInfoResp, make([]byte, 76))}
	})
	dev.on(protocol.TypeProdInfoReq, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{reply(addr.App, addr.Dsp, protocol.TypeProdInfoResp, nulString("MX1", 8))}
	})
	dev.on(protocol.TypeConfigQuery, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{reply(addr.App, addr.Dsp, protocol.TypeConfigResp, make([]byte, 69))}
	})

	stop := make(chan struct{})
	go dev.run(t, stop)
	defer close(stop)
	defer connection.Shutdown()
	defer server.Close()

	out, err := SyncDsp(connection)
	if err != nil {
		t.Fatalf("SyncDsp: %v", err)
	}
	if out.Status.StatusState() != 0 {
		t.Fatalf("unexpected status state: %+v", out.Status)
	}
	if out.HwInfo.DspType != 0x80 {
		t.Fatalf("unexpected hw info: %+v", out.HwInfo)
	}
}

func TestKeepalive(t *testing.T) {
	client, server := net.Pipe()
	connection := conn.NewFromConn(client)

	dev := newScriptedDevice(server)
	dev.on(protocol.TypeStatus, func(f wire.RawFrame) []wire.RawFrame {
		switch f.Dest {
		case addr.Dsp:
			return []wire.RawFrame{reply(addr.App, addr.Dsp, protocol.TypeStatus, dspStatus80Payload())}
		case addr.Avr:
			return []wire.RawFrame{reply(addr.App, addr.Avr, protocol.TypeStatus, avrStatusPayload())}
		case addr.Pi:
			return []wire.RawFrame{reply(addr.App, addr.Pi, protocol.TypeStatus, []byte{0x01, 0x02})}
		}
		return nil
	})

	stop := make(chan struct{})
	go dev.run(t, stop)
	defer close(stop)
	defer connection.Shutdown()
	defer server.Close()

	_, err := Keepalive(connection)
	if err != nil {
		t.Fatalf("Keepalive: %v", err)
	}
}

func TestCompleteShot(t *testing.T) {
	client, server := net.Pipe()
	connection := conn.NewFromConn(client)

	// CompleteShot writes both ShotDataAcks before it reads anything, and
	// net.Pipe is unbuffered, so IDLE is sent only after the second ack.
	acks := 0
	dev := newScriptedDevice(server)
	dev.on(protocol.TypeShotDataAck, func(f wire.RawFrame) []wire.RawFrame {
		acks++
		if acks == 2 {
			return []wire.RawFrame{reply(addr.App, addr.Avr, protocol.TypeShotText, []byte("IDLE"))}
		}
		return nil
	})
	dev.on(protocol.TypeConfigQuery, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{
			reply(addr.App, addr.Avr, protocol.TypeModeAck, []byte{0x02, 0x00, 0x00}),
			reply(addr.App, addr.Avr, protocol.TypeConfigResp, make([]byte, 69)),
		}
	})
	dev.on(protocol.TypeShotResultReq, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{reply(addr.App, addr.Avr, protocol.TypeClubResult, make([]byte, 167))}
	})
	dev.on(protocol.TypeAvrConfigCmd, func(f wire.RawFrame) []wire.RawFrame {
		return []wire.RawFrame{
			reply(addr.App, addr.Avr, protocol.TypeConfigAck, []byte{0x00, addr.Avr.Byte(), protocol.TypeAvrConfigCmd}),
			reply(addr.App, addr.Avr, protocol.TypeDebugText, []byte("ARMED")),
		}
	})

	stop := make(chan struct{})
	go dev.run(t, stop)
	defer close(stop)
	defer connection.Shutdown()
	defer server.Close()

	var logged []string
	if err := CompleteShot(connection, func(s string) { logged = append(logged, s) }); err != nil {
		t.Fatalf("CompleteShot: %v", err)
	}
	if len(logged) != 3 || logged[0] != "waiting for IDLE..." || logged[1] != "IDLE" || logged[2] != "RE-ARMED" {
		t.Fatalf("unexpected log trail: %v", logged)
	}
}
