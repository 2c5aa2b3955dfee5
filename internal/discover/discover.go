// Package discover finds a device on the local network via mDNS, falling
// back to the factory default address when no advertisement is found.
package discover

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/divotmaker/ironsight/conn"
)

// ServiceType is the mDNS service the device advertises itself under.
const ServiceType = "_mevodevice._tcp"

// Found describes a discovered device.
type Found struct {
	Instance string
	Address  string // host:port, ready for conn.Dial
	Text     []string
}

// Browse searches for devices advertising ServiceType for up to timeout,
// returning every instance seen. Callers with more than one device on the
// network should prompt for a choice; Default picks the first.
func Browse(ctx context.Context, timeout time.Duration) ([]Found, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("discover: new resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry, 8)
	var found []Found
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if len(e.AddrIPv4) == 0 {
				continue
			}
			found = append(found, Found{
				Instance: e.Instance,
				Address:  net.JoinHostPort(e.AddrIPv4[0].String(), fmt.Sprint(e.Port)),
				Text:     e.Text,
			})
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, "local.", entries); err != nil {
		return nil, fmt.Errorf("discover: browse: %w", err)
	}
	<-ctx.Done()
	<-done
	return found, nil
}

// Default returns the address of the first device found within timeout,
// or conn.DefaultAddr if none is found or the browse fails. Discovery
// failures are not fatal — a device reachable at its factory address
// should still be usable.
func Default(ctx context.Context, timeout time.Duration) string {
	found, err := Browse(ctx, timeout)
	if err != nil || len(found) == 0 {
		return conn.DefaultAddr
	}
	return found[0].Address
}
