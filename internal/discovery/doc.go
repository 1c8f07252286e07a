// Package discovery advertises and finds weather widget servers on the LAN.
//
// A server started with `weather serve --advertise` registers an mDNS
// service of type "_weatherwidget._tcp" whose TXT records describe where
// the WebSocket endpoint lives:
//
//	path=/ws
//	version=v1.2.0
//
// `weather discover` browses for that service type and lists the servers
// that answer before the scan timeout.
//
// # Usage Example
//
//	adv, err := discovery.Advertise("kitchen", 8080, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer adv.Shutdown()
//
//	instances, err := discovery.NewScanner().Scan(ctx)
//	for _, inst := range instances {
//	    fmt.Println(inst.WebSocketURL())
//	}
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Servers must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
package discovery
