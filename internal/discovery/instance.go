package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Instance is a widget server found on the network
type Instance struct {
	// Name is the mDNS instance name (e.g., "kitchen")
	Name string `json:"name"`

	// Hostname is the advertised host (e.g., "pi.local.")
	Hostname string `json:"hostname"`

	// IP is the address to connect to, IPv4 when available
	IP string `json:"ip"`

	// Port is the HTTP port the server listens on
	Port int `json:"port"`

	// Path is the WebSocket endpoint path (TXT "path", default "/ws")
	Path string `json:"path"`

	// Version is the server build version (TXT "version")
	Version string `json:"version,omitempty"`

	// Metadata holds every TXT record, including path and version
	Metadata map[string]string `json:"metadata,omitempty"`

	// DiscoveredAt is when the instance answered
	DiscoveredAt time.Time `json:"discovered_at"`
}

// String returns a human-readable description of the instance
func (i *Instance) String() string {
	v := i.Version
	if v == "" {
		v = "unknown version"
	}
	return fmt.Sprintf("%s (%s) at %s [%s]", i.Name, i.Hostname, i.hostPort(), v)
}

func (i *Instance) hostPort() string {
	return net.JoinHostPort(i.IP, strconv.Itoa(i.Port))
}

// BaseURL returns the HTTP base URL of the server
func (i *Instance) BaseURL() string {
	return "http://" + i.hostPort()
}

// WebSocketURL returns the widget session URL
func (i *Instance) WebSocketURL() string {
	path := i.Path
	if path == "" {
		path = DefaultPath
	}
	return "ws://" + i.hostPort() + path
}

// GetMetadata retrieves a TXT value by key, or "" if absent
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}
