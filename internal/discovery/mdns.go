package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/sravani-1304/weather-application/internal/logging"
)

const (
	// ServiceType is the mDNS service type widget servers advertise
	ServiceType = "_weatherwidget._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default time to wait for answers
	DefaultScanTimeout = 5 * time.Second

	// DefaultPath is the WebSocket path assumed when TXT has none
	DefaultPath = "/ws"

	// DefaultPort is assumed when an entry carries no port
	DefaultPort = 8080
)

// TXT record keys
const (
	txtPath    = "path"
	txtVersion = "version"
)

// Advertisement is a running mDNS registration
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise registers instance on port with the widget TXT records
func Advertise(instance string, port int, version string) (*Advertisement, error) {
	if instance == "" {
		return nil, errors.New("instance name is required")
	}
	if port <= 0 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	text := TXTRecords(DefaultPath, version)
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, text, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising widget server",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
		zap.Strings("txt", text),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the advertisement
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Debug("mDNS advertisement withdrawn")
}

// TXTRecords builds the TXT strings for a widget server
func TXTRecords(path, version string) []string {
	if path == "" {
		path = DefaultPath
	}
	text := []string{txtPath + "=" + path}
	if version != "" {
		text = append(text, txtVersion+"="+version)
	}
	return text
}

// Scanner handles mDNS discovery of widget servers
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan collects every widget server that answers before the timeout or
// until ctx is canceled. Instances are de-duplicated by name.
func (s *Scanner) Scan(ctx context.Context) ([]*Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu        sync.Mutex
		seen      = make(map[string]bool)
		instances = make([]*Instance, 0)
	)
	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			inst := parseServiceEntry(entry)
			if inst == nil {
				continue
			}
			mu.Lock()
			if !seen[inst.Name] {
				seen[inst.Name] = true
				instances = append(instances, inst)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]*Instance(nil), instances...), nil
}

// WaitFor returns the first instance named name, or an error on timeout
func (s *Scanner) WaitFor(ctx context.Context, name string) (*Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Instance, 1)
	go func() {
		for entry := range entries {
			inst := parseServiceEntry(entry)
			if inst != nil && inst.Name == name {
				select {
				case found <- inst:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case inst := <-found:
		return inst, nil
	case <-ctx.Done():
		// The match may have canceled the context itself.
		select {
		case inst := <-found:
			return inst, nil
		default:
		}
		return nil, fmt.Errorf("widget server %q not found within %s", name, s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf entry to an Instance. It returns
// nil when the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Instance {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	path := metadata[txtPath]
	if path == "" {
		path = DefaultPath
	}

	return &Instance{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Path:         path,
		Version:      metadata[txtVersion],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
