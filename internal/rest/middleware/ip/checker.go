package ip

import (
	"net"

	"github.com/pracor/pracor/internal/setup/config"
	"go.uber.org/zap"
)

// specialCIDRs are private and special-use ranges that never identify a client.
var specialCIDRs = [...]string{
	"0.0.0.0/8",          // RFC 1122 "this" network
	"10.0.0.0/8",         // RFC 1918
	"100.64.0.0/10",      // RFC 6598 carrier-grade NAT
	"127.0.0.0/8",        // loopback
	"169.254.0.0/16",     // RFC 3927 link-local
	"172.16.0.0/12",      // RFC 1918
	"192.0.0.0/24",       // RFC 5736
	"192.0.2.0/24",       // TEST-NET-1
	"192.88.99.0/24",     // RFC 3068
	"192.168.0.0/16",     // RFC 1918
	"198.18.0.0/15",      // RFC 2544 benchmarking
	"198.51.100.0/24",    // TEST-NET-2
	"203.0.113.0/24",     // TEST-NET-3
	"224.0.0.0/4",        // multicast
	"240.0.0.0/4",        // reserved
	"255.255.255.255/32", // broadcast

	"::1/128",
	"fc00::/7",
	"fe80::/10",
	"ff00::/8",
	"2001:db8::/32",
}

// Checker validates IP addresses against special-use ranges and the
// configured trusted proxies.
type Checker struct {
	privateNets []*net.IPNet
	trustedNets []*net.IPNet
	allowLocal  bool
}

// NewChecker creates a new Checker. Invalid proxy CIDRs are logged and skipped.
func NewChecker(logger *zap.Logger, cfg *config.IPConfig) *Checker {
	return &Checker{
		privateNets: parseCIDRs(logger, specialCIDRs[:]),
		trustedNets: parseCIDRs(logger, cfg.TrustedProxies),
		allowLocal:  cfg.AllowLocalIPs,
	}
}

// ValidateIP returns ip when it parses and is usable, UnknownIP otherwise.
func (c *Checker) ValidateIP(ip string) string {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil || !c.IsValidPublicIP(parsedIP) {
		return UnknownIP
	}
	return parsedIP.String()
}

// IsValidPublicIP checks if an IP may identify a client.
func (c *Checker) IsValidPublicIP(ip net.IP) bool {
	if ip == nil {
		return false
	}
	if c.allowLocal {
		return true
	}
	if !ip.IsGlobalUnicast() {
		return false
	}
	return !contains(c.privateNets, ip)
}

// IsTrustedProxy checks if an IP is in the trusted proxy list.
func (c *Checker) IsTrustedProxy(ip net.IP) bool {
	return contains(c.trustedNets, ip)
}

func contains(nets []*net.IPNet, ip net.IP) bool {
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func parseCIDRs(logger *zap.Logger, cidrs []string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Error("Invalid CIDR", zap.String("cidr", cidr), zap.Error(err))
			continue
		}
		nets = append(nets, ipNet)
	}
	return nets
}
