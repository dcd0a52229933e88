// Fichier: dns/names.go (offline name helpers, no queries are sent)

package dns

import (
	"fmt"

	"project/target-expander/cidr"

	"github.com/miekg/dns"
)

// Kind is the class of a target's host part.
type Kind int

const (
	KindInvalid Kind = iota
	KindIPv4
	KindIPv6
	KindHostname
)

func (k Kind) String() string {
	switch k {
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	case KindHostname:
		return "hostname"
	default:
		return "invalid"
	}
}

// Classify reports what kind of host a target names. Ports are ignored.
func Classify(target string) Kind {
	n := cidr.ParseTarget(target, 0)
	if n.IsIP() {
		if n.Addr.Unmap().Is4() {
			return KindIPv4
		}
		return KindIPv6
	}

	if n.Host == "" {
		return KindInvalid
	}
	// IsDomainName accepts any presentation-format name; reject spaces and
	// other characters that never appear in a hostname on the wire.
	if _, ok := dns.IsDomainName(n.Host); !ok || !isHostnameText(n.Host) {
		return KindInvalid
	}
	return KindHostname
}

func isHostnameText(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '.', r == '_':
		default:
			return false
		}
	}
	return true
}

// ReverseName returns the PTR owner name (in-addr.arpa. or ip6.arpa.) for an IP
// target.
func ReverseName(target string) (string, error) {
	n := cidr.ParseTarget(target, 0)
	if !n.IsIP() {
		return "", fmt.Errorf("no reverse name for %s: not an IP address", target)
	}

	name, err := dns.ReverseAddr(n.Addr.Unmap().String())
	if err != nil {
		return "", fmt.Errorf("no reverse name for %s: %w", target, err)
	}
	return name, nil
}
