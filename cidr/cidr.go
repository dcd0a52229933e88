// Fichier: cidr/cidr.go

package cidr

import (
	"errors"
	"fmt"
	"iter"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// ErrZone is returned for scoped IPv6 literals such as fe80::1%eth0/64.
var ErrZone = errors.New("zoned addresses are not supported")

// Block is a CIDR network together with the port suffix appended to every
// address it expands to.
type Block struct {
	// Prefix is always masked, so Prefix.Addr() is the first address of the block.
	Prefix netip.Prefix
	// PortSuffix is appended verbatim, e.g. ":22" or ":[22]".
	PortSuffix string
}

// ParseBlock parses an IPv4 or IPv6 CIDR literal. Host bits are masked off and a
// bare address is treated as a single-host block (/32 or /128).
func ParseBlock(literal, portSuffix string) (Block, error) {
	var prefix netip.Prefix
	if strings.Contains(literal, "/") {
		p, err := netip.ParsePrefix(literal)
		if err != nil {
			return Block{}, fmt.Errorf("invalid CIDR %q: %w", literal, err)
		}
		prefix = p
	} else {
		addr, err := netip.ParseAddr(literal)
		if err != nil {
			return Block{}, fmt.Errorf("invalid CIDR %q: %w", literal, err)
		}
		if addr.Zone() != "" {
			return Block{}, fmt.Errorf("invalid CIDR %q: %w", literal, ErrZone)
		}
		prefix = netip.PrefixFrom(addr, addr.BitLen())
	}

	return Block{Prefix: prefix.Masked(), PortSuffix: portSuffix}, nil
}

// Size returns the number of addresses in the block. The second value is false
// when the count does not fit in a uint64 (IPv6 prefixes shorter than /65).
func (b Block) Size() (uint64, bool) {
	hostBits := b.Prefix.Addr().BitLen() - b.Prefix.Bits()
	if hostBits >= 64 {
		return 0, false
	}
	return uint64(1) << hostBits, true
}

// All yields every address of the block in ascending order, suffixed with the
// port. The sequence can be ranged over more than once.
func (b Block) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		r := netipx.RangeOfPrefix(b.Prefix)
		if !r.IsValid() {
			return
		}
		last := r.To()
		for addr := r.From(); ; addr = addr.Next() {
			if !yield(addr.String() + b.PortSuffix) {
				return
			}
			if addr == last {
				return
			}
		}
	}
}

// Expand materializes All. Callers are expected to bound Size first.
func (b Block) Expand() []string {
	var out []string
	if n, ok := b.Size(); ok {
		out = make([]string, 0, n)
	}
	for t := range b.All() {
		out = append(out, t)
	}
	return out
}

// NetAddr is one expanded target split into its parts, used for ordering.
type NetAddr struct {
	// Target is the original target string.
	Target string
	// Host is the address or hostname without the port.
	Host string
	// Addr is valid only when Host is an IP literal.
	Addr netip.Addr
	// Port is the port text, brackets removed. Empty when absent.
	Port string
	// Index is the position of the target in its input list.
	Index int
}

// IsIP reports whether the target host is an IP literal.
func (n *NetAddr) IsIP() bool {
	return n.Addr.IsValid()
}

// NetAddrSlice is a slice of NetAddr sorted by DeduplicateAndSort.
type NetAddrSlice []*NetAddr

// ParseTarget splits a target into host and port. It understands the forms the
// parser produces (a.b.c.d:port, v6:[port]) as well as host:port and [v6]:port.
func ParseTarget(s string, index int) *NetAddr {
	n := &NetAddr{Target: s, Host: s, Index: index}

	switch {
	case strings.HasSuffix(s, "]") && strings.Contains(s, ":["):
		i := strings.LastIndex(s, ":[")
		n.Host, n.Port = s[:i], s[i+2:len(s)-1]
	case strings.HasPrefix(s, "["):
		if i := strings.Index(s, "]"); i > 0 {
			n.Host = s[1:i]
			n.Port = strings.TrimPrefix(s[i+1:], ":")
		}
	case strings.Count(s, ":") == 1:
		i := strings.Index(s, ":")
		n.Host, n.Port = s[:i], s[i+1:]
	}

	if addr, err := netip.ParseAddr(n.Host); err == nil && addr.Zone() == "" {
		n.Addr = addr
	}
	return n
}

// ParseTargets splits every target of a list, keeping input order in Index.
func ParseTargets(targets []string) NetAddrSlice {
	out := make(NetAddrSlice, 0, len(targets))
	for i, t := range targets {
		out = append(out, ParseTarget(t, i))
	}
	return out
}

// Targets returns the original target strings in slice order.
func (s NetAddrSlice) Targets() []string {
	out := make([]string, 0, len(s))
	for _, n := range s {
		out = append(out, n.Target)
	}
	return out
}
