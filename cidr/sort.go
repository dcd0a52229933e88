// Fichier: cidr/sort.go

package cidr

import (
	"sort"
	"strconv"
)

// Deduplicate keeps the first occurrence of every target, in input order.
func Deduplicate(addrs NetAddrSlice) NetAddrSlice {
	seen := make(map[string]struct{}, len(addrs))
	result := make(NetAddrSlice, 0, len(addrs))
	for _, addr := range addrs {
		if _, found := seen[addr.Target]; found {
			continue
		}
		seen[addr.Target] = struct{}{}
		result = append(result, addr)
	}
	return result
}

// DeduplicateAndSort removes duplicate targets and applies the custom sorting logic.
func DeduplicateAndSort(addrs NetAddrSlice) NetAddrSlice {
	// 1. Deduplication
	result := Deduplicate(addrs)

	// 2. Custom sort
	sort.SliceStable(result, func(i, j int) bool {
		a := result[i]
		b := result[j]

		// Rule 1: IP targets come before hostnames.
		if a.IsIP() != b.IsIP() {
			return a.IsIP()
		}

		// Rule 2: hostnames keep their input order.
		if !a.IsIP() {
			return a.Index < b.Index
		}

		// Rule 3: numeric order (IPv4 before IPv6, then address, then port).
		return compareNetAddrs(a, b)
	})

	return result
}

func compareNetAddrs(a, b *NetAddr) bool {
	// 1. IPv4 before IPv6
	isA4 := a.Addr.Unmap().Is4()
	isB4 := b.Addr.Unmap().Is4()
	if isA4 != isB4 {
		return isA4
	}

	// 2. Compare addresses numerically
	if c := a.Addr.Unmap().Compare(b.Addr.Unmap()); c != 0 {
		return c < 0
	}

	// 3. Same host: no port first, then numeric port, then text
	return comparePorts(a.Port, b.Port)
}

func comparePorts(a, b string) bool {
	if a == b {
		return false
	}
	if a == "" || b == "" {
		return a == ""
	}
	pa, errA := strconv.ParseUint(a, 10, 64)
	pb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil && pa != pb {
		return pa < pb
	}
	return a < b
}
