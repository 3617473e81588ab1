// Package airgap implements a best-effort check that the host looks offline
// before secret material is handled. It only enumerates interface state; it
// never opens a connection. A clean result is a heuristic, not a guarantee —
// the check cannot see upstream routers, and an interface can come up a
// moment later.
package airgap

import "net"

// Interface describes a network interface relevant to the offline check.
type Interface struct {
	Name      string
	Addresses []string
}

// Report is the result of an offline check.
type Report struct {
	// Offline is true when no non-loopback interface carries a usable
	// address.
	Offline bool

	// Active lists the interfaces that look connected.
	Active []Interface
}

// ifaceState is the slice of interface state the heuristic looks at,
// separated from net.Interface so tests can fabricate hosts.
type ifaceState struct {
	name  string
	flags net.Flags
	addrs []net.Addr
}

// Check inspects the host's network interfaces and reports whether the
// machine looks air-gapped. If the interfaces cannot be enumerated the check
// fails open: the report claims online, so callers warn rather than assume
// safety.
func Check() Report {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Report{Offline: false}
	}

	states := make([]ifaceState, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		states = append(states, ifaceState{name: iface.Name, flags: iface.Flags, addrs: addrs})
	}

	return classify(states)
}

// classify applies the offline heuristic: an interface counts as active when
// it is up, not loopback, and carries at least one routable address.
func classify(states []ifaceState) Report {
	var active []Interface
	for _, s := range states {
		if s.flags&net.FlagLoopback != 0 || s.flags&net.FlagUp == 0 {
			continue
		}

		var usable []string
		for _, addr := range s.addrs {
			ip := addrIP(addr)
			if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			usable = append(usable, ip.String())
		}

		if len(usable) > 0 {
			active = append(active, Interface{Name: s.name, Addresses: usable})
		}
	}

	return Report{Offline: len(active) == 0, Active: active}
}

func addrIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.IPNet:
		return a.IP
	case *net.IPAddr:
		return a.IP
	default:
		return nil
	}
}
