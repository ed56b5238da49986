// Package discovery resolves purifier host names and browses the local
// network for devices.
//
// Resolution order for a host:
//
//  1. literal IPv4/IPv6 addresses are used as is
//  2. DNS lookup, IPv4 preferred
//  3. for *.local names that DNS could not resolve, an mDNS browse for the
//     configured service type (default _http._tcp) and a match on the
//     advertised host name
//
// An optional ":port" suffix is kept through resolution.
package discovery
