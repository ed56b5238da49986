// Package schema holds the static table of device parameters a client may
// write, their allowed values and help texts.
//
// The table is fixed at build time. Every write passes through
// ValidateRequest before it is encrypted, so out-of-domain values never
// reach the device. Reads are narrowed with FilterResponse.
//
//	pwr   {"0", "1"}            power off/on
//	om    {"1", "2", "3", "s"}  fan speed, "s" = silent
//	aqil  1..100                light brightness
//	uil   {"0", "1"}            display off/on
//	ddp   {"0", "1"}            pollution display: pm2.5 vs IAI
//	mode  {"P", "A", "M", "B"}  anti-pollution / anti-allergen / manual / antivirus
package schema
