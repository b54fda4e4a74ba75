// Package gnbryo collects moss species records from GBIF and the IUCN Red
// List and aggregates them into a resumable species list and a
// class/order/family/genus hierarchy.
package gnbryo

var (
	// Version of the gnbryo, set by the build flags.
	Version = "v0.1.0"
	// Build timestamp, set by the build flags.
	Build = "n/a"
)
