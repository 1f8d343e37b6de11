// Package kernel holds the value objects shared by every aggregate of the workshop:
// identifiers, positive quantities and the order type with the rules derived from it
// (whether a contract step is needed and which manufacturing order, if any, it spawns).
package kernel
