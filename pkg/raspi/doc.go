// Package raspi describes the Raspberry Pi targets PinMagik generates code for.
//
// A [ProjectType] selects a board family and with it a [Revision]. The
// revision fixes the set of BCM GPIO numbers available on the header, which
// in turn fixes the port counts of the two boundary nodes:
//
//   - [InputNode] (kind 0x8001) has one source per GPIO pin and reads pins
//     during the loop pass.
//   - [OutputNode] (kind 0x8002) has one sink per GPIO pin and drives pins
//     during the loop pass.
//
// Both boundary nodes only set up the pins that are actually wired, so an
// empty project compiles to a script that touches no pins at all.
package raspi
