// Package input defines the device-agnostic samples the behavior core
// consumes. The core never polls devices; frontends translate their raw
// events into these types and feed them to the ability manager
package input

// Edge is a discrete action transition
type Edge uint8

const (
	EdgePressed Edge = iota
	EdgeReleased
)

func (e Edge) String() string {
	if e == EdgeReleased {
		return "released"
	}
	return "pressed"
}

// DeviceID identifies the originating device (keyboard, pad slot, etc.)
type DeviceID int

// Action is a discrete input transition
type Action struct {
	Name   string
	Edge   Edge
	Device DeviceID
}

// Axis is a continuous input sample
type Axis struct {
	Name   string
	Value  float64
	Device DeviceID
}
