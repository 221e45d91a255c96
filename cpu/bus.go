package cpu

// BusDriver is one component's connection to a shared bus for the
// current tick: whether its output-enable line is asserted, and the
// value it would drive.
type BusDriver struct {
	Enabled bool
	Value   uint8
}

// BusSettle resolves the shared bus value for one tick. At most one
// driver may be enabled; a second enabled driver is a microprogram
// authoring bug, never runtime data, so it panics rather than
// returning an error. With no driver enabled, ok is false and the
// value is meaningless; a correct microprogram never consumes it.
func BusSettle(drivers ...BusDriver) (value uint8, ok bool) {
	for _, drv := range drivers {
		if !drv.Enabled {
			continue
		}
		if ok {
			panic(ErrBusContention)
		}
		value = drv.Value
		ok = true
	}

	return
}
