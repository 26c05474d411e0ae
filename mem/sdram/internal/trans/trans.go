// Package trans defines the units of work passed between the request
// tracker, the command sequencer and the response pipeline.
package trans

import "fmt"

// An Access is the single 32-bit read or write the tracker offers to the
// command sequencer in one cycle.
type Access struct {
	Valid bool
	Write bool
	Addr  uint32

	// Data and Mask are only meaningful for writes. Mask has one bit per
	// byte, set for the bytes to store.
	Data uint32
	Mask uint8

	// Last marks the final beat of a bus transaction.
	Last bool
	ID   uint8
}

func (a Access) String() string {
	if !a.Valid {
		return "none"
	}

	if a.Write {
		return fmt.Sprintf("write id=%d addr=0x%x data=0x%08x mask=%04b last=%t",
			a.ID, a.Addr, a.Data, a.Mask, a.Last)
	}

	return fmt.Sprintf("read id=%d addr=0x%x last=%t", a.ID, a.Addr, a.Last)
}

// Record returns the in-flight record to keep while the access is served.
func (a Access) Record() InflightRecord {
	return InflightRecord{Write: a.Write, Last: a.Last, ID: a.ID}
}

// InflightRecord remembers what kind of response an accepted access owes.
type InflightRecord struct {
	Write bool
	Last  bool
	ID    uint8
}
