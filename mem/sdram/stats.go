package sdram

import (
	"github.com/sarchlab/sdramaxi/mem/sdram/internal/cmdseq"
	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
)

// Stats counts what the controller has done since it was built.
type Stats struct {
	Cycles uint64

	Activates  uint64
	Reads      uint64
	Writes     uint64
	Precharges uint64
	Refreshes  uint64
	ModeLoads  uint64

	RowHits      uint64
	RowMisses    uint64
	RowConflicts uint64

	ReadBursts  uint64
	WriteBursts uint64
	ReadBeats   uint64
	WriteBeats  uint64
}

// RowHitRate returns the share of accesses that found their row open.
func (s Stats) RowHitRate() float64 {
	total := s.RowHits + s.RowMisses + s.RowConflicts
	if total == 0 {
		return 0
	}

	return float64(s.RowHits) / float64(total)
}

func (s *Stats) countCommand(cmd signal.Command) {
	switch cmd {
	case signal.CmdActive:
		s.Activates++
	case signal.CmdRead:
		s.Reads++
	case signal.CmdWrite:
		s.Writes++
	case signal.CmdPrecharge:
		s.Precharges++
	case signal.CmdRefresh:
		s.Refreshes++
	case signal.CmdLoadMode:
		s.ModeLoads++
	}
}

func (s *Stats) countOutcome(o cmdseq.RowOutcome) {
	switch o {
	case cmdseq.RowHit:
		s.RowHits++
	case cmdseq.RowMiss:
		s.RowMisses++
	case cmdseq.RowConflict:
		s.RowConflicts++
	}
}
