// Package org keeps the open-row state of the SDRAM banks.
package org

// A Bank records whether a row is open and which one.
type Bank struct {
	RowOpen   bool
	ActiveRow int
}

// Banks holds one entry per bank. It is owned by the command sequencer and
// never written by anything else.
type Banks []Bank

// NewBanks creates n closed banks.
func NewBanks(n int) Banks {
	return make(Banks, n)
}

// Hit tells if row is the open row of bank.
func (b Banks) Hit(bank, row int) bool {
	return b[bank].RowOpen && b[bank].ActiveRow == row
}

// Conflict tells if bank has a different row open.
func (b Banks) Conflict(bank, row int) bool {
	return b[bank].RowOpen && b[bank].ActiveRow != row
}

// AnyOpen tells if at least one bank has an open row.
func (b Banks) AnyOpen() bool {
	for _, bank := range b {
		if bank.RowOpen {
			return true
		}
	}

	return false
}

// Open marks row as the open row of bank.
func (b Banks) Open(bank, row int) {
	b[bank] = Bank{RowOpen: true, ActiveRow: row}
}

// Close closes bank.
func (b Banks) Close(bank int) {
	b[bank].RowOpen = false
}

// CloseAll closes every bank.
func (b Banks) CloseAll() {
	for i := range b {
		b[i].RowOpen = false
	}
}

// Clone returns an independent copy.
func (b Banks) Clone() Banks {
	c := make(Banks, len(b))
	copy(c, b)

	return c
}
