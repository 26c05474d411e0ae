// Package addressmapping splits a bus byte address into the bank, row and
// column seen by the SDRAM device.
package addressmapping

// Location is the device coordinate of one 32-bit word. Column counts
// half-words, so a word always starts at an even column.
type Location struct {
	Bank int
	Row  int
	Col  int
}

// A Mapper decodes addresses laid out, from the least significant bit, as
// byte-in-word, word-in-row, bank, row.
type Mapper struct {
	ColWidth  int
	BankWidth int
	RowWidth  int
}

const wordShift = 2

func (m Mapper) bankShift() int {
	return wordShift + m.ColWidth - 1
}

func (m Mapper) rowShift() int {
	return m.bankShift() + m.BankWidth
}

// Map returns the location of the word that contains addr.
func (m Mapper) Map(addr uint32) Location {
	wordInRow := int(addr>>wordShift) & (1<<(m.ColWidth-1) - 1)

	return Location{
		Bank: int(addr>>m.bankShift()) & (1<<m.BankWidth - 1),
		Row:  int(addr>>m.rowShift()) & (1<<m.RowWidth - 1),
		Col:  wordInRow << 1,
	}
}

// Unmap returns the word-aligned byte address of loc.
func (m Mapper) Unmap(loc Location) uint32 {
	return uint32(loc.Row)<<m.rowShift() |
		uint32(loc.Bank)<<m.bankShift() |
		uint32(loc.Col>>1)<<wordShift
}

// Capacity returns the number of bytes addressable through the mapper.
func (m Mapper) Capacity() uint64 {
	return 1 << (m.rowShift() + m.RowWidth)
}
