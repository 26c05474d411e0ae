// Package axi defines the signal-level view of the split-transaction burst
// bus that the SDRAM controller serves: five independent valid/ready channels
// (write address, write data, write response, read address, read data) and
// the burst address arithmetic shared by masters and slaves.
//
// Every beat carries one 32-bit word, so addresses advance in units of
// BeatBytes.
package axi
