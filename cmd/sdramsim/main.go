// Command sdramsim drives random bus traffic through the SDRAM controller and
// a model of the device, and reports how the controller performed.
package main

func main() {
	Execute()
}
