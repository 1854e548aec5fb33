package clocks

const Mhz = 1000000

// the PC master crystal. every interesting clock in the machine is a division
// of this
const Crystal = 14.31818 * Mhz

// the input clock of the 8253 programmable interval timer is the crystal
// divided by 12
const PIT = Crystal / 12 // 1.1932Mhz

// channel 0 of the PIT is left at the maximum divisor by the BIOS, giving the
// familiar 18.2 ticks per second for the timer interrupt
const TimerDivisor = 65536

const TickHz = PIT / TimerDivisor // 18.2065Hz

// number of timer ticks in 24 hours. when the tick counter in the BIOS data
// area reaches this value it resets to zero and the midnight flag is raised
const TicksPerDay = 0x1800b0
