package cycle

// SplitSleep decomposes the time left in a cycle after the warning period
// into a sub-minute remainder and whole minutes. The remainder is slept
// first in one shot, then each whole minute separately; the split keeps the
// cycle period honest on sleep primitives that only do minute-sized chunks.
//
// For any intervalMinutes >= 1 and warnSeconds < intervalMinutes*60:
//
//	remainderSeconds + wholeMinutes*60 + warnSeconds == intervalMinutes*60
func SplitSleep(intervalMinutes, warnSeconds int) (remainderSeconds, wholeMinutes int) {
	total := intervalMinutes*60 - warnSeconds
	remainderSeconds = total % 60
	wholeMinutes = (total - remainderSeconds) / 60
	return remainderSeconds, wholeMinutes
}
