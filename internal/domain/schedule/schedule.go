// Package schedule maps academic blocks to wall-clock attendance times.
package schedule

import (
	"time"
)

// Block configuration constants.
const (
	MinBlock = 1
	MaxBlock = 7

	// BlockDuration is the length of one academic block in minutes.
	BlockDuration = 45

	defaultBlockBeforeRecess = 4
	defaultRecessMinutes     = 15
)

// DefaultRecess is used when the settings store has no usable recess values.
var DefaultRecess = RecessConfig{ //nolint:gochecknoglobals // immutable default
	BlockBeforeRecess: defaultBlockBeforeRecess,
	RecessMinutes:     defaultRecessMinutes,
}

// RecessConfig describes the single daily recess.
type RecessConfig struct {
	// BlockBeforeRecess is the last block taught before the recess.
	BlockBeforeRecess int
	// RecessMinutes is added once to every block after BlockBeforeRecess.
	RecessMinutes int
}

// Normalize returns a copy with BlockBeforeRecess clamped into [MinBlock, MaxBlock].
func (r RecessConfig) Normalize() RecessConfig {
	r.BlockBeforeRecess = ClampBlock(r.BlockBeforeRecess)
	return r
}

// Window holds the block range a person teaches on one weekday.
type Window struct {
	PersonID   string
	FirstBlock int
	// LastBlockExclusive is the index of the block right after the last
	// taught block, as produced by MAX(start + count) in the schedule store.
	LastBlockExclusive int
}

// AttendanceWindow is the computed entry/exit pair for a person.
type AttendanceWindow struct {
	PersonID string
	Entry    time.Time
	Exit     time.Time
}

// ClampBlock forces a block index into [MinBlock, MaxBlock].
func ClampBlock(block int) int {
	return max(MinBlock, min(block, MaxBlock))
}

// BlockTime returns the start (or end, when exit is set) of the given block,
// counted from base. Minutes overflow into hours; seconds are dropped.
func BlockTime(base time.Time, block int, recess RecessConfig, blockMinutes int, exit bool) time.Time {
	block = ClampBlock(block)

	offset := (block - 1) * blockMinutes
	if block > recess.BlockBeforeRecess {
		offset += recess.RecessMinutes
	}
	if exit {
		offset += blockMinutes
	}

	y, m, d := base.Date()
	return time.Date(y, m, d, base.Hour(), base.Minute()+offset, 0, 0, base.Location())
}

// Assemble computes attendance windows for every input window, in order.
// Every window is expected to cover at least one block.
func Assemble(base time.Time, recess RecessConfig, windows []Window) []AttendanceWindow {
	out := make([]AttendanceWindow, 0, len(windows))
	for _, w := range windows {
		// LastBlockExclusive points one past the last taught block.
		lastBlock := w.LastBlockExclusive - 1
		out = append(out, AttendanceWindow{
			PersonID: w.PersonID,
			Entry:    BlockTime(base, w.FirstBlock, recess, BlockDuration, false),
			Exit:     BlockTime(base, lastBlock, recess, BlockDuration, true),
		})
	}
	return out
}

// StoreWeekday converts a Go weekday to the schedule store numbering,
// where Monday is 1 and Sunday is 7.
func StoreWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
