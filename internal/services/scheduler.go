package services

import "time"

// Timer is a handle to a scheduled callback
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already started.
	Stop() bool
}

// Scheduler runs callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ClockScheduler schedules with time.AfterFunc
type ClockScheduler struct{}

// AfterFunc implements Scheduler
func (ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
