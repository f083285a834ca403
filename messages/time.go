package messages

import "time"

// Timestamp is a wall-clock instant as seconds and nanoseconds since the
// Unix epoch.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

// TimestampOf converts t to a Timestamp.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanos: int64(t.Nanosecond())}
}

// Time converts the timestamp to a UTC time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Seconds, t.Nanos).UTC()
}

// Compare orders timestamps by seconds, then nanos.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.Seconds < other.Seconds:
		return -1
	case t.Seconds > other.Seconds:
		return 1
	case t.Nanos < other.Nanos:
		return -1
	case t.Nanos > other.Nanos:
		return 1
	default:
		return 0
	}
}

// Between returns the wall-clock delta from start to end. Negative if end
// precedes start.
func Between(start, end Timestamp) time.Duration {
	return end.Time().Sub(start.Time())
}

// Duration is an elapsed time as seconds and nanoseconds.
type Duration struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

// DurationOf converts d to a Duration.
func DurationOf(d time.Duration) Duration {
	return Duration{Seconds: int64(d / time.Second), Nanos: int64(d % time.Second)}
}

func (d Duration) ToDuration() time.Duration {
	return time.Duration(d.Seconds)*time.Second + time.Duration(d.Nanos)
}
