package structs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//*******************************************
// journey clock
//*******************************************

// Clock counts minutes since the start of the service day.
// Values past 24:00 are kept as is (e.g. 25:30).
type Clock int32

const MINUTES_PER_DAY = 1440

func NewClock(hour, minute int32) Clock {
	return Clock(hour*60 + minute)
}

func (self Clock) Hour() int32 {
	return int32(self) / 60
}
func (self Clock) Minute() int32 {
	return int32(self) % 60
}
func (self Clock) Add(minutes int32) Clock {
	return self + Clock(minutes)
}
func (self Clock) Sub(other Clock) int32 {
	return int32(self - other)
}
func (self Clock) String() string {
	return fmt.Sprintf("%02d:%02d", self.Hour(), self.Minute())
}

func (self Clock) MarshalYAML() (any, error) {
	return self.String(), nil
}

func ParseClock(s string) (Clock, error) {
	tokens := strings.Split(strings.TrimSpace(s), ":")
	if len(tokens) < 2 || len(tokens) > 3 {
		return 0, errors.New("invalid clock: " + s)
	}
	hour, err := strconv.Atoi(tokens[0])
	if err != nil || hour < 0 {
		return 0, errors.New("invalid clock hour: " + s)
	}
	minute, err := strconv.Atoi(tokens[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, errors.New("invalid clock minute: " + s)
	}
	return NewClock(int32(hour), int32(minute)), nil
}
