package structs

import (
	"errors"
	"fmt"
	"time"
)

//*******************************************
// date
//*******************************************

// Date in the form yyyymmdd.
type Date int32

func DateFromTime(t time.Time) Date {
	return Date(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return 0, errors.New("invalid date: " + s)
		}
	}
	return DateFromTime(t), nil
}

func (self Date) Time() time.Time {
	d := int(self)
	return time.Date(d/10000, time.Month((d/100)%100), d%100, 0, 0, 0, 0, time.UTC)
}
func (self Date) Weekday() time.Weekday {
	return self.Time().Weekday()
}
func (self Date) AddDays(days int) Date {
	return DateFromTime(self.Time().AddDate(0, 0, days))
}
func (self Date) String() string {
	d := int(self)
	return fmt.Sprintf("%04d-%02d-%02d", d/10000, (d/100)%100, d%100)
}

//*******************************************
// calendar
//*******************************************

// Calendar holds the operating days of a service.
// Weekdays is indexed by time.Weekday (Sunday = 0).
type Calendar struct {
	ID        string
	StartDate Date
	EndDate   Date
	Weekdays  [7]bool
	Added     []Date
	Removed   []Date
}

func (self *Calendar) RunsOn(date Date) bool {
	for _, d := range self.Removed {
		if d == date {
			return false
		}
	}
	for _, d := range self.Added {
		if d == date {
			return true
		}
	}
	if date < self.StartDate || date > self.EndDate {
		return false
	}
	return self.Weekdays[date.Weekday()]
}
