package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ttpr0/go-journeys/structs"
)

//*******************************************
// utility methods
//*******************************************

func _ParseWeekday(day string) (time.Weekday, error) {
	switch strings.ToLower(day) {
	case "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	case "tue", "tuesday":
		return time.Tuesday, nil
	case "wed", "wednesday":
		return time.Wednesday, nil
	case "thu", "thursday":
		return time.Thursday, nil
	case "fri", "friday":
		return time.Friday, nil
	case "sat", "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, errors.New("unknown weekday: " + day)
}

func _ParseCalendar(entry CalendarEntry) (structs.Calendar, error) {
	cal := structs.Calendar{ID: entry.ID}
	var err error
	if entry.Start != "" {
		if cal.StartDate, err = structs.ParseDate(entry.Start); err != nil {
			return cal, err
		}
	}
	if entry.End != "" {
		if cal.EndDate, err = structs.ParseDate(entry.End); err != nil {
			return cal, err
		}
	}
	for _, day := range entry.Days {
		if day == "daily" {
			cal.Weekdays = [7]bool{true, true, true, true, true, true, true}
			continue
		}
		wd, err := _ParseWeekday(day)
		if err != nil {
			return cal, err
		}
		cal.Weekdays[wd] = true
	}
	for _, d := range entry.Added {
		date, err := structs.ParseDate(d)
		if err != nil {
			return cal, err
		}
		cal.Added = append(cal.Added, date)
	}
	for _, d := range entry.Removed {
		date, err := structs.ParseDate(d)
		if err != nil {
			return cal, err
		}
		cal.Removed = append(cal.Removed, date)
	}
	return cal, nil
}

func _ParseCall(entry CallEntry) (structs.Clock, structs.Clock, error) {
	if entry.Time != "" {
		t, err := structs.ParseClock(entry.Time)
		return t, t, err
	}
	if entry.Arr == "" && entry.Dep == "" {
		return 0, 0, fmt.Errorf("call at %q has no time", entry.Station)
	}
	arr_s, dep_s := entry.Arr, entry.Dep
	if arr_s == "" {
		arr_s = dep_s
	}
	if dep_s == "" {
		dep_s = arr_s
	}
	arr, err := structs.ParseClock(arr_s)
	if err != nil {
		return 0, 0, err
	}
	dep, err := structs.ParseClock(dep_s)
	return arr, dep, err
}
