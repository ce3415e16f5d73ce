package parser

import (
	"fmt"

	"github.com/ttpr0/go-journeys/graph"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
)

//*******************************************
// gtfs calendar dates
//*******************************************

const (
	SERVICE_ADDED   = 1
	SERVICE_REMOVED = 2
)

// Reads a GTFS calendar_dates.txt file.
func ReadCalendarDates(path string) (List[CalendarDate], error) {
	rows, err := ReadCSVFromFile[CalendarDate](path, ',')
	if err != nil {
		return nil, err
	}
	dates := NewList[CalendarDate](100)
	for row := range rows {
		if row.ServiceID == "" || row.Date == "" {
			continue
		}
		dates.Add(row)
	}
	return dates, nil
}

func ApplyCalendarDates(builder *graph.NetworkBuilder, dates List[CalendarDate]) error {
	for _, d := range dates {
		date, err := structs.ParseDate(d.Date)
		if err != nil {
			return err
		}
		switch d.ExceptionType {
		case SERVICE_ADDED:
			err = builder.AddCalendarException(d.ServiceID, date, true)
		case SERVICE_REMOVED:
			err = builder.AddCalendarException(d.ServiceID, date, false)
		default:
			err = fmt.Errorf("unknown exception type %v for %q", d.ExceptionType, d.ServiceID)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
