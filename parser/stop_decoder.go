package parser

import (
	. "github.com/ttpr0/go-journeys/util"
)

type StopDecoder struct {
}

var stop_railway_types = Dict[string, bool]{"station": true, "halt": true, "tram_stop": true}
var stop_pt_types = Dict[string, bool]{"stop_position": true, "platform": true, "station": true}

func (self *StopDecoder) IsStop(tags Dict[string, string]) bool {
	if tags.Get("highway") == "bus_stop" {
		return true
	}
	if stop_railway_types.ContainsKey(tags.Get("railway")) {
		return true
	}
	if stop_pt_types.ContainsKey(tags.Get("public_transport")) {
		return true
	}
	return false
}
