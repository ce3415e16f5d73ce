package structs

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

//*******************************************
// transport mode
//*******************************************

type TransportMode byte

const (
	TRAM  TransportMode = 0
	BUS   TransportMode = 1
	TRAIN TransportMode = 2
	METRO TransportMode = 3
)

// Tram and metro stops are modelled with platforms, bus and train stops are not.
func (self TransportMode) HasPlatforms() bool {
	return self == TRAM || self == METRO
}

func (self TransportMode) IsRail() bool {
	return self != BUS
}

func (self TransportMode) String() string {
	switch self {
	case TRAM:
		return "tram"
	case BUS:
		return "bus"
	case TRAIN:
		return "train"
	case METRO:
		return "metro"
	default:
		panic("unknown transport mode")
	}
}
func (self TransportMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *TransportMode) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = TransportModeFromString(typ)
	return err
}
func (self TransportMode) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *TransportMode) UnmarshalYAML(value *yaml.Node) error {
	typ, err := TransportModeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func TransportModeFromString(s string) (TransportMode, error) {
	switch s {
	case "tram":
		return TRAM, nil
	case "bus":
		return BUS, nil
	case "train", "rail":
		return TRAIN, nil
	case "metro", "subway":
		return METRO, nil
	default:
		return BUS, errors.New("unknown transport mode")
	}
}
