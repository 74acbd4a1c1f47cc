package settings

import "fmt"

// DataType selects the distribution of generated arrays
type DataType string

const (
	DataRandom       DataType = "random"
	DataSorted       DataType = "sorted"
	DataReverse      DataType = "reverse"
	DataNearlySorted DataType = "nearly-sorted"
)

// GraphType selects the topology of generated graphs
type GraphType string

const (
	GraphComplete GraphType = "complete"
	GraphSparse   GraphType = "sparse"
	GraphChain    GraphType = "chain"
	GraphTree     GraphType = "tree"
)

// Bounds applied by Clamp
const (
	MinArraySize = 5
	MaxArraySize = 50
	MinSpeed     = 50
	MaxSpeed     = 2000

	DefaultArraySize = 20
	DefaultSpeed     = 300
)

// DataTypes lists the supported data distributions in display order
var DataTypes = []DataType{DataRandom, DataSorted, DataReverse, DataNearlySorted}

// GraphTypes lists the supported graph topologies in display order
var GraphTypes = []GraphType{GraphComplete, GraphSparse, GraphChain, GraphTree}

// Settings is the value every runner derives its working data from.
// Speed is the pause between visible steps in milliseconds.
type Settings struct {
	ArraySize     int       `yaml:"array_size" json:"array_size" toml:"array_size"`
	Speed         int       `yaml:"speed" json:"speed" toml:"speed"`
	DataType      DataType  `yaml:"data_type" json:"data_type" toml:"data_type"`
	GraphType     GraphType `yaml:"graph_type" json:"graph_type" toml:"graph_type"`
	ShowStepCount bool      `yaml:"show_step_count" json:"show_step_count" toml:"show_step_count"`
}

// Default returns the startup settings
func Default() Settings {
	return Settings{
		ArraySize:     DefaultArraySize,
		Speed:         DefaultSpeed,
		DataType:      DataRandom,
		GraphType:     GraphSparse,
		ShowStepCount: true,
	}
}

// Clamp bounds numeric fields and replaces unknown enum values with defaults.
// Runners only ever see clamped settings.
func Clamp(s Settings) Settings {
	s.ArraySize = clampInt(s.ArraySize, MinArraySize, MaxArraySize)
	s.Speed = clampInt(s.Speed, MinSpeed, MaxSpeed)
	if !s.DataType.Valid() {
		s.DataType = DataRandom
	}
	if !s.GraphType.Valid() {
		s.GraphType = GraphSparse
	}
	return s
}

// Valid reports whether d is a known distribution
func (d DataType) Valid() bool {
	for _, v := range DataTypes {
		if v == d {
			return true
		}
	}
	return false
}

// Next cycles to the following distribution
func (d DataType) Next() DataType {
	for i, v := range DataTypes {
		if v == d {
			return DataTypes[(i+1)%len(DataTypes)]
		}
	}
	return DataRandom
}

// Valid reports whether g is a known topology
func (g GraphType) Valid() bool {
	for _, v := range GraphTypes {
		if v == g {
			return true
		}
	}
	return false
}

// Next cycles to the following topology
func (g GraphType) Next() GraphType {
	for i, v := range GraphTypes {
		if v == g {
			return GraphTypes[(i+1)%len(GraphTypes)]
		}
	}
	return GraphSparse
}

// ParseDataType converts a user supplied string into a DataType
func ParseDataType(s string) (DataType, error) {
	d := DataType(s)
	if !d.Valid() {
		return "", fmt.Errorf("invalid data type: %s (must be one of: random, sorted, reverse, nearly-sorted)", s)
	}
	return d, nil
}

// ParseGraphType converts a user supplied string into a GraphType
func ParseGraphType(s string) (GraphType, error) {
	g := GraphType(s)
	if !g.Valid() {
		return "", fmt.Errorf("invalid graph type: %s (must be one of: complete, sparse, chain, tree)", s)
	}
	return g, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
