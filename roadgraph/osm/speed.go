// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WalkSpeed is the speed in km/h used for a maxspeed of "walk".
const WalkSpeed = 5

// DefaultLanes is the lane count used when none is given or it cannot be parsed.
const DefaultLanes = 2

// Speeds assigns speed limits to edges, filling in missing values from
// the running mean of the speeds already assigned to the same highway type.
type Speeds struct {
	seen map[string][]float64
}

// NewSpeeds returns a new [Speeds] with no history.
func NewSpeeds() *Speeds {
	return &Speeds{seen: make(map[string][]float64)}
}

// Speed returns the speed limit in km/h for an edge with the given
// properties, rounded to the nearest 10, and records it for its highway type.
func (s *Speeds) Speed(props map[string]any) float64 {
	hw := HighwayType(props)
	sp, ok := ParseSpeed(props["maxspeed"])
	if !ok {
		if prev := s.seen[hw]; len(prev) > 0 {
			sum := 0.0
			for _, p := range prev {
				sum += p
			}
			sp = RoundSpeed(sum / float64(len(prev)))
		} else {
			sp = EstimateSpeed(hw)
		}
	}
	sp = RoundSpeed(sp)
	s.seen[hw] = append(s.seen[hw], sp)
	return sp
}

// HighwayType returns the highway type of the given edge properties,
// using the first one if there are several and "unclassified" if none.
func HighwayType(props map[string]any) string {
	hw, has := props["highway"]
	if !has {
		return "unclassified"
	}
	if l, ok := hw.([]any); ok && len(l) > 0 {
		hw = l[0]
	}
	if s, ok := hw.(string); ok {
		return s
	}
	return fmt.Sprint(hw)
}

// EstimateSpeed returns the typical speed limit in km/h for the given highway type.
func EstimateSpeed(highway string) float64 {
	switch highway {
	case "motorway":
		return 120
	case "trunk", "primary":
		return 90
	case "secondary", "tertiary":
		return 50
	case "residential":
		return 30
	}
	return 40
}

// RoundSpeed rounds the given speed to the nearest 10, with ties to even tens.
func RoundSpeed(speed float64) float64 {
	return math.RoundToEven(speed/10) * 10
}

// ParseSpeed parses a maxspeed value, which may be a number, an integer
// string, "walk", or a list of those (giving the mean of its nonzero values).
// It returns false if no speed could be parsed.
func ParseSpeed(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return math.Trunc(x), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return float64(n), true
		}
		if strings.EqualFold(x, "walk") {
			return WalkSpeed, true
		}
	case []any:
		sum, n := 0.0, 0
		for _, e := range x {
			if sp, ok := ParseSpeed(e); ok && sp != 0 {
				sum += sp
				n++
			}
		}
		if n > 0 {
			return sum / float64(n), true
		}
	}
	return 0, false
}

// ParseLength parses an edge length in meters, which may be a number
// or a numeric string. It returns 0, false for a missing or
// unparsable length.
func ParseLength(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// ParseLanes parses a lanes value, which may be a number, an integer
// string, or a list of those (giving the maximum).
// It returns [DefaultLanes] if no lane count could be parsed.
func ParseLanes(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	case []any:
		best, found := 0, false
		for _, e := range x {
			if e == nil {
				continue
			}
			n := ParseLanes(e)
			if !found || n > best {
				best, found = n, true
			}
		}
		if found {
			return best
		}
	}
	return DefaultLanes
}

// ParseOneWay returns whether a oneway value means the edge is one-way,
// which is only the case for true or a string equal to "true" in any case.
func ParseOneWay(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true")
	}
	return false
}
