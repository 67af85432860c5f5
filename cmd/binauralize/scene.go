package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Keyframe is a source direction at a point in time.
type Keyframe struct {
	Time      float64 `yaml:"time"`      // seconds from the start
	Elevation float64 `yaml:"elevation"` // degrees, -90..90
	Azimuth   float64 `yaml:"azimuth"`   // degrees
}

// Scene is a keyframed source trajectory loaded from YAML:
//
//	loop: true
//	keyframes:
//	  - {time: 0, elevation: 0, azimuth: -90}
//	  - {time: 4, elevation: 30, azimuth: 90}
type Scene struct {
	Loop      bool       `yaml:"loop"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

var errEmptyScene = errors.New("scene: at least one keyframe is required")

// StaticScene holds a fixed direction.
func StaticScene(elevation, azimuth float64) *Scene {
	return &Scene{Keyframes: []Keyframe{{Elevation: elevation, Azimuth: azimuth}}}
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParseScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a scene, validates it and unwraps the keyframe
// azimuths so consecutive keyframes take the shorter way round.
func ParseScene(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	s.unwrap()

	return &s, nil
}

func (s *Scene) validate() error {
	if len(s.Keyframes) == 0 {
		return errEmptyScene
	}
	for i, k := range s.Keyframes {
		for _, v := range []float64{k.Time, k.Elevation, k.Azimuth} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("scene: keyframe %d has a non-finite value", i)
			}
		}
		if k.Time < 0 {
			return fmt.Errorf("scene: keyframe %d has negative time %v", i, k.Time)
		}
		if k.Elevation < -90 || k.Elevation > 90 {
			return fmt.Errorf("scene: keyframe %d elevation %v out of [-90, 90]", i, k.Elevation)
		}
		if i > 0 && k.Time <= s.Keyframes[i-1].Time {
			return fmt.Errorf("scene: keyframe %d is not later than keyframe %d", i, i-1)
		}
	}
	return nil
}

func (s *Scene) unwrap() {
	for i := 1; i < len(s.Keyframes); i++ {
		prev := s.Keyframes[i-1].Azimuth
		a := s.Keyframes[i].Azimuth
		s.Keyframes[i].Azimuth = a + 360*math.Round((prev-a)/360)
	}
}

// Duration returns the time of the last keyframe.
func (s *Scene) Duration() float64 {
	return s.Keyframes[len(s.Keyframes)-1].Time
}

// At returns the interpolated direction at t seconds. Outside the keyframe
// range the nearest keyframe holds, unless the scene loops.
func (s *Scene) At(t float64) (elevation, azimuth float64) {
	keys := s.Keyframes
	if s.Loop && s.Duration() > 0 {
		t = math.Mod(t, s.Duration())
	}

	if t <= keys[0].Time {
		return keys[0].Elevation, keys[0].Azimuth
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Elevation, last.Azimuth
	}

	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	a, b := keys[i-1], keys[i]
	f := (t - a.Time) / (b.Time - a.Time)

	return a.Elevation + f*(b.Elevation-a.Elevation), a.Azimuth + f*(b.Azimuth-a.Azimuth)
}
