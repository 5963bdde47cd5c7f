package settings

import (
	"fmt"
	"os"
	"sync"

	"github.com/memmaker/voxelcull/engine/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Values struct {
	OcclusionCulling bool    `yaml:"occlusion_culling"`
	ViewDistance     int32   `yaml:"view_distance"`
	FieldOfView      float32 `yaml:"field_of_view"`
}

func DefaultValues() Values {
	return Values{
		OcclusionCulling: true,
		ViewDistance:     256,
		FieldOfView:      70,
	}
}

// Settings is the process wide client configuration. Setters notify the registered
// watchers synchronously, after the lock is released, and only when the value changed.
type Settings struct {
	mu                   sync.Mutex
	values               Values
	occlusionWatchers    watcherList[bool]
	viewDistanceWatchers watcherList[int32]
	fieldOfViewWatchers  watcherList[float32]
}

func New(values Values) *Settings {
	return &Settings{values: values}
}

func Default() *Settings {
	return New(DefaultValues())
}

// Load reads a YAML settings file. Keys missing from the file keep their defaults.
func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading settings")
	}
	values, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "settings file %s", path)
	}
	util.LogSettingsInfo(fmt.Sprintf("[Settings] Loaded %s: occlusion culling %v, view distance %d, fov %.1f", path, values.OcclusionCulling, values.ViewDistance, values.FieldOfView))
	return New(values), nil
}

func Parse(raw []byte) (Values, error) {
	values := DefaultValues()
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return values, errors.Wrap(err, "parsing yaml")
	}
	if values.ViewDistance <= 0 {
		return values, errors.Errorf("view_distance must be positive, got %d", values.ViewDistance)
	}
	if values.FieldOfView <= 0 || values.FieldOfView >= 180 {
		return values, errors.Errorf("field_of_view must be between 0 and 180 degrees, got %.1f", values.FieldOfView)
	}
	return values, nil
}

func (s *Settings) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

func (s *Settings) OcclusionCulling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.OcclusionCulling
}

func (s *Settings) ViewDistance() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.ViewDistance
}

func (s *Settings) FieldOfView() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.FieldOfView
}

func (s *Settings) SetOcclusionCulling(on bool) {
	s.mu.Lock()
	if s.values.OcclusionCulling == on {
		s.mu.Unlock()
		return
	}
	s.values.OcclusionCulling = on
	fns := s.occlusionWatchers.snapshot()
	s.mu.Unlock()

	util.LogSettingsInfo(fmt.Sprintf("[Settings] occlusion_culling = %v", on))
	for _, fn := range fns {
		fn(on)
	}
}

func (s *Settings) SetViewDistance(viewDistance int32) {
	s.mu.Lock()
	if s.values.ViewDistance == viewDistance || viewDistance <= 0 {
		s.mu.Unlock()
		return
	}
	s.values.ViewDistance = viewDistance
	fns := s.viewDistanceWatchers.snapshot()
	s.mu.Unlock()

	util.LogSettingsInfo(fmt.Sprintf("[Settings] view_distance = %d", viewDistance))
	for _, fn := range fns {
		fn(viewDistance)
	}
}

// SetFieldOfView ignores values outside of (0, 180) degrees.
func (s *Settings) SetFieldOfView(fov float32) {
	s.mu.Lock()
	if s.values.FieldOfView == fov || fov <= 0 || fov >= 180 {
		s.mu.Unlock()
		return
	}
	s.values.FieldOfView = fov
	fns := s.fieldOfViewWatchers.snapshot()
	s.mu.Unlock()

	util.LogSettingsInfo(fmt.Sprintf("[Settings] field_of_view = %.1f", fov))
	for _, fn := range fns {
		fn(fov)
	}
}

// WatchOcclusionCulling registers fn for changes of the occlusion culling toggle.
// Calling the returned func removes the watcher again.
func (s *Settings) WatchOcclusionCulling(fn func(on bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.occlusionWatchers.add(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.occlusionWatchers.remove(id)
	}
}

func (s *Settings) WatchViewDistance(fn func(viewDistance int32)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.viewDistanceWatchers.add(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.viewDistanceWatchers.remove(id)
	}
}

func (s *Settings) WatchFieldOfView(fn func(fov float32)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.fieldOfViewWatchers.add(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fieldOfViewWatchers.remove(id)
	}
}

func (s *Settings) WatcherCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.occlusionWatchers.entries) + len(s.viewDistanceWatchers.entries) + len(s.fieldOfViewWatchers.entries)
}
