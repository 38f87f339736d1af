// Package scene builds the scene graph for the sphere viewer.
package scene

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"soundsphere/internal/domain"
	"soundsphere/internal/geometry"
	"soundsphere/internal/logger"
	"soundsphere/internal/ports"
	"soundsphere/internal/viewmode"
)

const (
	shellColor   = "#8b5cf6"
	axisColor    = "#10b981"
	markerColor  = "#06d6a0"
	axisDistance = 4.0
	axisFontSize = 0.3

	markerRadius    = 0.15
	markerRingInner = 0.2
	markerRingOuter = 0.3
	labelLift       = 0.3

	// bobAmplitude is the peak idle yaw of the marker in radians.
	bobAmplitude = 0.1
)

// RigInstance is one constructed camera rig. A new ID is issued on every rebuild.
type RigInstance struct {
	ID      string             `json:"id"`
	Key     domain.ViewMode    `json:"key"`
	Camera  viewmode.CameraRig `json:"camera"`
	BuiltAt time.Time          `json:"builtAt"`
}

// Composer places reference geometry, the marker and the camera rig.
type Composer struct {
	icons ports.IconLookup
	log   logger.Logger
	now   func() time.Time

	mu  sync.Mutex
	rig RigInstance
}

func NewComposer(icons ports.IconLookup, log logger.Logger) *Composer {
	c := &Composer{
		icons: icons,
		log:   logger.OrNop(log),
		now:   time.Now,
	}
	c.rig = c.buildRig(domain.ViewModeOrbit)
	return c
}

// RebuildRig discards the current rig and constructs a fresh one for mode.
func (c *Composer) RebuildRig(mode domain.ViewMode) {
	next := c.buildRig(mode)

	c.mu.Lock()
	previous := c.rig
	c.rig = next
	c.mu.Unlock()

	c.log.Debug("camera rig replaced", map[string]interface{}{
		"previous": previous.ID,
		"rig":      next.ID,
		"mode":     string(mode),
	})
}

// Rig returns the current rig instance.
func (c *Composer) Rig() RigInstance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rig
}

func (c *Composer) buildRig(mode domain.ViewMode) RigInstance {
	return RigInstance{
		ID:      uuid.NewString(),
		Key:     mode,
		Camera:  viewmode.RigFor(mode),
		BuiltAt: c.now(),
	}
}

// Compose builds the scene for mode. result may be nil, in which case only
// the reference geometry is present. Compose never rebuilds the rig; that is
// left to the view-mode controller. While a rebuild for mode is still in
// flight the scene carries the previous rig with RigPending set.
func (c *Composer) Compose(mode domain.ViewMode, result *domain.AnalysisResult) Scene {
	if mode != domain.ViewModeImmersive {
		mode = domain.ViewModeOrbit
	}

	rig := c.Rig()
	s := Scene{
		Mode:       mode,
		Lights:     lights(),
		Shells:     shells(mode),
		Rig:        rig,
		RigPending: rig.Key != mode,
	}
	if viewmode.RigFor(mode).ShowAxisLabels {
		s.AxisLabels = axisLabels()
	}
	if result != nil {
		s.Marker = c.marker(mode, *result)
	}
	return s
}

func lights() []Light {
	pointPos := geometry.Vec3{X: 10, Y: 10, Z: 10}
	return []Light{
		{Kind: LightAmbient, Intensity: 0.4},
		{Kind: LightPoint, Position: &pointPos, Intensity: 1},
	}
}

func shells(mode domain.ViewMode) []Shell {
	surface := Shell{
		Name:     "surface",
		Radius:   geometry.DefaultRadius,
		Segments: 64,
		Color:    shellColor,
		Opacity:  0.1,
		Side:     SideFront,
	}
	wire := Shell{
		Name:      "wireframe",
		Radius:    geometry.DefaultRadius,
		Segments:  32,
		Color:     shellColor,
		Opacity:   0.2,
		Wireframe: true,
		Side:      SideFront,
	}

	// The camera sits inside the shell in immersive mode.
	if mode == domain.ViewModeImmersive {
		surface.Opacity, surface.Side = 0.05, SideDouble
		wire.Opacity, wire.Side = 0.1, SideDouble
	}
	return []Shell{surface, wire}
}

func axisLabels() []AxisLabel {
	return []AxisLabel{
		{Axis: "+X", Name: "East", Text: "+X (East)", Position: geometry.Vec3{X: axisDistance}, FontSize: axisFontSize, Color: axisColor},
		{Axis: "+Y", Name: "Up", Text: "+Y (Up)", Position: geometry.Vec3{Y: axisDistance}, FontSize: axisFontSize, Color: axisColor},
		{Axis: "+Z", Name: "North", Text: "+Z (North)", Position: geometry.Vec3{Z: axisDistance}, FontSize: axisFontSize, Color: axisColor},
	}
}

func (c *Composer) marker(mode domain.ViewMode, result domain.AnalysisResult) *Marker {
	primary := result.Primary()
	icon, name := "", primary.Label
	if c.icons != nil {
		icon, name = c.icons.Lookup(primary.Label)
	}

	m := &Marker{
		Position:       geometry.ToCartesian(result.Direction.Azimuth, result.Direction.Elevation, geometry.DefaultRadius),
		Label:          primary.Label,
		Icon:           icon,
		IconName:       name,
		Confidence:     primary.Score,
		ConfidenceText: fmt.Sprintf("%.1f%%", primary.Score*100),
		Radius:         markerRadius,
		RingInner:      markerRingInner,
		RingOuter:      markerRingOuter,
		Color:          markerColor,
		LabelOffset:    geometry.Vec3{Y: labelLift},
		DistanceFactor: 8,
	}
	if mode == domain.ViewModeImmersive {
		m.LabelOffset = geometry.Vec3{Y: -labelLift}
		m.DistanceFactor = 4
		m.Billboard = true
		m.FacesOrigin = true
	}
	return m
}

// PoseAt returns the marker transform at elapsed seconds since the render
// loop started. Both modes apply the idle bob; immersive additionally turns
// the marker toward the origin.
func PoseAt(mode domain.ViewMode, position geometry.Vec3, elapsed float64) MarkerPose {
	bob := math.Sin(elapsed) * bobAmplitude

	pose := MarkerPose{Position: position, Rotation: geometry.Identity()}
	if mode == domain.ViewModeImmersive {
		pose.Rotation = geometry.FacingRotation(position, geometry.Origin)
	}
	pose.Rotation.Y += bob
	return pose
}

// Frame computes the marker pose for the current frame, or false when no
// result is loaded.
func Frame(mode domain.ViewMode, result *domain.AnalysisResult, elapsed float64) (MarkerPose, bool) {
	if result == nil {
		return MarkerPose{}, false
	}
	position := geometry.ToCartesian(result.Direction.Azimuth, result.Direction.Elevation, geometry.DefaultRadius)
	return PoseAt(mode, position, elapsed), true
}
