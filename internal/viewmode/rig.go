package viewmode

import (
	"soundsphere/internal/domain"
	"soundsphere/internal/geometry"
)

// ControlAction is what a pointer button or touch gesture drives on the camera.
type ControlAction string

const (
	ActionRotate   ControlAction = "rotate"
	ActionDolly    ControlAction = "dolly"
	ActionPan      ControlAction = "pan"
	ActionDollyPan ControlAction = "dolly_pan"
)

const (
	// FieldOfView is the vertical camera FOV in degrees for both modes.
	FieldOfView = 60.0

	OrbitMinDistance = 2.0
	OrbitMaxDistance = 10.0

	// ImmersiveDistance pins the camera to the sphere center.
	ImmersiveDistance = 0.01
)

// OrbitCameraPosition is the external vantage point used in orbit mode.
var OrbitCameraPosition = geometry.Vec3{X: 5, Y: 2, Z: 5}

// PointerBindings maps mouse buttons to camera actions.
type PointerBindings struct {
	Left   ControlAction `json:"left"`
	Middle ControlAction `json:"middle"`
	Right  ControlAction `json:"right"`
}

// TouchBindings maps touch gestures to camera actions.
type TouchBindings struct {
	One ControlAction `json:"one"`
	Two ControlAction `json:"two"`
}

// CameraRig describes the camera and its controls for one view mode.
type CameraRig struct {
	Mode           domain.ViewMode `json:"mode"`
	Position       geometry.Vec3   `json:"position"`
	Target         geometry.Vec3   `json:"target"`
	FieldOfView    float64         `json:"fov"`
	EnableZoom     bool            `json:"enableZoom"`
	EnablePan      bool            `json:"enablePan"`
	EnableRotate   bool            `json:"enableRotate"`
	MinDistance    float64         `json:"minDistance"`
	MaxDistance    float64         `json:"maxDistance"`
	Pointer        PointerBindings `json:"pointer"`
	Touch          TouchBindings   `json:"touch"`
	ShowAxisLabels bool            `json:"showAxisLabels"`
}

// RigFor derives the camera rig for mode. Unknown modes get the orbit rig.
func RigFor(mode domain.ViewMode) CameraRig {
	if mode == domain.ViewModeImmersive {
		return CameraRig{
			Mode:         domain.ViewModeImmersive,
			Position:     geometry.Origin,
			Target:       geometry.Origin,
			FieldOfView:  FieldOfView,
			EnableZoom:   false,
			EnablePan:    false,
			EnableRotate: true,
			MinDistance:  ImmersiveDistance,
			MaxDistance:  ImmersiveDistance,
			Pointer:      PointerBindings{Left: ActionRotate, Middle: ActionRotate, Right: ActionRotate},
			Touch:        TouchBindings{One: ActionRotate, Two: ActionRotate},
		}
	}

	return CameraRig{
		Mode:           domain.ViewModeOrbit,
		Position:       OrbitCameraPosition,
		Target:         geometry.Origin,
		FieldOfView:    FieldOfView,
		EnableZoom:     true,
		EnablePan:      false,
		EnableRotate:   true,
		MinDistance:    OrbitMinDistance,
		MaxDistance:    OrbitMaxDistance,
		Pointer:        PointerBindings{Left: ActionRotate, Middle: ActionDolly, Right: ActionPan},
		Touch:          TouchBindings{One: ActionRotate, Two: ActionDollyPan},
		ShowAxisLabels: true,
	}
}

// ClampDistance applies the rig's zoom bounds to a requested camera distance.
func (r CameraRig) ClampDistance(distance float64) float64 {
	if distance < r.MinDistance {
		return r.MinDistance
	}
	if distance > r.MaxDistance {
		return r.MaxDistance
	}
	return distance
}
