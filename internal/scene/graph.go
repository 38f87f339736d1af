package scene

import (
	"soundsphere/internal/domain"
	"soundsphere/internal/geometry"
)

// LightKind distinguishes scene lights.
type LightKind string

const (
	LightAmbient LightKind = "ambient"
	LightPoint   LightKind = "point"
)

// Side selects which faces of a mesh are drawn.
type Side string

const (
	SideFront  Side = "front"
	SideDouble Side = "double"
)

// Light is one light source.
type Light struct {
	Kind      LightKind      `json:"kind"`
	Position  *geometry.Vec3 `json:"position,omitempty"`
	Intensity float64        `json:"intensity"`
}

// Shell is one of the reference spheres drawn around the listening point.
type Shell struct {
	Name      string  `json:"name"`
	Radius    float64 `json:"radius"`
	Segments  int     `json:"segments"`
	Color     string  `json:"color"`
	Opacity   float64 `json:"opacity"`
	Wireframe bool    `json:"wireframe"`
	Side      Side    `json:"side"`
}

// AxisLabel marks a positive world axis.
type AxisLabel struct {
	Axis     string        `json:"axis"`
	Name     string        `json:"name"`
	Text     string        `json:"text"`
	Position geometry.Vec3 `json:"position"`
	FontSize float64       `json:"fontSize"`
	Color    string        `json:"color"`
}

// Marker is the rendered sound source.
type Marker struct {
	Position       geometry.Vec3 `json:"position"`
	Label          string        `json:"label"`
	Icon           string        `json:"icon"`
	IconName       string        `json:"iconName"`
	Confidence     float64       `json:"confidence"`
	ConfidenceText string        `json:"confidenceText"`
	Radius         float64       `json:"radius"`
	RingInner      float64       `json:"ringInner"`
	RingOuter      float64       `json:"ringOuter"`
	Color          string        `json:"color"`
	LabelOffset    geometry.Vec3 `json:"labelOffset"`
	DistanceFactor float64       `json:"distanceFactor"`
	Billboard      bool          `json:"billboard"`
	FacesOrigin    bool          `json:"facesOrigin"`
}

// MarkerPose is the per-frame transform of the marker mesh.
type MarkerPose struct {
	Position geometry.Vec3  `json:"position"`
	Rotation geometry.Euler `json:"rotation"`
}

// Scene is the complete renderable description handed to the web view.
type Scene struct {
	Mode       domain.ViewMode `json:"mode"`
	Lights     []Light         `json:"lights"`
	Shells     []Shell         `json:"shells"`
	AxisLabels []AxisLabel     `json:"axisLabels"`
	Marker     *Marker         `json:"marker,omitempty"`
	Rig        RigInstance     `json:"rig"`
	RigPending bool            `json:"rigPending"`
}
