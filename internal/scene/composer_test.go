package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundsphere/internal/domain"
	"soundsphere/internal/geometry"
	"soundsphere/internal/viewmode"
)

type stubIcons struct{}

func (stubIcons) Lookup(label string) (string, string) {
	if label == "Chicken, rooster" {
		return "🐔", "Chicken"
	}
	return "🔊", "Sound"
}

func roosterResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Direction: domain.SphericalDirection{Azimuth: 269.65, Elevation: 4.18},
		Classification: []domain.ClassificationEntry{
			{Label: "Chicken, rooster", Score: 0.691},
			{Label: "Fowl", Score: 0.145},
		},
		Filename: "clip.wav",
	}
}

func TestComposeWithoutResultHasReferenceGeometryOnly(t *testing.T) {
	t.Parallel()

	c := NewComposer(stubIcons{}, nil)
	s := c.Compose(domain.ViewModeOrbit, nil)

	assert.Nil(t, s.Marker)
	require.Len(t, s.Lights, 2)
	assert.Equal(t, LightAmbient, s.Lights[0].Kind)
	assert.Equal(t, 0.4, s.Lights[0].Intensity)
	assert.Equal(t, LightPoint, s.Lights[1].Kind)
	require.NotNil(t, s.Lights[1].Position)
	assert.Equal(t, geometry.Vec3{X: 10, Y: 10, Z: 10}, *s.Lights[1].Position)

	require.Len(t, s.Shells, 2)
	for _, shell := range s.Shells {
		assert.Equal(t, geometry.DefaultRadius, shell.Radius)
	}
	assert.False(t, s.Shells[0].Wireframe)
	assert.True(t, s.Shells[1].Wireframe)
}

func TestComposeOrbitShowsAxisLabels(t *testing.T) {
	t.Parallel()

	s := NewComposer(stubIcons{}, nil).Compose(domain.ViewModeOrbit, nil)

	require.Len(t, s.AxisLabels, 3)
	names := []string{s.AxisLabels[0].Name, s.AxisLabels[1].Name, s.AxisLabels[2].Name}
	assert.Equal(t, []string{"East", "Up", "North"}, names)
	assert.Equal(t, "+X (East)", s.AxisLabels[0].Text)
	assert.Equal(t, geometry.Vec3{Z: 4}, s.AxisLabels[2].Position)
}

func TestComposeImmersiveHidesAxisLabelsAndDimsShell(t *testing.T) {
	t.Parallel()

	c := NewComposer(stubIcons{}, nil)
	orbit := c.Compose(domain.ViewModeOrbit, nil)
	immersive := c.Compose(domain.ViewModeImmersive, nil)

	assert.Empty(t, immersive.AxisLabels)
	for i := range immersive.Shells {
		assert.Less(t, immersive.Shells[i].Opacity, orbit.Shells[i].Opacity)
		assert.Equal(t, SideDouble, immersive.Shells[i].Side)
		assert.Equal(t, SideFront, orbit.Shells[i].Side)
	}
}

func TestComposePlacesMarkerOnSphere(t *testing.T) {
	t.Parallel()

	result := roosterResult()
	s := NewComposer(stubIcons{}, nil).Compose(domain.ViewModeOrbit, result)

	require.NotNil(t, s.Marker)
	want := geometry.ToCartesian(269.65, 4.18, geometry.DefaultRadius)
	assert.Equal(t, want, s.Marker.Position)
	assert.InDelta(t, geometry.DefaultRadius, s.Marker.Position.Length(), 1e-9)
	assert.Equal(t, "Chicken, rooster", s.Marker.Label)
	assert.Equal(t, "🐔", s.Marker.Icon)
	assert.Equal(t, "Chicken", s.Marker.IconName)
	assert.Equal(t, 0.691, s.Marker.Confidence)
	assert.Equal(t, "69.1%", s.Marker.ConfidenceText)
	assert.Equal(t, geometry.Vec3{Y: 0.3}, s.Marker.LabelOffset)
	assert.False(t, s.Marker.FacesOrigin)
}

func TestComposeImmersiveMarkerFacesOrigin(t *testing.T) {
	t.Parallel()

	s := NewComposer(stubIcons{}, nil).Compose(domain.ViewModeImmersive, roosterResult())

	require.NotNil(t, s.Marker)
	assert.True(t, s.Marker.FacesOrigin)
	assert.True(t, s.Marker.Billboard)
	assert.Equal(t, geometry.Vec3{Y: -0.3}, s.Marker.LabelOffset)
	assert.Equal(t, 4.0, s.Marker.DistanceFactor)
}

func TestComposeMarkerWithoutClassificationIsUnknown(t *testing.T) {
	t.Parallel()

	s := NewComposer(nil, nil).Compose(domain.ViewModeOrbit, &domain.AnalysisResult{})
	require.NotNil(t, s.Marker)
	assert.Equal(t, "Unknown", s.Marker.Label)
	assert.Equal(t, "Unknown", s.Marker.IconName)
	assert.Zero(t, s.Marker.Confidence)
}

func TestRebuildRigIssuesFreshInstance(t *testing.T) {
	t.Parallel()

	c := NewComposer(stubIcons{}, nil)
	first := c.Rig()
	assert.Equal(t, domain.ViewModeOrbit, first.Key)
	assert.NotEmpty(t, first.ID)

	c.RebuildRig(domain.ViewModeImmersive)
	second := c.Rig()
	assert.Equal(t, domain.ViewModeImmersive, second.Key)
	assert.Equal(t, viewmode.RigFor(domain.ViewModeImmersive), second.Camera)
	assert.NotEqual(t, first.ID, second.ID)

	// Rebuilding for the same mode still yields a new instance.
	c.RebuildRig(domain.ViewModeImmersive)
	assert.NotEqual(t, second.ID, c.Rig().ID)
}

func TestComposeLeavesRigToController(t *testing.T) {
	t.Parallel()

	c := NewComposer(stubIcons{}, nil)
	before := c.Rig()

	s := c.Compose(domain.ViewModeImmersive, nil)
	assert.Equal(t, before.ID, s.Rig.ID)
	assert.Equal(t, domain.ViewModeOrbit, s.Rig.Key)
	assert.True(t, s.RigPending)
	assert.Empty(t, s.AxisLabels)
	assert.Equal(t, before.ID, c.Rig().ID)

	c.RebuildRig(domain.ViewModeImmersive)
	again := c.Compose(domain.ViewModeImmersive, nil)
	assert.Equal(t, domain.ViewModeImmersive, again.Rig.Key)
	assert.False(t, again.RigPending)
	assert.NotEqual(t, before.ID, again.Rig.ID)
}

func TestComposerWithController(t *testing.T) {
	t.Parallel()

	c := NewComposer(stubIcons{}, nil)
	ctrl := viewmode.NewController(c, nil, nil)

	ctrl.Toggle()
	s := c.Compose(ctrl.Mode(), nil)
	assert.Equal(t, domain.ViewModeImmersive, s.Rig.Key)
	assert.False(t, s.RigPending)
	assert.Equal(t, geometry.Origin, s.Rig.Camera.Position)

	ctrl.Reset()
	s = c.Compose(ctrl.Mode(), nil)
	assert.Equal(t, domain.ViewModeOrbit, s.Rig.Key)
	assert.Len(t, s.AxisLabels, 3)
}

func TestPoseAtOrbitBobs(t *testing.T) {
	t.Parallel()

	pos := geometry.ToCartesian(45.2, -12.5, geometry.DefaultRadius)

	rest := PoseAt(domain.ViewModeOrbit, pos, 0)
	assert.Equal(t, geometry.Identity(), rest.Rotation)
	assert.Equal(t, pos, rest.Position)

	peak := PoseAt(domain.ViewModeOrbit, pos, math.Pi/2)
	assert.InDelta(t, 0.1, peak.Rotation.Y, 1e-12)
	assert.Zero(t, peak.Rotation.X)
}

func TestPoseAtImmersiveFacesOrigin(t *testing.T) {
	t.Parallel()

	pos := geometry.ToCartesian(180, 30, geometry.DefaultRadius)
	pose := PoseAt(domain.ViewModeImmersive, pos, 0)

	assert.Equal(t, geometry.EulerOrder, pose.Rotation.Order)
	forward := pose.Rotation.Forward()
	want := geometry.Origin.Sub(pos).Normalize()
	assert.InDelta(t, want.X, forward.X, 1e-9)
	assert.InDelta(t, want.Y, forward.Y, 1e-9)
	assert.InDelta(t, want.Z, forward.Z, 1e-9)
}

func TestFrameWithoutResult(t *testing.T) {
	t.Parallel()

	_, ok := Frame(domain.ViewModeOrbit, nil, 1)
	assert.False(t, ok)

	pose, ok := Frame(domain.ViewModeOrbit, roosterResult(), 0)
	assert.True(t, ok)
	assert.Equal(t, geometry.ToCartesian(269.65, 4.18, geometry.DefaultRadius), pose.Position)
}
