// Package render draws simulation frames as images for display or export.
// It is a consumer of the simulation core's per-tick snapshots and holds no
// simulation state of its own.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/tokenthinker/omnisim/simulation"
)

const (
	defaultSize  = 640       // pixels per side
	defaultScale = 640 / 0.8 // pixels per meter, fitting a 0.8m viewport

	// arrows below these magnitudes are visual noise and are skipped
	minWheelVelocity = 0.1
	minDriveSpeed    = 0.01

	// wheel arrows are normalized against the fastest wheel speed the
	// default platform can command
	maxWheelVelocity = 6.0
)

var (
	bodyFill    = color.RGBA{70, 100, 220, 128}
	bodyEdge    = color.RGBA{0, 0, 0, 255}
	wheelFill   = color.RGBA{255, 255, 255, 255}
	arrowColor  = color.RGBA{0, 0, 255, 255}
	driveColor  = color.RGBA{255, 255, 255, 255}
	textColor   = color.RGBA{20, 20, 20, 255}
	markerColor = color.RGBA{0, 0, 200, 255}
)

// Renderer converts frames into images. The platform is kept centered in the
// viewport; the pose's translation moves the world under it.
type Renderer struct {
	size  int
	scale float64
}

// NewRenderer returns a renderer with the default viewport.
func NewRenderer() *Renderer {
	return &Renderer{size: defaultSize, scale: defaultScale}
}

// Render draws one frame.
func (r *Renderer) Render(frame simulation.Frame) image.Image {
	dc := gg.NewContext(r.size, r.size)
	dc.SetColor(color.White)
	dc.Clear()

	center := float64(r.size) / 2

	// canvas coordinates for a world point relative to the platform center
	toCanvas := func(wx, wy float64) (float64, float64) {
		return center + (wx-frame.Pose.X)*r.scale, center - (wy-frame.Pose.Y)*r.scale
	}

	// platform body: a circle through the wheel centers
	bodyRadius := frame.CenterDistance
	dc.DrawCircle(center, center, bodyRadius*r.scale)
	dc.SetColor(bodyFill)
	dc.FillPreserve()
	dc.SetColor(bodyEdge)
	dc.SetLineWidth(2)
	dc.Stroke()

	// forward-heading marker on the rim
	mx, my := toCanvas(
		frame.Pose.X+bodyRadius*math.Cos(frame.Pose.Heading),
		frame.Pose.Y+bodyRadius*math.Sin(frame.Pose.Heading),
	)
	dc.DrawCircle(mx, my, 5)
	dc.SetColor(markerColor)
	dc.Fill()

	r.drawDriveArrow(dc, frame, center)

	for i, pos := range frame.WheelPositions {
		cx, cy := toCanvas(pos.X, pos.Y)

		// wheels sit tangent to the body circle
		wheelAngle := math.Atan2(pos.Y-frame.Pose.Y, pos.X-frame.Pose.X)
		dc.Push()
		dc.RotateAbout(-wheelAngle-math.Pi/2, cx, cy)
		w := frame.WheelRadius * r.scale
		h := frame.WheelWidth * r.scale
		dc.DrawRectangle(cx-w/2, cy-h/2, w, h)
		dc.SetColor(wheelFill)
		dc.FillPreserve()
		dc.SetColor(bodyEdge)
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.Pop()

		r.drawWheelArrow(dc, frame, cx, cy, wheelAngle, frame.WheelVelocities[i])

		dc.SetColor(textColor)
		dc.DrawStringAnchored(fmt.Sprintf("%d", i), cx, cy, 0.5, 0.5)
	}

	r.drawInfoBox(dc, frame)
	return dc.Image()
}

// drawDriveArrow shows the commanded linear velocity from the platform
// center. Near-zero speeds are skipped.
func (r *Renderer) drawDriveArrow(dc *gg.Context, frame simulation.Frame, center float64) {
	speed := math.Hypot(frame.Velocity.VX, frame.Velocity.VY)
	if speed <= minDriveSpeed {
		return
	}
	maxLen := frame.CenterDistance * 0.9 * r.scale
	length := math.Min(speed, 1) * maxLen
	angle := math.Atan2(frame.Velocity.VY, frame.Velocity.VX)
	drawArrow(dc, center, center,
		center+length*math.Cos(angle), center-length*math.Sin(angle),
		driveColor, 4)
}

// drawWheelArrow shows a wheel's angular velocity as an arrow along its
// rolling direction, scaled against the platform's top wheel speed and
// flipped for negative velocities.
func (r *Renderer) drawWheelArrow(dc *gg.Context, frame simulation.Frame, cx, cy, wheelAngle, velocity float64) {
	if math.Abs(velocity) < minWheelVelocity {
		return
	}
	maxLen := frame.WheelRadius * 0.3 * r.scale
	length := math.Min(math.Abs(velocity)/maxWheelVelocity, 1) * maxLen

	// rolling direction is tangent to the body circle
	tangent := wheelAngle + math.Pi/2
	if velocity > 0 {
		tangent += math.Pi
	}
	drawArrow(dc, cx, cy,
		cx+length*math.Cos(tangent), cy-length*math.Sin(tangent),
		arrowColor, 2)
}

func drawArrow(dc *gg.Context, x1, y1, x2, y2 float64, c color.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()

	angle := math.Atan2(y2-y1, x2-x1)
	const headLen = 8.0
	for _, side := range []float64{-1, 1} {
		a := angle + math.Pi + side*math.Pi/6
		dc.DrawLine(x2, y2, x2+headLen*math.Cos(a), y2+headLen*math.Sin(a))
		dc.Stroke()
	}
}

// drawInfoBox prints the platform's current command and wheel velocities in
// the top-left corner.
func (r *Renderer) drawInfoBox(dc *gg.Context, frame simulation.Frame) {
	speed := math.Hypot(frame.Velocity.VX, frame.Velocity.VY)
	wheelStrs := make([]string, len(frame.WheelVelocities))
	for i, v := range frame.WheelVelocities {
		wheelStrs[i] = fmt.Sprintf("%.1f", v)
	}
	lines := []string{
		fmt.Sprintf("%d-wheel platform", frame.WheelCount),
		fmt.Sprintf("heading (rad) = %.2f", frame.Pose.Heading),
		fmt.Sprintf("speed (m/s) = %.1f", speed),
		fmt.Sprintf("wheel w (rad/s) = [%s]", strings.Join(wheelStrs, ", ")),
	}

	dc.SetColor(textColor)
	for i, line := range lines {
		dc.DrawString(line, 10, 20+float64(i)*16)
	}
}

// SideBySide composites frames from independent simulations into one image,
// left to right.
func SideBySide(renderer *Renderer, frames ...simulation.Frame) image.Image {
	if len(frames) == 1 {
		return renderer.Render(frames[0])
	}
	dc := gg.NewContext(renderer.size*len(frames), renderer.size)
	dc.SetColor(color.White)
	dc.Clear()
	for i, frame := range frames {
		dc.DrawImage(renderer.Render(frame), i*renderer.size, 0)
	}
	return dc.Image()
}
