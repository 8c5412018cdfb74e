package kinetic

// LineSegment is one screen-space line of a wireframe draw.
type LineSegment struct {
	X0, Y0, X1, Y1 float32
	Color          Color
}

// PointSprite is one screen-space point of a point-sprite draw. Size is the
// diameter in pixels.
type PointSprite struct {
	X, Y, Size float32
	Color      Color
}

// Surface is a render target able to accept wireframe and point-sprite draws.
// A frame is Begin, any number of draws, End.
type Surface interface {
	// Resize changes the surface's pixel size.
	Resize(width, height int)
	// Begin clears the surface for a new frame.
	Begin()
	DrawLines(lines []LineSegment, blend BlendMode)
	DrawPoints(points []PointSprite, blend BlendMode)
	// End finishes the frame.
	End()
	// Dispose releases all resources. The surface is unusable afterwards.
	Dispose()
}

// SurfaceFactory acquires a surface of the given size. It returns an error
// wrapping ErrSurfaceUnavailable when no renderable context exists.
type SurfaceFactory func(width, height int) (Surface, error)
