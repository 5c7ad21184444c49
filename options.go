package gifkit

// DocumentOption configures a Document during creation.
// Use functional options to customize frame metadata and the header.
//
// Example:
//
//	// Defaults: no delay, unspecified disposal, play once
//	doc, err := gifkit.Create("out.gif", 640, 480)
//
//	// 10 frames per second, loop forever
//	doc, err := gifkit.Create("out.gif", 640, 480,
//	    gifkit.WithDelay(10), gifkit.WithLoopCount(0))
type DocumentOption func(*documentOptions)

// documentOptions holds optional configuration for Document creation.
type documentOptions struct {
	delay            uint16
	loopCount        int
	background       uint8
	transparent      bool
	transparentIndex uint8
	disposal         Disposal
	depthTest        bool
}

// defaultOptions returns the default document options.
func defaultOptions() documentOptions {
	return documentOptions{
		loopCount: -1, // no looping extension
		disposal:  DisposalUnspecified,
	}
}

// WithDelay sets the delay of every frame, in hundredths of a second.
// It can be changed later with Document.SetDelay.
func WithDelay(centis uint16) DocumentOption {
	return func(o *documentOptions) {
		o.delay = centis
	}
}

// WithLoopCount writes the looping application extension.
// 0 loops forever, n > 0 plays the animation n extra times and a negative
// value omits the extension, which most viewers treat as play once.
func WithLoopCount(n int) DocumentOption {
	return func(o *documentOptions) {
		o.loopCount = n
	}
}

// WithBackgroundIndex sets the background color index written to the
// logical screen descriptor. Clear without arguments fills with it.
func WithBackgroundIndex(idx uint8) DocumentOption {
	return func(o *documentOptions) {
		o.background = idx
	}
}

// WithTransparentIndex marks one palette index as transparent in every frame.
func WithTransparentIndex(idx uint8) DocumentOption {
	return func(o *documentOptions) {
		o.transparent = true
		o.transparentIndex = idx
	}
}

// WithDisposal sets the disposal method of every frame.
func WithDisposal(d Disposal) DocumentOption {
	return func(o *documentOptions) {
		o.disposal = d
	}
}

// WithDepthTest makes DrawTriangle depth tested: a pixel is only written when
// the triangle's interpolated z there is not behind what was drawn before.
// Larger z is nearer the viewer. Clear resets the depth of every pixel.
// Without it triangles are drawn in painter's order.
func WithDepthTest() DocumentOption {
	return func(o *documentOptions) {
		o.depthTest = true
	}
}
