package display

// DisplayOption is a functional option applied to a display during construction via NewDisplay.
type DisplayOption func(*displayImpl)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - DisplayOption: a function that applies the title option to a display
func WithTitle(title string) DisplayOption {
	return func(d *displayImpl) {
		d.title = title
	}
}

// WithScale sets the integer factor the framebuffer is scaled by for the
// initial window size. Values below one are treated as one.
//
// Parameters:
//   - scale: the window scale factor
//
// Returns:
//   - DisplayOption: a function that applies the scale option to a display
func WithScale(scale int) DisplayOption {
	return func(d *displayImpl) {
		if scale < 1 {
			scale = 1
		}
		d.scale = scale
	}
}

// WithVSync controls whether presentation is synchronized to the display
// refresh. Enabled by default; disabling it lets the loop run uncapped.
//
// Parameters:
//   - enabled: true to synchronize with the display refresh
//
// Returns:
//   - DisplayOption: a function that applies the vsync option to a display
func WithVSync(enabled bool) DisplayOption {
	return func(d *displayImpl) {
		d.vsync = enabled
	}
}
