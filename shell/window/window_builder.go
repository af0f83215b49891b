package window

// WindowBuilderOption is a functional option for configuring a shellWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *shellWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *shellWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window client area width.
//
// Parameters:
//   - width: width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *shellWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window client area height.
//
// Parameters:
//   - height: height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *shellWindow) {
		w.height = height
	}
}
