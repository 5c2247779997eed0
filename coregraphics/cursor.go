package coregraphics

// HideCursor hides the mouse cursor and increments the hide cursor count.
func (d Display) HideCursor() error {
	return check(native().HideCursor(d.ID))
}

// ShowCursor decrements the hide cursor count and shows the cursor when the
// count reaches zero.
func (d Display) ShowCursor() error {
	return check(native().ShowCursor(d.ID))
}

// MoveCursorToPoint moves the cursor to p, relative to the upper-left
// corner of the display.
func (d Display) MoveCursorToPoint(p Point) error {
	return check(native().MoveCursorToPoint(d.ID, p))
}

// WarpMouseCursorPosition moves the cursor to p in global coordinates
// without generating events.
func WarpMouseCursorPosition(p Point) error {
	return check(native().WarpMouseCursorPosition(p))
}

// AssociateMouseAndMouseCursorPosition connects or disconnects the mouse
// and the cursor while the application is in the foreground.
func AssociateMouseAndMouseCursorPosition(connected bool) error {
	return check(native().AssociateMouseAndMouseCursorPosition(connected))
}
