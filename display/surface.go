package display

// Surface holds the state shared by all backends: the current dimensions, the
// bound render node and the create/close lifecycle. Backends embed it.
type Surface struct {
	width  int
	height int
	node   RenderNode

	glesVersion int

	created bool
	failed  bool
	closed  bool

	interrupt *InterruptWatcher
}

// Create a surface with the given initial dimensions.
func NewSurface(width, height int) Surface {
	return Surface{
		width:  width,
		height: height,
	}
}

// Size returns the current surface dimensions.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// SetRenderNode binds node to the surface. Binding a node different from the
// current one immediately delivers the current dimensions to it.
func (s *Surface) SetRenderNode(node RenderNode) {
	if node == nil || node == s.node {
		return
	}
	s.node = node
	s.Resize(s.width, s.height)
}

// Resize updates the surface dimensions and notifies the bound node.
func (s *Surface) Resize(width, height int) {
	s.width = width
	s.height = height
	if s.node != nil {
		s.node.OnResized(width, height)
	}
}

// GLESVersion implements Display.
func (s *Surface) GLESVersion() int {
	return s.glesVersion
}

// SetGLESVersion records the detected version.
func (s *Surface) SetGLESVersion(version int) {
	s.glesVersion = version
}

// BeginCreate must be called by backends at the start of Create. It returns
// false with an error if the surface was already created or a previous
// attempt failed.
func (s *Surface) BeginCreate() (proceed bool, err error) {
	switch {
	case s.failed:
		return false, ErrCreateFailed
	case s.created:
		return false, nil
	}
	return true, nil
}

// EndCreate records the outcome of a Create call and starts watching for
// interrupt signals on success.
func (s *Surface) EndCreate(err error) error {
	if err != nil {
		s.failed = true
		return err
	}
	s.created = true
	s.interrupt = WatchInterrupts()
	return nil
}

// Created returns true if the surface was successfully created.
func (s *Surface) Created() bool {
	return s.created
}

// Interrupted returns true if an interrupt signal was received since the
// surface was created.
func (s *Surface) Interrupted() bool {
	return s.interrupt != nil && s.interrupt.Triggered()
}

// BeginClose returns true the first time it is called for a created surface.
func (s *Surface) BeginClose() bool {
	if s.closed || !s.created {
		return false
	}
	s.closed = true
	s.node = nil
	if s.interrupt != nil {
		s.interrupt.Stop()
	}
	return true
}
