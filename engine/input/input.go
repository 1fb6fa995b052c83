package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Point is a pointer position in window pixels
type Point struct {
	X, Y int
}

// InputState tracks pointer and keyboard state per frame
type InputState struct {
	// Pointer (mouse cursor, or the primary touch when one is down)
	PointerX, PointerY int
	PointerDX, PointerDY int // delta since last frame while held
	PointerDown          bool

	// Presses holds every pointer-down of this frame: any mouse button
	// and every new touch
	Presses []Point

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	ScrollY float64

	// Keyboard
	KeysPressed map[ebiten.Key]bool

	touchIDs  []ebiten.TouchID
	primary   ebiten.TouchID
	touchDown bool
}

// Frame is one frame of raw device input
type Frame struct {
	CursorX, CursorY int
	// MouseHeld is true while the orbit button (left) is down
	MouseHeld bool
	// MousePresses counts mouse buttons that went down this frame
	MousePresses int
	Touches      []Touch
	WheelY       float64
	Keys         map[ebiten.Key]bool
}

// Touch is one active touch point
type Touch struct {
	ID          ebiten.TouchID
	X, Y        int
	JustPressed bool
}

// OrbitKeys are polled every frame
var OrbitKeys = []ebiten.Key{
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
	ebiten.KeyEscape,
}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle,
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
		KeysPressed:   make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.Apply(s.poll())
}

func (s *InputState) poll() Frame {
	f := Frame{Keys: make(map[ebiten.Key]bool, len(OrbitKeys))}
	f.CursorX, f.CursorY = ebiten.CursorPosition()
	f.MouseHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			f.MousePresses++
		}
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		x, y := ebiten.TouchPosition(id)
		f.Touches = append(f.Touches, Touch{
			ID:          id,
			X:           x,
			Y:           y,
			JustPressed: inpututil.TouchPressDuration(id) == 1,
		})
	}

	_, f.WheelY = ebiten.Wheel()
	for _, k := range OrbitKeys {
		f.Keys[k] = ebiten.IsKeyPressed(k)
	}
	return f
}

// Apply folds one frame of raw input into the state
func (s *InputState) Apply(f Frame) {
	s.Presses = s.Presses[:0]
	wasDown := s.PointerDown
	prevX, prevY := s.PointerX, s.PointerY

	// an active touch drives the pointer; otherwise the mouse does
	var primary *Touch
	for i := range f.Touches {
		t := &f.Touches[i]
		if t.JustPressed {
			s.Presses = append(s.Presses, Point{t.X, t.Y})
		}
		if s.touchDown && t.ID == s.primary {
			primary = t
		}
	}
	if primary == nil && len(f.Touches) > 0 {
		primary = &f.Touches[0]
		wasDown = false
	}

	if primary != nil {
		s.primary = primary.ID
		s.touchDown = true
		s.PointerX, s.PointerY = primary.X, primary.Y
		s.PointerDown = true
	} else {
		s.touchDown = false
		s.PointerX, s.PointerY = f.CursorX, f.CursorY
		s.PointerDown = f.MouseHeld
		for i := 0; i < f.MousePresses; i++ {
			s.Presses = append(s.Presses, Point{f.CursorX, f.CursorY})
		}
	}

	s.PointerDX, s.PointerDY = 0, 0
	if wasDown && s.PointerDown {
		s.PointerDX = s.PointerX - prevX
		s.PointerDY = s.PointerY - prevY
	}

	// Drag tracking
	if s.PointerDown && !wasDown {
		s.DragStartX, s.DragStartY = s.PointerX, s.PointerY
		s.Dragging = false
	}
	if s.PointerDown && !s.Dragging {
		dx := s.PointerX - s.DragStartX
		dy := s.PointerY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if !s.PointerDown {
		s.Dragging = false
	}

	s.ScrollY = f.WheelY
	for k := range s.KeysPressed {
		delete(s.KeysPressed, k)
	}
	for k, down := range f.Keys {
		s.KeysPressed[k] = down
	}
}

// OrbitDelta returns the pointer movement of this frame once the pointer
// has moved past DragThreshold since going down; before that it is zero
func (s *InputState) OrbitDelta() (dx, dy int) {
	if !s.Dragging {
		return 0, 0
	}
	return s.PointerDX, s.PointerDY
}

// JustPressed reports whether the pointer went down this frame
func (s *InputState) JustPressed() bool { return len(s.Presses) > 0 }

// LastPress returns the most recent pointer-down of this frame
func (s *InputState) LastPress() (Point, bool) {
	if len(s.Presses) == 0 {
		return Point{}, false
	}
	return s.Presses[len(s.Presses)-1], true
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// KeyAxis returns -1, 0 or 1 from a pair of held keys
func (s *InputState) KeyAxis(neg, pos ebiten.Key) float64 {
	v := 0.0
	if s.KeysPressed[neg] {
		v--
	}
	if s.KeysPressed[pos] {
		v++
	}
	return v
}
