// Package input turns SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseWheel
	EventMouseDown
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Wheel  float32
	Button uint8
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls pending SDL events. Returns true when the window should close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					quit = true
				}
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: float32(e.Y)})

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, Event{
					Type:   EventMouseDown,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			}
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether a key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Wheel returns the summed wheel motion of this frame.
func (i *Input) Wheel() float32 {
	var w float32
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			w += e.Wheel
		}
	}
	return w
}

// PanAxis returns the held arrow/WASD direction, each axis in [-1, 1].
func PanAxis() (dx, dy float32) {
	keys := sdl.GetKeyboardState()
	return axis(keys, sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT, sdl.SCANCODE_A, sdl.SCANCODE_D),
		axis(keys, sdl.SCANCODE_DOWN, sdl.SCANCODE_UP, sdl.SCANCODE_S, sdl.SCANCODE_W)
}

func axis(keys []uint8, neg, pos, altNeg, altPos sdl.Scancode) float32 {
	var v float32
	if keys[pos] != 0 || keys[altPos] != 0 {
		v++
	}
	if keys[neg] != 0 || keys[altNeg] != 0 {
		v--
	}
	return v
}
