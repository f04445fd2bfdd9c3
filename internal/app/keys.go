package app

import "github.com/veandco/go-sdl2/sdl"

// ActionKind is what a key press asks for.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionSelect // shape, or task in the coloring exercise; Index from 0
	ActionExercise
	ActionCycleMode
	ActionCycleSource
	ActionOpenImage
	ActionScaleUp
	ActionScaleDown
	ActionScaleReset
	ActionMoreSegments
	ActionFewerSegments
	ActionScreenshot
	ActionFullscreen
)

// Action is a decoded key binding.
type Action struct {
	Kind  ActionKind
	Index int
}

// Bindings:
//
//	Esc         quit
//	1..5        shape (1..4) or coloring task (1..5)
//	F1 F2 F3    shapes, coloring, texturing exercise
//	M           next render mode
//	T           next texture source
//	O           open a texture image
//	+ - 0       texture scale up, down, reset
//	[ ]         fewer, more lateral segments
//	F11         toggle fullscreen
//	F12         save the frame as PNG
func bindKey(key sdl.Keycode, shift bool) Action {
	switch key {
	case sdl.K_ESCAPE:
		return Action{Kind: ActionQuit}
	case sdl.K_1, sdl.K_2, sdl.K_3, sdl.K_4, sdl.K_5:
		return Action{Kind: ActionSelect, Index: int(key - sdl.K_1)}
	case sdl.K_F1, sdl.K_F2, sdl.K_F3:
		return Action{Kind: ActionExercise, Index: int(key - sdl.K_F1)}
	case sdl.K_m:
		return Action{Kind: ActionCycleMode}
	case sdl.K_t:
		return Action{Kind: ActionCycleSource}
	case sdl.K_o:
		return Action{Kind: ActionOpenImage}
	case sdl.K_PLUS, sdl.K_KP_PLUS:
		return Action{Kind: ActionScaleUp}
	case sdl.K_EQUALS:
		if shift {
			return Action{Kind: ActionScaleUp}
		}
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		return Action{Kind: ActionScaleDown}
	case sdl.K_0, sdl.K_KP_0:
		return Action{Kind: ActionScaleReset}
	case sdl.K_LEFTBRACKET:
		return Action{Kind: ActionFewerSegments}
	case sdl.K_RIGHTBRACKET:
		return Action{Kind: ActionMoreSegments}
	case sdl.K_F11:
		return Action{Kind: ActionFullscreen}
	case sdl.K_F12:
		return Action{Kind: ActionScreenshot}
	}
	return Action{}
}
