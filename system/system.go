// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system defines the window and keyboard input abstraction
// used by the viewer. Platform implementations are in system/driver.
package system

// Key is a keyboard key the viewer responds to.
type Key int32

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyR
	KeyC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape

	// KeysN is the number of keys.
	KeysN
)

var keyNames = [KeysN]string{"W", "A", "S", "D", "R", "C", "Up", "Down", "Left", "Right", "Escape"}

func (k Key) String() string {
	if k < 0 || k >= KeysN {
		return "Key(unknown)"
	}
	return keyNames[k]
}

// Keys returns all keys.
func Keys() []Key {
	ks := make([]Key, KeysN)
	for i := range ks {
		ks[i] = Key(i)
	}
	return ks
}

// Window is an on-screen window with a current rendering context,
// polled once per frame. All methods must be called on the main thread.
type Window interface {
	// ShouldClose returns whether the user has requested the window to close.
	ShouldClose() bool

	// SetShouldClose sets whether the window should close.
	SetShouldClose(b bool)

	// Size returns the size of the drawable area of the window, in pixels.
	Size() (width, height int)

	// KeyPressed returns whether the given key is currently held down.
	KeyPressed(k Key) bool

	// SwapBuffers presents the frame that was rendered.
	SwapBuffers()

	// PollEvents processes pending window and input events.
	PollEvents()

	// Destroy destroys the window and its context.
	Destroy()
}
