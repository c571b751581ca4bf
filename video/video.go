// Package video defines the interface the PPU presents a completed frame
// through, independent of any concrete rendering backend.
package video

import "image"

// Sink receives a completed NTSC frame (256x240) at the start of VBlank.
// Implementations must not retain frame beyond the call: the PPU reuses
// its backing framebuffer on the next frame.
type Sink interface {
	Present(frame *image.RGBA)
}

// Discard is a Sink that drops every frame, used by tests and headless
// CLI invocations that don't need pixels.
type Discard struct{}

func (Discard) Present(*image.RGBA) {}
