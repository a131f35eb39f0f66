// Package flipbook is the page-turn engine of an interactive picture book.
//
// It produces, every frame, the orientation of each bone in each page's
// bend chain, plus the navigation and zoom state a renderer needs. It never
// draws anything itself; see the ebitenview package for an Ebitengine
// renderer.
//
// # Quick start
//
//	reader := flipbook.NewReader(flipbook.DefaultConfig())
//	if err := reader.Open(book); err != nil {
//		return err
//	}
//	// each frame:
//	reader.Update(dt)
//	for _, pv := range reader.Pages() {
//		joints := pv.Chain().Pose(reader.BookRotation())
//		// ... draw joints ...
//	}
//
// # Pages and indices
//
// A [Book] of N pages is navigated with indices in [0, N]: index i means
// pages 0..i-1 have turned. The [Navigator] keeps two indices: the target
// requested by the user and the delayed index currently displayed. The
// delayed index walks toward the target one page at a time, quickly while far
// away and slower on the final approach.
//
// # Curl
//
// Each page owns a [BoneChain]. The [CurlSolver] computes a raw pose for
// every bone from three weighted sinusoids (a tight bend near the spine, a
// flattening toward the free edge, and a travelling bend while the page
// turns), then eases each bone toward it with frame-rate independent
// damping.
//
// # Gestures and zoom
//
// Taps on a page go through a [Disambiguator]: a lone tap turns the page once
// the double-tap window closes; a second tap inside the window opens the
// [Zoom] overlay on the visible side if it is text. While the overlay is
// open, navigation is suspended and any tap closes it.
//
// # Threading
//
// Nothing in this package starts goroutines or takes locks. Timers fire from
// [Reader.Update] on the caller's goroutine, which must be the one running
// the frame loop.
package flipbook
