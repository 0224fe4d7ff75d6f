// Package frame runs a particle field as a mount/unmount component on a host
// environment.
//
// A [Host] supplies the viewport size, a drawing surface, pointer and resize
// events, and a one-shot frame [Scheduler]. [Mount] wires a field to those
// signals and keeps re-requesting frames; [Renderer.Unmount] removes every
// listener and cancels the pending frame, after which no callback draws.
//
// The loop is a chain of frame requests, not a blocking loop: each frame
// schedules the next one only while the renderer is active.
//
// [Headless] is a host driven by explicit calls, used by tests, snapshot
// export, benchmarks and the HTTP scene.
package frame
