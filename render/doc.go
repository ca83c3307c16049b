// Package render implements the render manager: the handoff point between
// a producer of decoded video frames and one or more renderers backed by
// reusable buffer pools.
//
// The manager owns the render-readiness state machine, the selection of
// compatible buffer pools and the instantiation of renderers for them, the
// copy/conversion of producer frames into renderer-owned memory, and a
// one-frame cache that lets the last frame be redisplayed while playback
// is paused or while a freshly created renderer is bootstrapped.
//
// Three logical actors drive a Manager concurrently:
//
//   - a producer thread calls Configure once per stream and AddFrame once
//     per decoded frame
//   - a UI/render thread calls FrameMove once per tick and
//     RenderWindow/RenderControl once per draw
//   - arbitrary callers fire Flush and TriggerUpdateResolution, which only
//     set flags resolved at the next tick
//
// The producer never blocks on a consumer: every failure on the frame path
// degrades to a dropped frame with a log line. No error ever crosses the
// AddFrame boundary.
//
// Collaborators (buffer pools, render buffers, renderers, the capability
// registry, and the host render context) are consumed through interfaces
// defined in this package. The buffers package provides a software
// reference implementation of the pool side.
package render
