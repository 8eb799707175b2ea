// Package htmlapp runs the editor in the browser. All state is owned by the goroutine in App.Run: DOM callbacks,
// timers and finished image loads post closures to it, and the canvas is redrawn at most once per animation frame.
// The host only builds for GOOS=js GOARCH=wasm.
package htmlapp
