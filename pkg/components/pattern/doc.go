// Package pattern generates vernier-style alignment markers and e-beam test
// patterns.
//
// A marker is two stacks of parallel bars. The left stack is drawn at
// nominal size; the right stack is the same stack scaled by the abberation
// factor and placed edge to edge with the left one. With abberation = 1 the
// bars line up; any scale error in fabrication shows as a misalignment that
// grows away from the first bar.
package pattern
