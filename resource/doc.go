// Package resource defines the render graph's logical resource model:
// dense integer handles, packed versioned handles, usage bitmasks, and
// the structure-of-arrays meta tables that describe every image and
// buffer declared during a compile's setup phase.
package resource
