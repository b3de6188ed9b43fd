// Package buffer provides the per-channel float32 sample container that a
// host hands to a kernel for the duration of one render call.
//
// A [List] is indexable by channel; channel c, frame f is
// list[c].Samples()[f]. Kernels borrow the lists passed to Process and must
// not retain them after it returns. Allocation happens in [New] and
// [NewList], which hosts call at setup time, never on the render path.
package buffer
