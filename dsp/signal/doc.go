// Package signal generates deterministic test signals and synthetic impulse
// responses for exercising the effect kernels.
package signal
