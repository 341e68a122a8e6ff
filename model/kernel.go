package model

// KernelIdentity describes the running kernel as the package database knows it.
// Variant is empty for the mainline kernel.
type KernelIdentity struct {
	Version string `json:"version" yaml:"version"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
	Package string `json:"package" yaml:"package"`
}
