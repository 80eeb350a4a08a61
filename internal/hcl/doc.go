// Package hcl provides the HCL implementation of the config.Loader interface.
// It reads conversion profiles from .hcl files, evaluating expressions with
// an `env` object holding the process environment.
package hcl
