// Package config defines the format-agnostic conversion profile, along with
// the Loader interface for reading profiles from files.
//
// The `config.Profile` is what the app layer consumes. Concrete loaders, such
// as the HCL one, are provided in separate packages.
package config
