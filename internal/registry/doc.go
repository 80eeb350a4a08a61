// Package registry holds the calibration sub-grammars known to the parser.
// Each grammar is contributed by a module under modules/ through the Module
// interface and is selected by the label on the first line of a calibration
// chunk. Labels without a registered grammar fall back to raw rows.
package registry
