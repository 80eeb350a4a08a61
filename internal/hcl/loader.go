package hcl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/calparse/internal/config"
	"github.com/specialistvlad/calparse/internal/ctxlog"
	"github.com/specialistvlad/calparse/internal/fsutil"
)

// Extension is the file suffix of profile files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL profile loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// fileRoot decodes every top-level block a profile file may hold.
type fileRoot struct {
	Logs    []*logBlock    `hcl:"log,block"`
	Inputs  []*inputBlock  `hcl:"input,block"`
	Outputs []*outputBlock `hcl:"output,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type inputBlock struct {
	HeaderLines *int `hcl:"header_lines,optional"`
}

type outputBlock struct {
	MetadataFile    *string `hcl:"metadata_file,optional"`
	CalibrationFile *string `hcl:"calibration_file,optional"`
	ResultsDir      *string `hcl:"results_dir,optional"`
	Summary         *bool   `hcl:"summary,optional"`
}

// Load parses every .hcl file under the given paths, in path order and then
// lexical order within a directory. Settings from later files override
// earlier ones.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := l.evalContext()
	profile := &config.Profile{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		warnUnknown(logger, file, hclFile.Body)

		profile.Merge(translate(&root))
		logger.Debug("Profile file merged.", "file", file)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return profile, nil
}

// warnUnknown logs every top-level attribute and block of a parsed file
// that fileRoot does not decode.
func warnUnknown(logger *slog.Logger, file string, body hcl.Body) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return
	}
	schema, _ := gohcl.ImpliedBodySchema(&fileRoot{})
	known := make(map[string]struct{}, len(schema.Blocks))
	for _, b := range schema.Blocks {
		known[b.Type] = struct{}{}
	}

	names := make([]string, 0, len(syntaxBody.Attributes))
	for name := range syntaxBody.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Warn("Ignoring unknown top-level attribute.", "file", file, "name", name)
	}
	for _, block := range syntaxBody.Blocks {
		if _, ok := known[block.Type]; ok {
			continue
		}
		logger.Warn("Ignoring unknown top-level block.", "file", file, "type", block.Type, "range", block.TypeRange.String())
	}
}

// evalContext exposes the environment as `env.NAME`.
func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

// translate folds the decoded blocks into a profile. Repeated blocks in a
// single file merge in source order.
func translate(root *fileRoot) *config.Profile {
	p := &config.Profile{}
	for _, b := range root.Logs {
		setString(&p.Log.Level, b.Level)
		setString(&p.Log.Format, b.Format)
	}
	for _, b := range root.Inputs {
		if b.HeaderLines != nil {
			p.Input.HeaderLines = *b.HeaderLines
		}
	}
	for _, b := range root.Outputs {
		setString(&p.Output.MetadataFile, b.MetadataFile)
		setString(&p.Output.CalibrationFile, b.CalibrationFile)
		setString(&p.Output.ResultsDir, b.ResultsDir)
		if b.Summary != nil {
			v := *b.Summary
			p.Output.Summary = &v
		}
	}
	return p
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// findAllHCLFiles expands every path into the files it names or the .hcl
// files a directory holds. A path that does not exist is an error.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing profile path %s: %w", path, err)
		}
		files := []string{path}
		if info.IsDir() {
			files, err = fsutil.FindFilesByExtension(path, Extension)
			if err != nil {
				return nil, fmt.Errorf("failed to scan profile path %s: %w", path, err)
			}
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; !wasSeen {
				allFiles = append(allFiles, f)
				seen[f] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
