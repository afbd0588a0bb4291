package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/vk/varexport/internal/config"
	"github.com/vk/varexport/internal/ctxlog"
	"github.com/vk/varexport/internal/fsutil"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	env map[string]string
}

type Option func(*Loader)

// WithEnv replaces the process environment seen by expressions.
func WithEnv(env map[string]string) Option {
	return func(l *Loader) { l.env = env }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.env == nil {
		l.env = environ()
	}
	return l
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Load parses every .hcl file under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := l.evalContext()
	model := config.NewModel()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		if err := translate(model, &root, evalCtx); err != nil {
			return nil, fmt.Errorf("failed to translate HCL file %s: %w", file, err)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "files", len(files), "namespaces", len(model.Namespaces), "start_time", model.StartTime)
	return model, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value, len(l.env))
	for k, v := range l.env {
		env[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

// translate merges one decoded file into the model.
func translate(model *config.Model, root *fileRoot, evalCtx *hcl.EvalContext) error {
	if root.StartTime != nil && *root.StartTime {
		model.StartTime = true
	}
	for _, block := range root.Namespaces {
		ns := model.Namespace(block.Name)
		if block.IncludeInGlobal != nil {
			ns.IncludeInGlobal = *block.IncludeInGlobal
		}
		if block.Parent != nil {
			ns.Parent = *block.Parent
		}
		for _, vb := range block.Variables {
			val, diags := vb.Value.Value(evalCtx)
			if diags.HasErrors() {
				return fmt.Errorf("variable %q in namespace %q: %w", vb.Name, block.Name, diags)
			}
			native, err := ctyToNative(val)
			if err != nil {
				return fmt.Errorf("variable %q in namespace %q: %w", vb.Name, block.Name, err)
			}
			v := &config.Variable{Name: vb.Name, Value: native}
			if vb.Doc != nil {
				v.Doc = *vb.Doc
			}
			ns.Variables = append(ns.Variables, v)
		}
	}
	return nil
}
