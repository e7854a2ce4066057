package classgen

import (
	"github.com/wippyai/classgen/assembly"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/recipe"
)

// Output is an assembled recipe.
type Output struct {
	Plan    *recipe.Plan
	Methods []*assembly.Method
}

// Build loads the recipe at path, resolves it against a fresh type pool and
// assembles every method. A nil cfg uses assembly.DefaultConfig.
func Build(path string, cfg *assembly.Config) (*Output, error) {
	r, err := recipe.Load(path)
	if err != nil {
		return nil, err
	}
	return BuildRecipe(r, descriptor.NewTypePool(), cfg)
}

// BuildRecipe resolves r against pool and assembles every method.
func BuildRecipe(r *recipe.Recipe, pool *descriptor.TypePool, cfg *assembly.Config) (*Output, error) {
	plan, err := r.Resolve(pool)
	if err != nil {
		return nil, err
	}
	methods, err := plan.Assemble(assembly.NewWithConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &Output{Plan: plan, Methods: methods}, nil
}

// Bundle returns the serializable form of the assembled methods.
func (o *Output) Bundle() *assembly.Bundle {
	return assembly.NewBundle(o.Plan.Type.InternalName(), o.Methods)
}
