package recipe

import (
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/wippyai/classgen/errors"
)

// Recipe describes a type and the bodies of its methods.
type Recipe struct {
	Type    Type     `toml:"type"`
	Types   []Type   `toml:"types"`
	Fields  []Field  `toml:"fields"`
	Methods []Method `toml:"methods"`

	// Path is the file the recipe was loaded from (set at load time).
	Path string `toml:"-"`
}

// Type declares a class or interface. Types listed under [[types]] are
// referenced by the recipe but not generated.
type Type struct {
	Name       string   `toml:"name"`
	Kind       string   `toml:"kind"` // "class" (default) or "interface"
	Super      string   `toml:"super"`
	Interfaces []string `toml:"interfaces"`
	Modifiers  []string `toml:"modifiers"`
}

// Field declares a field of the generated type.
type Field struct {
	Name      string   `toml:"name"`
	Type      string   `toml:"type"`
	Modifiers []string `toml:"modifiers"`
}

// Body kinds.
const (
	BodyStub      = "stub"
	BodyFixed     = "fixed"
	BodySuper     = "super"
	BodyDelegate  = "delegate"
	BodyGetter    = "getter"
	BodySetter    = "setter"
	BodyArguments = "arguments"
	BodyThrow     = "throw"
)

// Method declares a method of the generated type and how to implement it.
type Method struct {
	Name      string   `toml:"name"`
	Returns   string   `toml:"returns"`
	Params    []string `toml:"params"`
	Modifiers []string `toml:"modifiers"`
	Body      string   `toml:"body"`

	// fixed
	Value     any    `toml:"value"`
	ValueType string `toml:"value-type"`

	// getter, setter
	Field string `toml:"field"`

	// delegate: "owner.name(descriptor)"
	Target          string   `toml:"target"`
	TargetModifiers []string `toml:"target-modifiers"`
	Dynamic         bool     `toml:"dynamic"`

	// throw
	Exception string `toml:"exception"`
	Message   string `toml:"message"`
}

// Parse decodes a recipe.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	md, err := toml.Decode(string(data), &r)
	if err != nil {
		return nil, errors.ParseFailed("recipe", err)
	}
	for _, key := range md.Undecoded() {
		Logger().Warn("ignoring unknown recipe key", zap.String("key", key.String()))
	}

	// Defaults
	if r.Type.Kind == "" {
		r.Type.Kind = "class"
	}
	for i := range r.Types {
		if r.Types[i].Kind == "" {
			r.Types[i].Kind = "class"
		}
	}
	for i := range r.Methods {
		if r.Methods[i].Returns == "" {
			r.Methods[i].Returns = "void"
		}
		if r.Methods[i].Body == "" {
			r.Methods[i].Body = BodyStub
		}
	}
	return &r, nil
}

// Load reads and decodes a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read recipe "+path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, err
	}
	r.Path = path
	Logger().Debug("loaded recipe",
		zap.String("path", path),
		zap.String("type", r.Type.Name),
		zap.Int("methods", len(r.Methods)))
	return r, nil
}
