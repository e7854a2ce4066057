package assembly

import (
	"go.uber.org/zap"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/stack"
)

// Result describes an applied method body.
type Result struct {
	Size         stack.Size
	MaxStack     int
	MaxLocals    int
	Instructions int
}

// Method is a recorded and encoded method body.
type Method struct {
	Descriptor   *descriptor.MethodDescription
	Instructions []bytecode.Instruction
	Constants    []bytecode.Constant
	Code         []byte
	Pool         *bytecode.Pool
	Result
}

// Assembler applies method bodies to sinks. It holds no per-method state and
// may be shared between goroutines as long as each uses its own sink.
type Assembler struct {
	cfg Config
}

// New creates an Assembler with the default configuration.
func New() *Assembler {
	return NewWithConfig(nil)
}

// NewWithConfig creates an Assembler. A nil cfg uses DefaultConfig.
func NewWithConfig(cfg *Config) *Assembler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Assembler{cfg: *cfg}
}

// Assemble emits body for method into sink.
//
// The body must be valid. MaxLocals covers the receiver and parameters of
// method plus every local slot the body touches. Limits are checked after
// emission, so sink may already hold the instructions of a rejected body.
func (a *Assembler) Assemble(method *descriptor.MethodDescription, body stack.Manipulation, sink bytecode.Sink) (Result, error) {
	if !body.IsValid() {
		return Result{}, errors.New(errors.PhaseAssemble, errors.KindIllegalState).
			Member(method.String()).
			Detail("method body is not valid").
			Build()
	}

	t := &tracker{sink: sink, maxLocals: method.StackSize()}
	size := body.Apply(t)
	res := Result{
		Size:         size,
		MaxStack:     size.Max,
		MaxLocals:    t.maxLocals,
		Instructions: t.instructions,
	}

	if res.MaxStack > a.cfg.maxStack() {
		return res, errors.New(errors.PhaseAssemble, errors.KindOverflow).
			Member(method.String()).
			Path("max_stack").
			Value(res.MaxStack).
			Detail("operand stack exceeds %d slots", a.cfg.maxStack()).
			Build()
	}
	if res.MaxLocals > a.cfg.maxLocals() {
		return res, errors.New(errors.PhaseAssemble, errors.KindOverflow).
			Member(method.String()).
			Path("max_locals").
			Value(res.MaxLocals).
			Detail("local variables exceed %d slots", a.cfg.maxLocals()).
			Build()
	}

	Logger().Debug("assembled method",
		zap.Stringer("method", method),
		zap.Int("instructions", res.Instructions),
		zap.Int("net", size.Net),
		zap.Int("max_stack", res.MaxStack),
		zap.Int("max_locals", res.MaxLocals))
	return res, nil
}

// Record assembles body into a fresh recorder and, unless disabled by the
// configuration, encodes the result into a code array.
func (a *Assembler) Record(method *descriptor.MethodDescription, body stack.Manipulation) (*Method, error) {
	rec := bytecode.NewRecorder()
	res, err := a.Assemble(method, body, rec)
	if err != nil {
		return nil, err
	}
	m := &Method{
		Descriptor:   method,
		Instructions: rec.Instructions(),
		Constants:    rec.Constants(),
		Result:       res,
	}
	if a.cfg.SkipEncode {
		return m, nil
	}
	m.Pool = bytecode.NewPool()
	code, err := bytecode.Encode(m.Instructions, m.Pool)
	if err != nil {
		return nil, err
	}
	m.Code = code
	Logger().Debug("encoded method",
		zap.Stringer("method", method),
		zap.Int("code_length", len(code)),
		zap.Int("pool_count", m.Pool.Count()))
	return m, nil
}
