package assembly

// Limits of a single method body.
const (
	MaxStackLimit  = 65535
	MaxLocalsLimit = 65535
)

// Config holds configuration for an Assembler
type Config struct {
	// MaxStack rejects bodies whose operand stack grows deeper.
	// 0 means MaxStackLimit.
	MaxStack int

	// MaxLocals rejects bodies touching more local variable slots.
	// 0 means MaxLocalsLimit.
	MaxLocals int

	// SkipEncode records instructions without lowering them to a code array.
	SkipEncode bool
}

// DefaultConfig returns the class file limits.
func DefaultConfig() *Config {
	return &Config{
		MaxStack:  MaxStackLimit,
		MaxLocals: MaxLocalsLimit,
	}
}

func (c *Config) maxStack() int {
	if c.MaxStack <= 0 || c.MaxStack > MaxStackLimit {
		return MaxStackLimit
	}
	return c.MaxStack
}

func (c *Config) maxLocals() int {
	if c.MaxLocals <= 0 || c.MaxLocals > MaxLocalsLimit {
		return MaxLocalsLimit
	}
	return c.MaxLocals
}
