package bytecode

import "fmt"

// Opcode is a single-byte instruction code of the target virtual machine.
type Opcode byte

// Constants
const (
	NOP         Opcode = 0x00
	ACONST_NULL Opcode = 0x01
	ICONST_M1   Opcode = 0x02
	ICONST_0    Opcode = 0x03
	ICONST_1    Opcode = 0x04
	ICONST_2    Opcode = 0x05
	ICONST_3    Opcode = 0x06
	ICONST_4    Opcode = 0x07
	ICONST_5    Opcode = 0x08
	LCONST_0    Opcode = 0x09
	LCONST_1    Opcode = 0x0a
	FCONST_0    Opcode = 0x0b
	FCONST_1    Opcode = 0x0c
	FCONST_2    Opcode = 0x0d
	DCONST_0    Opcode = 0x0e
	DCONST_1    Opcode = 0x0f
	BIPUSH      Opcode = 0x10
	SIPUSH      Opcode = 0x11
	LDC         Opcode = 0x12
	LDC_W       Opcode = 0x13
	LDC2_W      Opcode = 0x14
)

// Loads
const (
	ILOAD   Opcode = 0x15
	LLOAD   Opcode = 0x16
	FLOAD   Opcode = 0x17
	DLOAD   Opcode = 0x18
	ALOAD   Opcode = 0x19
	ILOAD_0 Opcode = 0x1a
	LLOAD_0 Opcode = 0x1e
	FLOAD_0 Opcode = 0x22
	DLOAD_0 Opcode = 0x26
	ALOAD_0 Opcode = 0x2a
	IALOAD  Opcode = 0x2e
	LALOAD  Opcode = 0x2f
	FALOAD  Opcode = 0x30
	DALOAD  Opcode = 0x31
	AALOAD  Opcode = 0x32
	BALOAD  Opcode = 0x33
	CALOAD  Opcode = 0x34
	SALOAD  Opcode = 0x35
)

// Stores
const (
	ISTORE   Opcode = 0x36
	LSTORE   Opcode = 0x37
	FSTORE   Opcode = 0x38
	DSTORE   Opcode = 0x39
	ASTORE   Opcode = 0x3a
	ISTORE_0 Opcode = 0x3b
	LSTORE_0 Opcode = 0x3f
	FSTORE_0 Opcode = 0x43
	DSTORE_0 Opcode = 0x47
	ASTORE_0 Opcode = 0x4b
	IASTORE  Opcode = 0x4f
	LASTORE  Opcode = 0x50
	FASTORE  Opcode = 0x51
	DASTORE  Opcode = 0x52
	AASTORE  Opcode = 0x53
	BASTORE  Opcode = 0x54
	CASTORE  Opcode = 0x55
	SASTORE  Opcode = 0x56
)

// Stack
const (
	POP     Opcode = 0x57
	POP2    Opcode = 0x58
	DUP     Opcode = 0x59
	DUP_X1  Opcode = 0x5a
	DUP_X2  Opcode = 0x5b
	DUP2    Opcode = 0x5c
	DUP2_X1 Opcode = 0x5d
	DUP2_X2 Opcode = 0x5e
	SWAP    Opcode = 0x5f
)

// Math and conversions
const (
	IINC Opcode = 0x84
	I2L  Opcode = 0x85
	I2F  Opcode = 0x86
	I2D  Opcode = 0x87
	L2I  Opcode = 0x88
	L2F  Opcode = 0x89
	L2D  Opcode = 0x8a
	F2I  Opcode = 0x8b
	F2L  Opcode = 0x8c
	F2D  Opcode = 0x8d
	D2I  Opcode = 0x8e
	D2L  Opcode = 0x8f
	D2F  Opcode = 0x90
	I2B  Opcode = 0x91
	I2C  Opcode = 0x92
	I2S  Opcode = 0x93
)

// Control and references
const (
	IRETURN         Opcode = 0xac
	LRETURN         Opcode = 0xad
	FRETURN         Opcode = 0xae
	DRETURN         Opcode = 0xaf
	ARETURN         Opcode = 0xb0
	RETURN          Opcode = 0xb1
	GETSTATIC       Opcode = 0xb2
	PUTSTATIC       Opcode = 0xb3
	GETFIELD        Opcode = 0xb4
	PUTFIELD        Opcode = 0xb5
	INVOKEVIRTUAL   Opcode = 0xb6
	INVOKESPECIAL   Opcode = 0xb7
	INVOKESTATIC    Opcode = 0xb8
	INVOKEINTERFACE Opcode = 0xb9
	NEW             Opcode = 0xbb
	NEWARRAY        Opcode = 0xbc
	ANEWARRAY       Opcode = 0xbd
	ARRAYLENGTH     Opcode = 0xbe
	ATHROW          Opcode = 0xbf
	CHECKCAST       Opcode = 0xc0
	INSTANCEOF      Opcode = 0xc1
	WIDE            Opcode = 0xc4
)

// Array type codes used as the operand of NEWARRAY.
const (
	T_BOOLEAN int32 = 4
	T_CHAR    int32 = 5
	T_FLOAT   int32 = 6
	T_DOUBLE  int32 = 7
	T_BYTE    int32 = 8
	T_SHORT   int32 = 9
	T_INT     int32 = 10
	T_LONG    int32 = 11
)

var names = map[Opcode]string{
	NOP: "nop", ACONST_NULL: "aconst_null",
	ICONST_M1: "iconst_m1", ICONST_0: "iconst_0", ICONST_1: "iconst_1", ICONST_2: "iconst_2",
	ICONST_3: "iconst_3", ICONST_4: "iconst_4", ICONST_5: "iconst_5",
	LCONST_0: "lconst_0", LCONST_1: "lconst_1",
	FCONST_0: "fconst_0", FCONST_1: "fconst_1", FCONST_2: "fconst_2",
	DCONST_0: "dconst_0", DCONST_1: "dconst_1",
	BIPUSH: "bipush", SIPUSH: "sipush", LDC: "ldc", LDC_W: "ldc_w", LDC2_W: "ldc2_w",

	ILOAD: "iload", LLOAD: "lload", FLOAD: "fload", DLOAD: "dload", ALOAD: "aload",
	IALOAD: "iaload", LALOAD: "laload", FALOAD: "faload", DALOAD: "daload",
	AALOAD: "aaload", BALOAD: "baload", CALOAD: "caload", SALOAD: "saload",

	ISTORE: "istore", LSTORE: "lstore", FSTORE: "fstore", DSTORE: "dstore", ASTORE: "astore",
	IASTORE: "iastore", LASTORE: "lastore", FASTORE: "fastore", DASTORE: "dastore",
	AASTORE: "aastore", BASTORE: "bastore", CASTORE: "castore", SASTORE: "sastore",

	POP: "pop", POP2: "pop2", DUP: "dup", DUP_X1: "dup_x1", DUP_X2: "dup_x2",
	DUP2: "dup2", DUP2_X1: "dup2_x1", DUP2_X2: "dup2_x2", SWAP: "swap",

	IINC: "iinc",
	I2L: "i2l", I2F: "i2f", I2D: "i2d", L2I: "l2i", L2F: "l2f", L2D: "l2d",
	F2I: "f2i", F2L: "f2l", F2D: "f2d", D2I: "d2i", D2L: "d2l", D2F: "d2f",
	I2B: "i2b", I2C: "i2c", I2S: "i2s",

	IRETURN: "ireturn", LRETURN: "lreturn", FRETURN: "freturn", DRETURN: "dreturn",
	ARETURN: "areturn", RETURN: "return",
	GETSTATIC: "getstatic", PUTSTATIC: "putstatic", GETFIELD: "getfield", PUTFIELD: "putfield",
	INVOKEVIRTUAL: "invokevirtual", INVOKESPECIAL: "invokespecial",
	INVOKESTATIC: "invokestatic", INVOKEINTERFACE: "invokeinterface",
	NEW: "new", NEWARRAY: "newarray", ANEWARRAY: "anewarray", ARRAYLENGTH: "arraylength",
	ATHROW: "athrow", CHECKCAST: "checkcast", INSTANCEOF: "instanceof", WIDE: "wide",
}

func init() {
	// Compact local access forms: <x>load_<n> and <x>store_<n>.
	prefixes := []struct {
		base Opcode
		name string
	}{
		{ILOAD_0, "iload_"}, {LLOAD_0, "lload_"}, {FLOAD_0, "fload_"}, {DLOAD_0, "dload_"}, {ALOAD_0, "aload_"},
		{ISTORE_0, "istore_"}, {LSTORE_0, "lstore_"}, {FSTORE_0, "fstore_"}, {DSTORE_0, "dstore_"}, {ASTORE_0, "astore_"},
	}
	for _, p := range prefixes {
		for i := 0; i < 4; i++ {
			names[p.base+Opcode(i)] = fmt.Sprintf("%s%d", p.name, i)
		}
	}
}

// String returns the mnemonic of the opcode.
func (o Opcode) String() string {
	if n, ok := names[o]; ok {
		return n
	}
	return fmt.Sprintf("op(%#02x)", byte(o))
}
