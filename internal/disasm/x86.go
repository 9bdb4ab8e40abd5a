package disasm

import "golang.org/x/arch/x86/x86asm"

// X86Decoder decodes 64-bit x86 machine code using
// [golang.org/x/arch/x86/x86asm], formatted in Intel syntax.
type X86Decoder struct{}

// DecodeOne implements [Decoder].
func (X86Decoder) DecodeOne(b []byte, addr uint64) (int, string, error) {
	inst, err := x86asm.Decode(b, 64)
	if err != nil {
		return 0, "", err
	}

	text := x86asm.IntelSyntax(inst, addr, nil)

	return inst.Len, text, nil
}

var _ Decoder = X86Decoder{}
