package dmmu

import "encoding/binary"
import "fmt"

// Opcode of the custom allocator instructions, bits [6:0].
const Opcode = uint8(0x6b)

// funct3 selecting the operation, bits [14:12].
const (
	Fmalloc = uint8(0x0)
	Ffree   = uint8(0x2)
)

// Integer registers used by the allocator calling convention.
const (
	Zero = uint8(0)
	T0   = uint8(5)
	T1   = uint8(6)
	T2   = uint8(7)
)

// User CSRs holding cumulative background execution time.
const (
	CSRMallocTime = uint16(0xE09)
	CSRFreeTime   = uint16(0xE0A)
)

// InstMalloc malloc t1(x6), t2+0
const InstMalloc = uint32(0x0003836b)

// InstFree free t2+0
const InstFree = uint32(0x0003a06b)

// Inst decoded I-type instruction.
type Inst struct {
	Opcode uint8
	Rd     uint8
	Funct3 uint8
	Rs1    uint8
	Imm    int16 // sign extended 12-bit immediate
}

// Encode an I-type instruction word.
func Encode(funct3, rd, rs1 uint8, imm int16) uint32 {
	if imm < -2048 || imm > 2047 {
		panicerr("immediate %v out of range", imm)
	}
	word := uint32(Opcode & 0x7f)
	word |= uint32(rd&0x1f) << 7
	word |= uint32(funct3&0x7) << 12
	word |= uint32(rs1&0x1f) << 15
	word |= (uint32(imm) & 0xfff) << 20
	return word
}

// Decode an I-type instruction word.
func Decode(word uint32) Inst {
	return Inst{
		Opcode: uint8(word & 0x7f),
		Rd:     uint8((word >> 7) & 0x1f),
		Funct3: uint8((word >> 12) & 0x7),
		Rs1:    uint8((word >> 15) & 0x1f),
		Imm:    int16(int32(word) >> 20),
	}
}

// Bytes of the instruction word as laid out in memory, little endian.
func Bytes(word uint32) [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], word)
	return out
}

func (inst Inst) String() string {
	switch {
	case inst.Opcode != Opcode:
	case inst.Funct3 == Fmalloc:
		return fmt.Sprintf("malloc x%v, x%v%+d", inst.Rd, inst.Rs1, inst.Imm)
	case inst.Funct3 == Ffree:
		return fmt.Sprintf("free x%v%+d", inst.Rs1, inst.Imm)
	}
	return fmt.Sprintf("unknown{op:%#x f3:%v}", inst.Opcode, inst.Funct3)
}
