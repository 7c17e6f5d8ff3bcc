package cpu

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Statements: []Statement{
			{LineNo: 1, Addr: 0x10, Words: []string{"LDA_IMM", "5"}, Bytes: []byte{0x01, 0x05}},
			{LineNo: 2, Addr: 0x12, Words: []string{"JMP", "0x20"}, Bytes: []byte{0x06, 0x20, 0x00}},
			{LineNo: 4, Addr: 0x20, Words: []string{"HALT"}, Bytes: []byte{0xff}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x10)
	assert.NotNil(dbg.Statement)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x14)
	assert.NotNil(dbg.Statement)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(0x20)
	assert.NotNil(dbg.Statement)
	assert.Equal(4, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x15)
	assert.Nil(dbg.Statement)
	assert.Equal(0, dbg.Index)

	dbg = (&Program{}).Debug(0)
	assert.Nil(dbg.Statement)
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	codes := maps.Collect(testProgram().Codes())
	assert.Equal(map[int]byte{
		0x10: 0x01, 0x11: 0x05,
		0x12: 0x06, 0x13: 0x20, 0x14: 0x00,
		0x20: 0xff,
	}, codes)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	origin, image := testProgram().Binary()
	assert.Equal(0x10, origin)
	assert.Equal(0x11, len(image))
	assert.Equal(byte(0x01), image[0])
	assert.Equal(byte(0x00), image[0x0f])
	assert.Equal(byte(0xff), image[0x10])

	origin, image = (&Program{}).Binary()
	assert.Equal(0, origin)
	assert.Nil(image)
}

func TestProgram_Entry(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0x10, testProgram().Entry())
	assert.Equal(0, (&Program{}).Entry())
}

func TestProgram_Load(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	n := testProgram().Load(cpu)
	assert.Equal(6, n)
	assert.Equal([]byte{0x01, 0x05, 0x06, 0x20, 0x00}, cpu.Memory[0x10:0x15])

	cpu.Register.PC = testProgram().Entry()
	cpu.Run(0)
	assert.Equal(byte(5), cpu.Register.A)
	assert.Equal(0x20, cpu.Register.PC)
	assert.Equal(3, cpu.Ticks)
}

func TestProgram_LoadTruncates(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpu(1, 1)
	assert.NoError(err)

	prog := &Program{
		Statements: []Statement{
			{LineNo: 1, Addr: len(cpu.Memory) - 1, Bytes: []byte{0x01, 0x02}},
			{LineNo: 2, Addr: 0x1000, Bytes: []byte{0xff}},
		},
	}

	assert.Equal(1, prog.Load(cpu))
	assert.Equal(byte(0x01), cpu.Memory[len(cpu.Memory)-1])
}
