package packet

// Client → server opcodes.
const (
	C_OPCODE_HELLO         byte = 0x01 // [S name]
	C_OPCODE_INTENT        byte = 0x02 // [C flags][H turn][H strafe]
	C_OPCODE_SELECT_WEAPON byte = 0x03 // [S weapon]
	C_OPCODE_QUIT          byte = 0x04
)

// Server → client opcodes.
const (
	S_OPCODE_HELLO    byte = 0x80 // [C protocol][H tick rate]
	S_OPCODE_WELCOME  byte = 0x81 // [D player][DU ship]
	S_OPCODE_SNAPSHOT byte = 0x82 // [msgpack frame]
	S_OPCODE_ACCOUNT  byte = 0x83 // [D score][D lives][D fuel×100][S weapon]
)

// ProtocolVersion is sent in S_OPCODE_HELLO.
const ProtocolVersion byte = 1

// Intent flag bits of C_OPCODE_INTENT.
const (
	IntentFire byte = 1 << iota
	IntentShield
	IntentThrust
)

// AxisScale maps a -1..1 axis to the signed 16-bit wire value.
const AxisScale = 1000
