package packet

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestWriterReaderFields(t *testing.T) {
	w := NewWriterWithOpcode(C_OPCODE_INTENT)
	w.WriteC(IntentFire | IntentThrust)
	w.WriteAxis(-0.5)
	w.WriteAxis(2) // clamped
	w.WriteD(-7)
	w.WriteS("lightning")

	r := NewReader(w.Bytes())
	if r.Opcode() != C_OPCODE_INTENT {
		t.Fatalf("opcode = %#x", r.Opcode())
	}
	if flags := r.ReadC(); flags != IntentFire|IntentThrust {
		t.Errorf("flags = %#b", flags)
	}
	if v := r.ReadAxis(); v != -0.5 {
		t.Errorf("turn = %v, want -0.5", v)
	}
	if v := r.ReadAxis(); v != 1 {
		t.Errorf("strafe = %v, want 1", v)
	}
	if v := r.ReadD(); v != -7 {
		t.Errorf("d = %d", v)
	}
	if s := r.ReadS(); s != "lightning" {
		t.Errorf("s = %q", s)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d", r.Remaining())
	}
	if r.ReadD() != 0 || r.ReadC() != 0 {
		t.Error("reads past the end must yield zero")
	}
}

func TestRegistryGatesByState(t *testing.T) {
	reg := NewRegistry(zaptest.NewLogger(t))
	calls := 0
	reg.Register(C_OPCODE_INTENT, []SessionState{StatePlaying}, func(any, *Reader) { calls++ })

	pkt := []byte{C_OPCODE_INTENT, 0}
	if err := reg.Dispatch(nil, StateHandshake, pkt); err == nil {
		t.Error("intent before hello should be rejected")
	}
	if err := reg.Dispatch(nil, StatePlaying, pkt); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := reg.Dispatch(nil, StatePlaying, []byte{0x7f}); err != nil {
		t.Errorf("unknown opcode should be ignored, got %v", err)
	}
	if err := reg.Dispatch(nil, StatePlaying, nil); err == nil {
		t.Error("empty packet should fail")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRegistryRecoversHandlerPanic(t *testing.T) {
	reg := NewRegistry(zaptest.NewLogger(t))
	reg.Register(C_OPCODE_QUIT, []SessionState{StatePlaying}, func(any, *Reader) { panic("boom") })

	if err := reg.Dispatch(nil, StatePlaying, []byte{C_OPCODE_QUIT}); err == nil {
		t.Error("panic should surface as an error")
	}
}
