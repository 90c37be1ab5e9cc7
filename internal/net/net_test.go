package net

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/starwake/simcore/internal/net/packet"
	"go.uber.org/zap/zaptest"
)

func TestFrameRoundTripAndLimits(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte{packet.C_OPCODE_QUIT, 1, 2}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, []byte{packet.C_OPCODE_QUIT, 1, 2}) {
		t.Errorf("payload = %v", got)
	}

	if err := WriteFrame(&buf, nil); err == nil {
		t.Error("empty frame should be rejected")
	}
	if _, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 0})); err == nil {
		t.Error("zero length header should be rejected")
	}
	if _, err := ReadFrame(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0x7f})); err == nil {
		t.Error("oversized header should be rejected")
	}
}

func TestSessionHelloQueuesAndFlush(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	sess := NewSession(server, 1, 4, 4, 0, zaptest.NewLogger(t))
	hello := []byte{packet.S_OPCODE_HELLO, packet.ProtocolVersion}
	errCh := make(chan error, 1)
	go func() { errCh <- sess.Start(hello) }()

	client.SetDeadline(time.Now().Add(2 * time.Second))
	got, err := ReadFrame(client)
	if err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if !bytes.Equal(got, hello) {
		t.Errorf("hello = %v", got)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := WriteFrame(client, []byte{packet.C_OPCODE_HELLO, 'a', 0}); err != nil {
		t.Fatalf("client write: %v", err)
	}
	select {
	case in := <-sess.InQueue:
		if in[0] != packet.C_OPCODE_HELLO {
			t.Errorf("inbound opcode = %#x", in[0])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no inbound packet")
	}

	sess.Send([]byte{packet.S_OPCODE_WELCOME, 9})
	if len(sess.Buffered()) != 1 {
		t.Fatalf("buffered = %d", len(sess.Buffered()))
	}
	sess.FlushOutput()
	out, err := ReadFrame(client)
	if err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if out[0] != packet.S_OPCODE_WELCOME {
		t.Errorf("outbound opcode = %#x", out[0])
	}

	sess.Close()
	if !sess.IsClosed() || sess.State() != packet.StateDisconnecting {
		t.Error("closed session state")
	}
	sess.Send([]byte{1})
	if len(sess.Buffered()) != 0 {
		t.Error("send after close should be dropped")
	}
}

func TestSessionStoreForEachOrdered(t *testing.T) {
	st := NewSessionStore()
	for _, id := range []uint64{3, 1, 2} {
		st.Add(&Session{ID: id})
	}
	var seen []uint64
	st.ForEach(func(s *Session) { seen = append(seen, s.ID) })
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("order = %v", seen)
	}
	st.Remove(2)
	if st.Count() != 2 || st.Get(2) != nil {
		t.Error("remove failed")
	}
}
