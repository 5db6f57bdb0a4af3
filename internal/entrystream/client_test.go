package entrystream

import (
	"bufio"
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrame(t *testing.T, w *bufio.Writer, slot uint64, txPayloads [][]byte) {
	t.Helper()
	body := make([]byte, 0, 12)
	var slotBuf [8]byte
	binary.LittleEndian.PutUint64(slotBuf[:], slot)
	body = append(body, slotBuf[:]...)

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(txPayloads)))
	body = append(body, countBuf[:]...)

	for _, tx := range txPayloads {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(tx)))
		body = append(body, lenBuf[:]...)
		body = append(body, tx...)
	}

	var frameLen [4]byte
	binary.LittleEndian.PutUint32(frameLen[:], uint32(len(body)))
	_, err := w.Write(frameLen[:])
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Flush())
}

func TestSubscribe_DeliversEmptySlotEntry(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		w := bufio.NewWriter(conn)
		writeFrame(t, w, 42, nil)
		time.Sleep(50 * time.Millisecond)
	}()

	client := New(Config{Addr: ln.Addr().String()})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan SlotEntry, 1)
	go func() {
		_ = client.Subscribe(ctx, func(e SlotEntry) error {
			received <- e
			cancel()
			return nil
		})
	}()

	select {
	case e := <-received:
		assert.Equal(t, uint64(42), e.Slot)
		assert.Empty(t, e.Transactions)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for slot entry")
	}
}

func TestDecodeSlotEntry_ShortPayloadErrors(t *testing.T) {
	_, err := decodeSlotEntry([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrShortFrame)
}

func TestDecodeSlotEntry_TruncatedTransactionErrors(t *testing.T) {
	payload := make([]byte, 12)
	binary.LittleEndian.PutUint64(payload[0:8], 7)
	binary.LittleEndian.PutUint32(payload[8:12], 1)
	// declares one transaction but supplies no bytes for it
	_, err := decodeSlotEntry(payload)
	assert.ErrorIs(t, err, ErrShortFrame)
}
