// Package entrystream is a minimal client for a local shred-stream
// relay ("tcp://host:50051"). Rather than depending on generated gRPC
// stubs for the relay's wire protocol, this client frames the logical
// payload — a slot number plus its versioned transactions — directly
// on a TCP connection with a fixed, length-prefixed binary encoding.
// Each frame:
//
//	uint32 LE   total frame length (excludes itself)
//	uint64 LE   slot
//	uint32 LE   transaction count
//	  repeated:
//	  uint32 LE   transaction byte length
//	  []byte      serialized versioned transaction
//
// Transaction bytes are decoded with gagliardetto/solana-go's own
// wire decoder rather than hand-rolled, so only the framing layer is
// bespoke.
package entrystream

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/bin"
	"github.com/sirupsen/logrus"
)

// MaxFrameSize bounds a single frame so a corrupt length prefix can't
// trigger an unbounded allocation.
const MaxFrameSize = 16 << 20 // 16 MiB

// SlotEntry is one slot's worth of transactions delivered by the
// relay.
type SlotEntry struct {
	Slot         uint64
	Transactions []*solana.Transaction
}

// Config configures a Client.
type Config struct {
	Addr       string
	DialTimeout time.Duration
	Logger     *logrus.Logger
}

// Client subscribes to the shred-stream relay over a single
// long-lived TCP connection.
type Client struct {
	addr        string
	dialTimeout time.Duration
	log         *logrus.Logger
}

// New builds a Client against cfg.Addr.
func New(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	return &Client{addr: cfg.Addr, dialTimeout: cfg.DialTimeout, log: cfg.Logger}
}

// Subscribe dials the relay and invokes handler for each SlotEntry
// until ctx is canceled or the connection drops. handler errors are
// logged and do not stop the stream, since a single bad entry
// shouldn't take down an otherwise healthy subscription.
func (c *Client) Subscribe(ctx context.Context, handler func(SlotEntry) error) error {
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("entrystream: dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	reader := bufio.NewReader(conn)
	for {
		entry, err := readFrame(reader)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("entrystream: read frame: %w", err)
		}
		if err := handler(entry); err != nil {
			c.log.WithError(err).WithField("slot", entry.Slot).Warn("entrystream: handler failed")
		}
	}
}

func readFrame(r *bufio.Reader) (SlotEntry, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return SlotEntry{}, wrapShortRead(err)
	}
	frameLen := binary.LittleEndian.Uint32(lenBuf[:])
	if frameLen > MaxFrameSize {
		return SlotEntry{}, ErrFrameTooLarge
	}

	payload := make([]byte, frameLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return SlotEntry{}, wrapShortRead(err)
	}
	return decodeSlotEntry(payload)
}

func decodeSlotEntry(payload []byte) (SlotEntry, error) {
	if len(payload) < 12 {
		return SlotEntry{}, ErrShortFrame
	}
	slot := binary.LittleEndian.Uint64(payload[0:8])
	count := binary.LittleEndian.Uint32(payload[8:12])
	offset := 12

	txs := make([]*solana.Transaction, 0, count)
	for i := uint32(0); i < count; i++ {
		if offset+4 > len(payload) {
			return SlotEntry{}, ErrShortFrame
		}
		txLen := int(binary.LittleEndian.Uint32(payload[offset : offset+4]))
		offset += 4
		if offset+txLen > len(payload) {
			return SlotEntry{}, ErrShortFrame
		}
		txBytes := payload[offset : offset+txLen]
		offset += txLen

		tx := new(solana.Transaction)
		if err := tx.UnmarshalWithDecoder(bin.NewBinDecoder(txBytes)); err != nil {
			return SlotEntry{}, fmt.Errorf("entrystream: decode transaction %d of slot %d: %w", i, slot, err)
		}
		txs = append(txs, tx)
	}

	return SlotEntry{Slot: slot, Transactions: txs}, nil
}

func wrapShortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrShortFrame
	}
	return err
}
