package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/charmbracelet/log"
)

// tcpConn frames snapshots with a 4-byte length and reads fixed-size commands
type tcpConn struct {
	conn net.Conn
	hdr  [LengthPrefixSize]byte
}

func newTCPConn(conn net.Conn) *tcpConn {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return &tcpConn{conn: conn}
}

func (t *tcpConn) WriteState(state []byte) error {
	if len(state) > MaxStateSize {
		return fmt.Errorf("state of %d bytes exceeds limit", len(state))
	}
	binary.BigEndian.PutUint32(t.hdr[:], uint32(len(state)))
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	bufs := net.Buffers{t.hdr[:], state}
	_, err := bufs.WriteTo(t.conn)
	return err
}

func (t *tcpConn) ReadCommand() ([]byte, error) {
	frame := make([]byte, CommandFrameSize)
	if _, err := io.ReadFull(t.conn, frame); err != nil {
		return nil, err
	}
	return frame, nil
}

func (t *tcpConn) Refuse(reason string) {
	_ = t.WriteState(EncodeNotice(reason))
	t.conn.Close()
}

func (t *tcpConn) Close() error {
	return t.conn.Close()
}

func (t *tcpConn) RemoteIP() string {
	host, _, err := net.SplitHostPort(t.conn.RemoteAddr().String())
	if err != nil {
		return t.conn.RemoteAddr().String()
	}
	return host
}

// ServeTCP accepts players on ln until ctx is cancelled
func ServeTCP(ctx context.Context, ln net.Listener, hub *Hub, logger *log.Logger) error {
	logger = logger.With("component", "tcp")
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	logger.Info("listening", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				logger.Warn("accept error", "err", err)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		if _, err := hub.Admit(ctx, newTCPConn(conn)); err != nil {
			logger.Debug("admission failed", "remote", conn.RemoteAddr().String(), "err", err)
		}
	}
}
