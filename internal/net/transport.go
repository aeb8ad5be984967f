package net

import (
	"fmt"
	"io"
	"net"
	"time"
)

// Conn is one client byte stream. *net.TCPConn and net.Pipe ends satisfy it.
type Conn interface {
	io.ReadWriteCloser
	RemoteAddr() net.Addr
	SetWriteDeadline(t time.Time) error
}

// Listener accepts client streams.
type Listener interface {
	Accept() (Conn, error)
	Close() error
	Addr() net.Addr
}

type tcpListener struct {
	ln *net.TCPListener
}

// ListenTCP opens the game's listening socket. Accepted connections have
// Nagle's algorithm disabled; snapshots are small and latency bound.
func ListenTCP(addr string) (Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	ln, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &tcpListener{ln: ln}, nil
}

func (l *tcpListener) Accept() (Conn, error) {
	c, err := l.ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err := c.SetNoDelay(true); err != nil {
		c.Close()
		return nil, fmt.Errorf("set nodelay: %w", err)
	}
	return c, nil
}

func (l *tcpListener) Close() error   { return l.ln.Close() }
func (l *tcpListener) Addr() net.Addr { return l.ln.Addr() }
