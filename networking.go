package main

import (
	"net"
	"sync"
)

// NewPipeListener returns both ends of an in-memory connection. The listener
// yields the server end once from Accept, then blocks until closed.
func NewPipeListener() (client net.Conn, listener net.Listener) {
	clientPipe, listenerPipe := net.Pipe()

	l := &pipeListener{
		conns: make(chan net.Conn, 1),
		done:  make(chan struct{}),
		addr:  listenerPipe.LocalAddr(),
	}
	l.conns <- listenerPipe

	return clientPipe, l
}

type pipeListener struct {
	conns chan net.Conn
	done  chan struct{}
	once  sync.Once
	addr  net.Addr
}

func (p *pipeListener) Accept() (net.Conn, error) {
	select {
	case <-p.done:
		return nil, net.ErrClosed
	default:
	}

	select {
	case conn := <-p.conns:
		return conn, nil
	case <-p.done:
		return nil, net.ErrClosed
	}
}

func (p *pipeListener) Close() error {
	p.once.Do(func() {
		close(p.done)
	})
	return nil
}

func (p *pipeListener) Addr() net.Addr {
	return p.addr
}
