package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/mbeissinger/vj-looper/log"
)

// Event is an asynchronous notification from mpv, e.g. a client-message raised by an input binding.
type Event struct {
	Name string
	Args []string
}

// EventListener keeps a connection to mpv open and forwards every event it receives.
type EventListener struct {
	socket  string
	handler func(Event)

	mu   sync.Mutex
	conn net.Conn
	done chan struct{}
}

// NewEventListener returns a listener for socket calling handler from its own goroutine.
func NewEventListener(socket string, handler func(Event)) *EventListener {
	return &EventListener{socket: socket, handler: handler}
}

// Start connects and begins forwarding events. Starting a running listener does nothing.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", el.socket)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	el.conn = conn
	el.done = make(chan struct{})
	go el.readLoop(conn, el.done)

	log.WithFields(log.Fields{"socket": el.socket}).Debug("mpv event listener started")
	return nil
}

// Stop closes the connection and waits for the read loop to finish.
func (el *EventListener) Stop() {
	el.mu.Lock()
	conn, done := el.conn, el.done
	el.conn = nil
	el.mu.Unlock()

	if conn == nil {
		return
	}
	_ = conn.Close()
	<-done
}

func (el *EventListener) readLoop(conn net.Conn, done chan<- struct{}) {
	defer close(done)

	lines := bufio.NewScanner(conn)
	for lines.Scan() {
		if event, ok := parseEvent(lines.Bytes()); ok && el.handler != nil {
			el.handler(event)
		}
	}

	if err := lines.Err(); err != nil {
		log.WithFields(log.Fields{"socket": el.socket}).Debugf("event listener stopped: %v", err)
	}
}

// parseEvent decodes one line written by mpv, ignoring command replies.
func parseEvent(line []byte) (Event, bool) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil || msg.Event == "" {
		return Event{}, false
	}
	return Event{Name: msg.Event, Args: msg.Args}, true
}
