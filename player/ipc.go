package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcRequest is one newline-delimited JSON command sent to mpv's IPC socket.
type ipcRequest struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// ipcMessage is anything mpv writes back: replies carry request_id, events carry event.
type ipcMessage struct {
	Data      any      `json:"data"`
	Error     string   `json:"error"`
	RequestID int64    `json:"request_id"`
	Event     string   `json:"event"`
	Args      []string `json:"args"`
}

const (
	ipcRetries  = 3
	ipcBackoff  = 100 * time.Millisecond
	ipcDeadline = time.Second
)

var requestIDs atomic.Int64

// IPC is a client of one mpv JSON-IPC socket. Each command uses its own connection.
type IPC struct {
	socket string
}

// Command sends command and returns the reply data, retrying transient connection failures.
func (c IPC) Command(command ...any) (any, error) {
	var lastErr error

	for attempt := range ipcRetries {
		if attempt > 0 {
			time.Sleep(ipcBackoff)
		}

		data, err := c.roundTrip(command)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc %v: %w", command, lastErr)
}

func (c IPC) roundTrip(command []any) (any, error) {
	conn, err := net.DialTimeout("unix", c.socket, ipcDeadline)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(ipcDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	id := requestIDs.Add(1)
	payload, err := json.Marshal(ipcRequest{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	// mpv broadcasts events to every client, so skip lines until our reply shows up.
	lines := bufio.NewScanner(conn)
	for lines.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(lines.Bytes(), &msg); err != nil {
			continue
		}
		if msg.Event != "" || msg.RequestID != id {
			continue
		}
		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", msg.Error)
		}
		return msg.Data, nil
	}

	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, fmt.Errorf("read: connection closed before reply")
}
