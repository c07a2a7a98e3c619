package logstream

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"time"
)

const pollInterval = time.Second

// Tailer polls a log file and publishes every newly appended line to a
// Stream. It survives rotation: when the file shrinks below the last read
// offset, the tailer resets to the beginning of the new file.
type Tailer struct {
	path   string
	stream *Stream
	offset int64
}

func NewTailer(path string, stream *Stream) *Tailer {
	return &Tailer{path: path, stream: stream}
}

// Run tails the file until the context ends. The initial offset is set to
// the current end of file so subscribers only receive lines appended after
// the tailer starts.
func (t *Tailer) Run(ctx context.Context) {
	if info, err := os.Stat(t.path); err == nil {
		t.offset = info.Size()
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.poll(); err != nil {
				log.Printf("logstream: poll %s: %v", t.path, err)
			}
		}
	}
}

func (t *Tailer) poll() error {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			t.offset = 0
			return nil
		}
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < t.offset {
		// Rotated or truncated.
		t.offset = 0
	}
	if info.Size() == t.offset {
		return nil
	}

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	// Only publish complete lines; keep a trailing partial line for the
	// next poll.
	consumed := bytes.LastIndexByte(buf, '\n')
	if consumed < 0 {
		return nil
	}
	t.offset += int64(consumed + 1)

	for _, line := range bytes.Split(buf[:consumed], []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		t.stream.Publish(string(line))
	}
	return nil
}
