// Package portaudio is an alternate audio device client for hosts where
// miniaudio is unavailable. It serves the same capture/playback contract
// through a single duplex PortAudio stream.
package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/krishisetu/sakhi-core/core/audio"
)

type Client struct {
	bufferSize    int
	stream        *portaudio.Stream
	leftoverAudio []byte

	in  []int16
	out []int16
}

func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 1, audio.DefaultSampleRate, bufferSize, in, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
		out:        out,
	}, nil
}

// Stream reads microphone audio until the context is cancelled, delivering
// little-endian PCM16 chunks to onAudio.
func (c *Client) Stream(ctx context.Context, onAudio func(audio []byte)) error {
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := c.stream.Read(); err != nil {
				return fmt.Errorf("failed to read from portaudio stream: %w", err)
			}

			audioBuffer := bytes.Buffer{}
			if err := binary.Write(&audioBuffer, binary.LittleEndian, c.in); err != nil {
				return fmt.Errorf("failed to encode captured audio: %w", err)
			}
			onAudio(audioBuffer.Bytes())
		}
	}
}

// SendAudio queues synthesized speech on the duplex stream, writing it out
// in bufferSize batches and carrying the remainder to the next call.
func (c *Client) SendAudio(speech []byte) error {
	batch := c.bufferSize * 2

	speech = append(c.leftoverAudio, speech...)
	whole := len(speech) / batch * batch
	for offset := 0; offset < whole; offset += batch {
		if err := binary.Read(bytes.NewReader(speech[offset:offset+batch]), binary.LittleEndian, c.out); err != nil {
			return fmt.Errorf("failed to decode speech audio: %w", err)
		}
		if err := c.stream.Write(); err != nil {
			return fmt.Errorf("failed to write to portaudio stream: %w", err)
		}
	}
	c.leftoverAudio = append(c.leftoverAudio[:0], speech[whole:]...)

	return nil
}

func (c *Client) ClearBuffer() {
	c.leftoverAudio = nil
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (c *Client) Close() {
	_ = c.stream.Close()
	_ = portaudio.Terminate()
}
