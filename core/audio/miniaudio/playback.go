package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/krishisetu/sakhi-core/core/audio"
)

type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	queued       []byte
	drainWaiters []drainWaiter

	mu      sync.Mutex
	audioMu sync.Mutex
}

// drainWaiter fires once the playhead passes the queue position it was
// registered at.
type drainWaiter struct {
	position int
	callback func()
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sampleRate := uint32(audio.DefaultSampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	c.config.Periods = 4

	c.audioContext = audioContext

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.processAudio(bytesPerFrame)},
	); err != nil {
		return err
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	c.ClearBuffer()
	return nil
}

func (c *playbackClient) SendAudio(audio []byte) error {
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.queued = append(c.queued, audio...)
	return nil
}

func (c *playbackClient) NotifyDrained(callback func()) {
	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.drainWaiters = append(c.drainWaiters, drainWaiter{
		position: len(c.queued),
		callback: callback,
	})
}

func (c *playbackClient) ClearBuffer() {
	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.queued = nil
	c.drainWaiters = nil
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	c.device.Uninit()
	c.device = nil

	return nil
}

func (c *playbackClient) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount) * bytesPerFrame

		c.audioMu.Lock()
		consumed := min(need, len(c.queued))
		copy(pOutput, c.queued[:consumed])
		c.queued = c.queued[consumed:]
		fired := c.advanceWaiters(consumed)
		c.audioMu.Unlock()

		if len(fired) > 0 {
			go func() {
				for _, waiter := range fired {
					waiter.callback()
				}
			}()
		}
	}
}

// advanceWaiters must be called with audioMu held.
func (c *playbackClient) advanceWaiters(consumed int) []drainWaiter {
	passed := 0
	for i, waiter := range c.drainWaiters {
		if waiter.position > consumed {
			c.drainWaiters[i].position -= consumed
		} else {
			passed++
		}
	}
	if passed == 0 {
		return nil
	}
	fired := make([]drainWaiter, passed)
	copy(fired, c.drainWaiters[:passed])
	c.drainWaiters = c.drainWaiters[passed:]
	return fired
}
