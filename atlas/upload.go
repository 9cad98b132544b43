// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batch"
)

// pageTexture is the GPU copy of one page.
type pageTexture struct {
	tex  hal.Texture
	view hal.TextureView
}

// Uploader copies dirty grid pages to GPU textures.
//
// Uploader is safe for concurrent use.
type Uploader struct {
	mu       sync.Mutex
	device   hal.Device
	queue    hal.Queue
	textures map[*Grid]*pageTexture
	closed   bool
}

// NewUploader creates an uploader on the given device and queue.
func NewUploader(device hal.Device, queue hal.Queue) (*Uploader, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	return &Uploader{
		device:   device,
		queue:    queue,
		textures: make(map[*Grid]*pageTexture),
	}, nil
}

// NewUploaderFromProvider creates an uploader on a host application's
// shared device. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewUploaderFromProvider(provider gpucontext.DeviceProvider) (*Uploader, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return NewUploader(device, queue)
}

// Sync uploads every dirty page, creating its texture on first use, and
// marks it clean. Clean pages are skipped.
func (u *Uploader) Sync(pages ...*Grid) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return ErrUploaderClosed
	}

	for _, g := range pages {
		if g == nil || !g.IsDirty() {
			continue
		}
		pt, err := u.ensureTexture(g)
		if err != nil {
			return err
		}

		cfg := g.Config()
		size := uint32(cfg.Size) //nolint:gosec // validated to at most 8192
		data := g.Pixels()
		if cfg.Format == gputypes.TextureFormatBGRA8Unorm {
			rgbaToBGRA(data)
		}

		u.queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  pt.tex,
				MipLevel: 0,
			},
			data,
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  size * 4,
				RowsPerImage: size,
			},
			&hal.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
		)
		g.MarkClean()
	}
	return nil
}

// ensureTexture returns the page texture, creating it if needed.
// Must be called with u.mu held.
func (u *Uploader) ensureTexture(g *Grid) (*pageTexture, error) {
	if pt, ok := u.textures[g]; ok {
		return pt, nil
	}

	cfg := g.Config()
	size := uint32(cfg.Size) //nolint:gosec // validated to at most 8192

	tex, err := u.device.CreateTexture(&hal.TextureDescriptor{
		Label:         g.Label(),
		Size:          hal.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cfg.Format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: failed to create texture %s: %w", g.Label(), err)
	}

	view, err := u.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         g.Label() + "_view",
		Format:        cfg.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("atlas: failed to create texture view %s: %w", g.Label(), err)
	}

	pt := &pageTexture{tex: tex, view: view}
	u.textures[g] = pt

	batch.Logger().Info("atlas: page texture created",
		"label", g.Label(), "size", cfg.Size, "format", cfg.Format)
	return pt, nil
}

// rgbaToBGRA swaps the red and blue channels in place.
func rgbaToBGRA(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// View returns the texture view of an uploaded page, or nil.
func (u *Uploader) View(g *Grid) hal.TextureView {
	u.mu.Lock()
	defer u.mu.Unlock()
	if pt, ok := u.textures[g]; ok {
		return pt.view
	}
	return nil
}

// TextureCount returns the number of page textures held.
func (u *Uploader) TextureCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.textures)
}

// Release destroys the GPU texture of one page.
func (u *Uploader) Release(g *Grid) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if pt, ok := u.textures[g]; ok {
		u.destroy(pt)
		delete(u.textures, g)
	}
}

// destroy releases a page texture. Must be called with u.mu held.
func (u *Uploader) destroy(pt *pageTexture) {
	if pt.view != nil {
		u.device.DestroyTextureView(pt.view)
	}
	if pt.tex != nil {
		u.device.DestroyTexture(pt.tex)
	}
}

// Close releases every page texture. Sync fails afterwards.
func (u *Uploader) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return
	}
	for g, pt := range u.textures {
		u.destroy(pt)
		delete(u.textures, g)
	}
	u.closed = true
}
