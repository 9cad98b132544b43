// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas provides a reference batch.AtlasProvider: a texture page
// divided into uniform square cells, one texture per cell.
//
// A [Grid] answers capacity queries by counting free cells, so WillFit is
// exact and cheap. When a [Source] is configured, admitted textures are
// scaled into their cell of the page image; [Uploader] copies dirty pages
// to GPU textures through the wgpu HAL.
//
// # Usage
//
//	pages := atlas.NewManager(atlas.DefaultConfig(), atlas.WithSource(src))
//	pool := batch.NewPool(batch.WithAtlasFactory(pages.NewPage))
//
//	for _, obj := range frame {
//	    if _, err := pool.Place(obj); err != nil {
//	        return err
//	    }
//	}
//
//	up, err := atlas.NewUploader(device, queue)
//	...
//	err = up.Sync(pages.Pages()...)
//
// Grid guards its own state, so each call is atomic, but a WillFit
// followed by an Admit is not. Serialize that pair when several
// goroutines share one page.
package atlas
