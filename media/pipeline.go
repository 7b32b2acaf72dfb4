// Package media validates, previews and packages user-selected files prior
// to report submission.
package media

import (
	"encoding/base64"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/sautiwatch/ireporter-core/models"
)

// Pipeline owns the pending-asset list between file selection and a
// successful submission. Validation happens before any preview work;
// previews are derived asynchronously, so assets may appear in the pending
// list slightly after selection, in acceptance order.
type Pipeline struct {
	maxBytes int64
	maxCount int

	mu       sync.Mutex
	nextSeq  int
	pending  []entry
	onChange func([]models.PendingAsset)

	wg sync.WaitGroup
}

type entry struct {
	seq   int
	asset models.PendingAsset
}

// New initializes a pipeline with the given size and count limits
func New(maxBytes int64, maxCount int) *Pipeline {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	if maxCount <= 0 {
		maxCount = 4
	}
	return &Pipeline{maxBytes: maxBytes, maxCount: maxCount}
}

// OnChange registers a callback invoked with a fresh snapshot whenever an
// asset is added or removed
func (p *Pipeline) OnChange(fn func([]models.PendingAsset)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Ingest validates a selected file and, when accepted, schedules preview
// derivation. The size gate runs before the kind gate and both run before
// any preview work is spent on the file.
func (p *Pipeline) Ingest(name, contentType string, data []byte) error {
	if int64(len(data)) > p.maxBytes {
		return models.NewValidationError(models.CodeFileTooLarge,
			fmt.Sprintf("%s exceeds the %d byte limit", name, p.maxBytes))
	}
	kind := models.KindOf(contentType)
	if kind == models.MediaUnknown {
		return models.NewValidationError(models.CodeUnsupportedType,
			fmt.Sprintf("%s files are not supported", contentType))
	}

	p.mu.Lock()
	seq := p.nextSeq
	p.nextSeq++
	p.mu.Unlock()

	asset := models.PendingAsset{
		Name:        name,
		ContentType: contentType,
		Kind:        kind,
		Size:        int64(len(data)),
		Data:        data,
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		asset.Preview = dataURI(contentType, data)
		p.append(seq, asset)
		zap.S().Debugw("media asset accepted",
			"name", name,
			"kind", kind,
			"size", asset.Size,
		)
	}()
	return nil
}

// append inserts by sequence number so acceptance order survives previews
// finishing out of order
func (p *Pipeline) append(seq int, asset models.PendingAsset) {
	p.mu.Lock()
	i := sort.Search(len(p.pending), func(i int) bool { return p.pending[i].seq > seq })
	p.pending = append(p.pending, entry{})
	copy(p.pending[i+1:], p.pending[i:])
	p.pending[i] = entry{seq: seq, asset: asset}
	snapshot := p.snapshotLocked()
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Remove drops the pending asset at index i. Out-of-range indexes are
// ignored, so removing the same asset twice is a no-op the second time.
func (p *Pipeline) Remove(i int) {
	p.mu.Lock()
	if i < 0 || i >= len(p.pending) {
		p.mu.Unlock()
		return
	}
	p.pending = append(p.pending[:i], p.pending[i+1:]...)
	snapshot := p.snapshotLocked()
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Pending returns a snapshot of the pending assets in acceptance order
func (p *Pipeline) Pending() []models.PendingAsset {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Reset discards every pending asset. Called after a submission settles,
// successfully or not.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	p.pending = nil
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}

// Wait blocks until previews for every accepted asset have settled
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// PayloadParts packages the pending assets for transmission. Every asset
// maps to the same images field regardless of kind; the kind classification
// stays client-side. A list over the configured maximum is rejected before
// any network call can happen.
func (p *Pipeline) PayloadParts() ([]models.FormPart, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pending) > p.maxCount {
		return nil, models.NewValidationError(models.CodeTooManyMediaFiles,
			fmt.Sprintf("cannot attach more than %d files", p.maxCount))
	}
	parts := make([]models.FormPart, 0, len(p.pending))
	for _, e := range p.pending {
		parts = append(parts, models.FormPart{
			Field:       "images",
			Filename:    e.asset.Name,
			ContentType: e.asset.ContentType,
			Data:        e.asset.Data,
		})
	}
	return parts, nil
}

func (p *Pipeline) snapshotLocked() []models.PendingAsset {
	out := make([]models.PendingAsset, 0, len(p.pending))
	for _, e := range p.pending {
		out = append(out, e.asset)
	}
	return out
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
