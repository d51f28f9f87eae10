// Package pagestore manages sector-aligned pages inside one backing file.
//
// Pages are handed out by a monotonic allocator and never reused. Writes are
// buffered per page until the page is flushed; reads see buffered bytes first.
package pagestore

import (
	"io"
	"math"
	"sort"
	"sync"

	"github.com/hexbee-net/cstable/internal/metrics"
	"github.com/hexbee-net/errors"
	"go.uber.org/zap"
)

// SectorSize is the default allocation granularity.
const SectorSize = 512

const (
	ErrShortRead    = errors.Error("short read")
	ErrShortWrite   = errors.Error("short write")
	ErrPageOverflow = errors.Error("page overflow")
	ErrPageTooLarge = errors.Error("page too large")

	errReadOnly        = errors.Error("backing is read-only")
	errInvalidSector   = errors.Error("invalid sector size")
	errNilBacking      = errors.Error("backing is nil")
	errPageUnallocated = errors.Error("page is not allocated")
)

// PageRef locates a page inside the backing file.
type PageRef struct {
	Offset uint64
	Size   uint32
}

// End returns the offset just past the page.
func (p PageRef) End() uint64 {
	return p.Offset + uint64(p.Size)
}

// Store allocates, buffers and persists pages. It is safe for concurrent use.
type Store struct {
	backing    io.ReaderAt
	sectorSize uint64
	logger     *zap.Logger

	mu        sync.Mutex
	watermark uint64
	allocated map[uint64]uint32
	buffers   map[uint64][]byte
	persisted map[uint64]struct{}
}

type Option func(*Store) error

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) error {
		if logger != nil {
			s.logger = logger
		}

		return nil
	}
}

// WithSectorSize changes the allocation granularity. It must be a power of two.
func WithSectorSize(size uint32) Option {
	return func(s *Store) error {
		if size == 0 || size&(size-1) != 0 {
			return errors.WithFields(
				errors.WithStack(errInvalidSector),
				errors.Fields{
					"sector-size": size,
				})
		}

		s.sectorSize = uint64(size)

		return nil
	}
}

// New returns a store over backing. Pages can only be flushed when backing
// also implements io.WriterAt.
func New(backing io.ReaderAt, opts ...Option) (*Store, error) {
	if backing == nil {
		return nil, errors.WithStack(errNilBacking)
	}

	s := &Store{
		backing:    backing,
		sectorSize: SectorSize,
		logger:     zap.NewNop(),
		allocated:  make(map[uint64]uint32),
		buffers:    make(map[uint64][]byte),
		persisted:  make(map[uint64]struct{}),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SectorSize returns the allocation granularity of the store.
func (s *Store) SectorSize() uint32 {
	return uint32(s.sectorSize)
}

// Watermark returns the offset of the next allocation.
func (s *Store) Watermark() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.watermark
}

// Alloc reserves a page of at least size bytes, rounded up to the sector size.
// The rounded size must fit the 32 bits of PageRef.Size.
func (s *Store) Alloc(size uint64) (PageRef, error) {
	if size > math.MaxUint32 {
		return PageRef{}, pageTooLarge(size)
	}

	n := (size + s.sectorSize - 1) / s.sectorSize * s.sectorSize
	if n == 0 {
		n = s.sectorSize
	}

	if n > math.MaxUint32 {
		return PageRef{}, pageTooLarge(size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page := PageRef{
		Offset: s.watermark,
		Size:   uint32(n),
	}

	s.watermark += n
	s.allocated[page.Offset] = page.Size

	metrics.PagesAllocated.Inc()

	return page, nil
}

func pageTooLarge(size uint64) error {
	return errors.WithFields(
		errors.WithStack(ErrPageTooLarge),
		errors.Fields{
			"size": size,
			"max":  uint64(math.MaxUint32),
		})
}

// Write copies data into the buffer of page at position at.
func (s *Store) Write(page PageRef, at uint32, data []byte) error {
	if uint64(at)+uint64(len(data)) > uint64(page.Size) {
		return errors.WithFields(
			errors.WithStack(ErrPageOverflow),
			errors.Fields{
				"page-offset": page.Offset,
				"page-size":   page.Size,
				"at":          at,
				"length":      len(data),
			})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if size, ok := s.allocated[page.Offset]; !ok || size != page.Size {
		return errors.WithFields(
			errors.WithStack(errPageUnallocated),
			errors.Fields{
				"page-offset": page.Offset,
				"page-size":   page.Size,
			})
	}

	buf, ok := s.buffers[page.Offset]
	if !ok {
		buf = make([]byte, page.Size)

		if _, ok := s.persisted[page.Offset]; ok {
			if err := s.readBacking(page, buf); err != nil {
				return err
			}
		}

		s.buffers[page.Offset] = buf
	}

	copy(buf[at:], data)

	return nil
}

// Flush persists the buffer of page and evicts it. Flushing a page without
// pending writes is a no-op.
func (s *Store) Flush(page PageRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flush(page.Offset)
}

// FlushAll persists every buffered page in offset order.
func (s *Store) FlushAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offsets := make([]uint64, 0, len(s.buffers))
	for off := range s.buffers {
		offsets = append(offsets, off)
	}

	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	for _, off := range offsets {
		if err := s.flush(off); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) flush(offset uint64) error {
	buf, ok := s.buffers[offset]
	if !ok {
		return nil
	}

	w, ok := s.backing.(io.WriterAt)
	if !ok {
		return errors.WithStack(errReadOnly)
	}

	n, err := w.WriteAt(buf, int64(offset))
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to write page"),
			errors.Fields{
				"page-offset": offset,
			})
	}

	if n != len(buf) {
		return errors.WithFields(
			errors.WithStack(ErrShortWrite),
			errors.Fields{
				"page-offset": offset,
				"expected":    len(buf),
				"actual":      n,
			})
	}

	delete(s.buffers, offset)
	s.persisted[offset] = struct{}{}

	metrics.BytesFlushed.Add(float64(n))
	s.logger.Debug("page flushed",
		zap.Uint64("offset", offset),
		zap.Int("size", n))

	return nil
}

// Read returns the content of page, from its buffer when resident.
func (s *Store) Read(page PageRef) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if buf, ok := s.buffers[page.Offset]; ok && len(buf) == int(page.Size) {
		metrics.PageReads.WithLabelValues(metrics.OriginBuffer).Inc()

		out := make([]byte, len(buf))
		copy(out, buf)

		return out, nil
	}

	buf := make([]byte, page.Size)
	if err := s.readBacking(page, buf); err != nil {
		return nil, err
	}

	metrics.PageReads.WithLabelValues(metrics.OriginBacking).Inc()

	return buf, nil
}

func (s *Store) readBacking(page PageRef, buf []byte) error {
	n, err := s.backing.ReadAt(buf, int64(page.Offset))
	if n == len(buf) {
		return nil
	}

	if err != nil && err != io.EOF {
		return errors.WithFields(
			errors.Wrap(err, "failed to read page"),
			errors.Fields{
				"page-offset": page.Offset,
			})
	}

	return errors.WithFields(
		errors.WithStack(ErrShortRead),
		errors.Fields{
			"page-offset": page.Offset,
			"expected":    len(buf),
			"actual":      n,
		})
}
