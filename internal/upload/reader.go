package upload

import (
	"io"
	"sync/atomic"
)

// Reader counts bytes as they are consumed and reports progress.
type Reader struct {
	r      io.Reader
	total  int64
	loaded atomic.Int64
	report func(Progress)
	done   atomic.Bool
}

// NewReader wraps r. A total of zero or less means the size is unknown; the
// final report then uses the byte count observed at EOF.
func NewReader(r io.Reader, total int64, report func(Progress)) *Reader {
	if report == nil {
		report = func(Progress) {}
	}
	return &Reader{r: r, total: total, report: report}
}

func (pr *Reader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		loaded := pr.loaded.Add(int64(n))
		if pr.total > 0 && loaded < pr.total {
			pr.report(Progress{Loaded: loaded, Total: pr.total})
		}
	}
	if err == io.EOF {
		pr.finish()
	}
	return n, err
}

// Loaded returns the number of bytes read so far.
func (pr *Reader) Loaded() int64 {
	return pr.loaded.Load()
}

func (pr *Reader) finish() {
	if !pr.done.CompareAndSwap(false, true) {
		return
	}
	loaded := pr.loaded.Load()
	total := pr.total
	if total <= 0 || loaded > total {
		total = loaded
	}
	if total == 0 {
		total = 1
		loaded = 1
	}
	pr.report(Progress{Loaded: loaded, Total: total})
}
