package upload

import "io"

// ProgressFunc receives byte-level progress samples during a transfer.
type ProgressFunc func(bytesSent, totalBytes int64)

// ProgressReader wraps an io.Reader and reports cumulative bytes read to a
// callback. The total is fixed up front (the multipart body size is known
// before the request starts); pass 0 when the size is unknown and the
// callback consumer decides what to do with the sample.
type ProgressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	report ProgressFunc
}

// NewProgressReader wraps r. report may be nil, in which case the reader is
// a passthrough.
func NewProgressReader(r io.Reader, total int64, report ProgressFunc) *ProgressReader {
	return &ProgressReader{r: r, total: total, report: report}
}

func (p *ProgressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		if p.report != nil {
			p.report(p.sent, p.total)
		}
	}
	return n, err
}
