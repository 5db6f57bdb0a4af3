package bootstrap

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

// poolFileWriter incrementally streams accepted pools into the
// `{"all_pools":[...]}` document shape, writing each record as it
// arrives instead of buffering the full page set in memory first.
type poolFileWriter struct {
	f         *os.File
	w         *bufio.Writer
	wroteOne  bool
	poolCount int
}

func newPoolFileWriter(path string) (*poolFileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrWriteFailed, path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(`{"all_pools":[`); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return &poolFileWriter{f: f, w: w}, nil
}

func (pw *poolFileWriter) WritePool(pool pooldata.PoolInfo) error {
	if pw.wroteOne {
		if _, err := pw.w.WriteString(","); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}
	data, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("%w: marshal pool: %v", ErrWriteFailed, err)
	}
	if _, err := pw.w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	pw.wroteOne = true
	pw.poolCount++
	return nil
}

func (pw *poolFileWriter) Close() error {
	if _, err := pw.w.WriteString(`]}`); err != nil {
		pw.f.Close()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := pw.w.Flush(); err != nil {
		pw.f.Close()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return pw.f.Close()
}
