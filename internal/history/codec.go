package history

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
)

// Serialized form: a big-endian int32 count n; then, if n is 0, the rule name
// and bound of a single strategy, otherwise n (rule name, bound) pairs in
// ascending order. Names are written as a big-endian uint16 byte length
// followed by the bytes, bounds as big-endian int32.

// WriteTo serializes the strategy.
func (s NewYearStrategy) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	cw.int32(int32(len(s.bounds)))
	for _, b := range s.parts() {
		cw.string(b.rule.String())
		cw.int32(int32(b.last))
	}
	if cw.err != nil {
		return cw.n, calsys.NewDataFormat(cw.err, config.ErrStrategyWrite)
	}
	return cw.n, nil
}

// ReadStrategy deserializes a strategy written by WriteTo.
func ReadStrategy(r io.Reader) (NewYearStrategy, error) {
	n, err := readInt32(r)
	if err != nil {
		return NewYearStrategy{}, err
	}
	if n < 0 {
		return NewYearStrategy{}, calsys.NewDataFormat(nil, "%s: negative count %d", config.ErrStrategyRead, n)
	}
	if n == 0 {
		return readPart(r)
	}

	parts := make([]NewYearStrategy, 0, min(int(n), len(ruleNames)*8))
	for range n {
		p, err := readPart(r)
		if err != nil {
			return NewYearStrategy{}, err
		}
		parts = append(parts, p)
	}
	s, err := compose(parts)
	if err != nil {
		return NewYearStrategy{}, calsys.NewDataFormat(err, config.ErrStrategyRead)
	}
	return s, nil
}

func readPart(r io.Reader) (NewYearStrategy, error) {
	var size uint16
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return NewYearStrategy{}, readError(err)
	}
	name := make([]byte, size)
	if _, err := io.ReadFull(r, name); err != nil {
		return NewYearStrategy{}, readError(err)
	}
	rule, err := ParseRule(string(name))
	if err != nil {
		return NewYearStrategy{}, calsys.NewDataFormat(err, config.ErrStrategyRead)
	}
	last, err := readInt32(r)
	if err != nil {
		return NewYearStrategy{}, err
	}
	return rule.Until(int(last)), nil
}

func readInt32(r io.Reader) (int32, error) {
	var v int32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, readError(err)
	}
	return v, nil
}

func readError(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return calsys.NewDataFormat(err, config.ErrStrategyRead)
}

// countingWriter keeps the first error so that a sequence of writes can be
// checked once.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) write(p []byte) {
	if c.err != nil {
		return
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
}

func (c *countingWriter) int32(v int32) {
	c.write(binary.BigEndian.AppendUint32(nil, uint32(v)))
}

func (c *countingWriter) string(s string) {
	if len(s) > math.MaxUint16 {
		c.err = calsys.NewArgument("string too long: %d bytes", len(s))
		return
	}
	c.write(binary.BigEndian.AppendUint16(nil, uint16(len(s))))
	c.write([]byte(s))
}
