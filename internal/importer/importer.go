// Package importer bulk-loads catalog records from a semicolon-delimited source file.
//
// The source has two header lines (column names, column types) followed by one record
// per line with 16 positional fields. Rows are committed one at a time: a row that does
// not parse is logged and skipped, and rows written before a storage failure stay written.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"

	"github.com/sirupsen/logrus"
)

const fieldCount = 16

// ErrSourceMissing is returned when the source file does not exist. Nothing is written.
var ErrSourceMissing = errors.New("import source not found")

// Writer persists one record.
type Writer interface {
	Create(ctx context.Context, c dom.Cereal) (dom.Cereal, error)
}

// ImageMatcher finds the image file for a product name.
type ImageMatcher interface {
	Match(name string) (string, bool)
}

// Result summarizes one run.
type Result struct {
	Imported int
	Skipped  int
}

type Importer struct {
	w      Writer
	images ImageMatcher
	log    logrus.FieldLogger
}

// New returns an Importer. images may be nil, in which case no image is matched.
func New(w Writer, images ImageMatcher, log logrus.FieldLogger) *Importer {
	return &Importer{w: w, images: images, log: log}
}

// Run imports the file at path.
func (im *Importer) Run(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return Result{}, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	return im.Import(ctx, f)
}

// Import reads records from r.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	for i := 0; i < 2; i++ {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return Result{}, fmt.Errorf("source has no header lines")
			}
			return Result{}, fmt.Errorf("read header: %w", err)
		}
	}

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				im.log.WithError(err).WithField("line", perr.StartLine).Warn("skipping row")
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("read source: %w", err)
		}
		line, _ := cr.FieldPos(0)

		c, err := ParseRow(record)
		if err != nil {
			im.log.WithError(err).WithField("line", line).Warn("skipping row")
			res.Skipped++
			continue
		}
		if im.images != nil {
			if file, ok := im.images.Match(c.Name); ok {
				c.ImagePath = &file
			}
		}
		if _, err := im.w.Create(ctx, c); err != nil {
			return res, fmt.Errorf("line %d: store %q: %w", line, c.Name, err)
		}
		res.Imported++
	}
	return res, nil
}

// ParseRow converts the 16 positional fields of a data line into a record.
// The rating column has its decimal point removed, not interpreted:
// "34.384843" becomes 34384843.
func ParseRow(fields []string) (dom.Cereal, error) {
	if len(fields) < fieldCount {
		return dom.Cereal{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	p := rowParser{fields: fields}
	c := dom.Cereal{
		Name:     strings.TrimSpace(fields[0]),
		Mfr:      strings.TrimSpace(fields[1]),
		Type:     strings.TrimSpace(fields[2]),
		Calories: p.int(3, "calories"),
		Protein:  p.int(4, "protein"),
		Fat:      p.int(5, "fat"),
		Sodium:   p.int(6, "sodium"),
		Fiber:    p.float(7, "fiber"),
		Carbo:    p.float(8, "carbo"),
		Sugars:   p.int(9, "sugars"),
		Potass:   p.int(10, "potass"),
		Vitamins: p.int(11, "vitamins"),
		Shelf:    p.int(12, "shelf"),
		Weight:   p.float(13, "weight"),
		Cups:     p.float(14, "cups"),
	}
	rating := strings.ReplaceAll(fields[15], ".", "")
	c.Rating = p.parseFloat(rating, "rating")
	if p.err != nil {
		return dom.Cereal{}, p.err
	}
	for _, txt := range []struct{ name, v string }{{"name", c.Name}, {"mfr", c.Mfr}, {"type", c.Type}} {
		if utf8.RuneCountInString(txt.v) > dom.MaxTextLen {
			return dom.Cereal{}, fmt.Errorf("%s: longer than %d characters", txt.name, dom.MaxTextLen)
		}
	}
	return c, nil
}

// rowParser keeps the first conversion error.
type rowParser struct {
	fields []string
	err    error
}

func (p *rowParser) int(i int, name string) int {
	if p.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(p.fields[i]), 10, 32)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return int(n)
}

func (p *rowParser) float(i int, name string) float64 {
	return p.parseFloat(p.fields[i], name)
}

func (p *rowParser) parseFloat(s, name string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}
