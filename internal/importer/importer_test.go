package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
	"github.com/DennisRussell0/cereal-api/internal/images"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "name;mfr;type;calories;protein;fat;sodium;fiber;carbo;sugars;potass;vitamins;shelf;weight;cups;rating\n" +
	"String;Categorical;Categorical;Int;Int;Int;Int;Float;Float;Int;Int;Int;Int;Float;Float;Float\n"

type memWriter struct {
	rows []dom.Cereal
	err  error
	// failAt makes the n-th Create (1-based) fail.
	failAt int
}

func (w *memWriter) Create(_ context.Context, c dom.Cereal) (dom.Cereal, error) {
	if w.failAt > 0 && len(w.rows)+1 == w.failAt {
		return dom.Cereal{}, w.err
	}
	c.ID = int64(len(w.rows) + 1)
	w.rows = append(w.rows, c)
	return c, nil
}

func newImporter(w Writer, m ImageMatcher) (*Importer, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	return New(w, m, log), hook
}

func TestImport_ParsesRows(t *testing.T) {
	src := header +
		"100% Bran;N;C;70;4;1;130;10;5;6;280;25;3;1;0.33;68.402973\n" +
		" Trix ;G;C;110;1;1;140;0.0;13;12;25;25;2;1;1;27.753301\n"
	w := &memWriter{}
	im, hook := newImporter(w, nil)

	res, err := im.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2}, res)
	assert.Empty(t, hook.AllEntries())

	require.Len(t, w.rows, 2)
	bran := w.rows[0]
	assert.Equal(t, "100% Bran", bran.Name)
	assert.Equal(t, "N", bran.Mfr)
	assert.Equal(t, "C", bran.Type)
	assert.Equal(t, 70, bran.Calories)
	assert.Equal(t, 280, bran.Potass)
	assert.Equal(t, 10.0, bran.Fiber)
	assert.Equal(t, 0.33, bran.Cups)
	assert.Nil(t, bran.ImagePath)

	assert.Equal(t, "Trix", w.rows[1].Name)
}

func TestImport_RatingDropsDecimalPoint(t *testing.T) {
	c, err := ParseRow(strings.Split("All-Bran;K;C;70;4;1;260;9;7;5;320;25;3;1;0.33;59.425505", ";"))
	require.NoError(t, err)
	assert.Equal(t, 59425505.0, c.Rating)

	c, err = ParseRow(strings.Split("X;K;C;70;4;1;260;9;7;5;320;25;3;1;0.33;60", ";"))
	require.NoError(t, err)
	assert.Equal(t, 60.0, c.Rating)
}

func TestImport_SkipsMalformedRows(t *testing.T) {
	src := header +
		"Kix;G;C;110;2;1;260;0;21;3;40;25;2;1;1.5;39.241114\n" +
		"Bad;G;C;lots;2;1;260;0;21;3;40;25;2;1;1.5;39.241114\n" +
		"Short;G;C;110\n" +
		"Huge;G;C;110;2;1;99999999999;0;21;3;40;25;2;1;1.5;39.241114\n" +
		"Life;Q;C;100;4;2;150;2;12;6;95;25;2;1;0.67;45.328074\n"
	w := &memWriter{}
	im, hook := newImporter(w, nil)

	res, err := im.Import(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2, Skipped: 3}, res)
	require.Len(t, w.rows, 2)
	assert.Equal(t, "Kix", w.rows[0].Name)
	assert.Equal(t, "Life", w.rows[1].Name)

	warnings := hook.AllEntries()
	require.Len(t, warnings, 3)
	assert.Equal(t, logrus.WarnLevel, warnings[0].Level)
	assert.Equal(t, 4, warnings[0].Data["line"])
	assert.Equal(t, 5, warnings[1].Data["line"])
	assert.Equal(t, 6, warnings[2].Data["line"])
}

func TestParseRow_RejectsLongText(t *testing.T) {
	long := strings.Repeat("x", dom.MaxTextLen+1)
	_, err := ParseRow(strings.Split(long+";K;C;70;4;1;260;9;7;5;320;25;3;1;0.33;59.425505", ";"))
	assert.Error(t, err)

	_, err = ParseRow(strings.Split("X;"+long+";C;70;4;1;260;9;7;5;320;25;3;1;0.33;59.425505", ";"))
	assert.Error(t, err)
}

func TestImport_HeaderOnly(t *testing.T) {
	w := &memWriter{}
	im, _ := newImporter(w, nil)

	res, err := im.Import(context.Background(), strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Empty(t, w.rows)
}

func TestImport_MissingHeader(t *testing.T) {
	im, _ := newImporter(&memWriter{}, nil)

	_, err := im.Import(context.Background(), strings.NewReader("name;mfr\n"))
	assert.Error(t, err)
}

func TestImport_StoreErrorKeepsEarlierRows(t *testing.T) {
	src := header +
		"Kix;G;C;110;2;1;260;0;21;3;40;25;2;1;1.5;39.241114\n" +
		"Life;Q;C;100;4;2;150;2;12;6;95;25;2;1;0.67;45.328074\n" +
		"Trix;G;C;110;1;1;140;0.0;13;12;25;25;2;1;1;27.753301\n"
	boom := errors.New("disk full")
	w := &memWriter{failAt: 2, err: boom}
	im, _ := newImporter(w, nil)

	res, err := im.Import(context.Background(), strings.NewReader(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 1, res.Imported)
	require.Len(t, w.rows, 1)
	assert.Equal(t, "Kix", w.rows[0].Name)
}

func TestRun_MatchesImages(t *testing.T) {
	dir := t.TempDir()
	imgDir := filepath.Join(dir, "images")
	require.NoError(t, os.Mkdir(imgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "Raisin_Bran.png"), []byte("png"), 0o644))

	src := filepath.Join(dir, "Cereal.csv")
	require.NoError(t, os.WriteFile(src, []byte(header+
		"Raisin Bran!;K;C;120;3;1;210;5;14;12;240;25;2;1.33;0.75;39.259197\n"+
		"Kix;G;C;110;2;1;260;0;21;3;40;25;2;1;1.5;39.241114\n"), 0o644))

	idx, err := images.LoadIndex(imgDir)
	require.NoError(t, err)

	w := &memWriter{}
	im, _ := newImporter(w, idx)
	res, err := im.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	require.NotNil(t, w.rows[0].ImagePath)
	assert.Equal(t, "Raisin_Bran.png", *w.rows[0].ImagePath)
	assert.Nil(t, w.rows[1].ImagePath)
}

func TestRun_MissingSource(t *testing.T) {
	w := &memWriter{}
	im, _ := newImporter(w, nil)

	_, err := im.Run(context.Background(), filepath.Join(t.TempDir(), "Cereal.csv"))
	assert.True(t, errors.Is(err, ErrSourceMissing))
	assert.Empty(t, w.rows)
}

func TestImport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := &memWriter{}
	im, _ := newImporter(w, nil)

	_, err := im.Import(ctx, strings.NewReader(header+"Kix;G;C;110;2;1;260;0;21;3;40;25;2;1;1.5;39.241114\n"))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, w.rows)
}
