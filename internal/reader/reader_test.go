package reader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/csvcat/internal/dataset"
)

const phonesCSV = `name,brand,price,rating
iphone 15 pro,apple,999,4.9
galaxy s23 ultra,samsung,1199,4.8
redmi note 12,xiaomi,199,4.6
poco x5 pro,xiaomi,299,4.4
`

// writeFile writes content into a temporary file and returns its path
func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func assertPhones(t *testing.T, ds *dataset.Dataset) {
	t.Helper()
	require.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"name", "brand", "price", "rating"}, ds.Headers)
	assert.Equal(t, dataset.Row{"name": "iphone 15 pro", "brand": "apple", "price": "999", "rating": "4.9"}, ds.Rows[0])
	assert.Equal(t, "poco x5 pro", ds.Rows[3]["name"])
}

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(phonesCSV), Options{})
	require.NoError(t, err)
	assertPhones(t, ds)
}

func TestReadCSV_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    Options
		headers []string
		rows    []dataset.Row
	}{
		{
			name:    "empty input",
			input:   "",
			headers: nil,
			rows:    []dataset.Row{},
		},
		{
			name:    "header only",
			input:   "name,price\n",
			headers: []string{"name", "price"},
			rows:    []dataset.Row{},
		},
		{
			name:    "single row",
			input:   "name,price\ntest,100\n",
			headers: []string{"name", "price"},
			rows:    []dataset.Row{{"name": "test", "price": "100"}},
		},
		{
			name:    "short and long rows",
			input:   "a,b,c\n1\n1,2,3,4\n",
			headers: []string{"a", "b", "c"},
			rows:    []dataset.Row{{"a": "1"}, {"a": "1", "b": "2", "c": "3"}},
		},
		{
			name:    "quoted fields",
			input:   "name,note\n\"Alice, Bob\",\"He said \"\"hi\"\"\"\n",
			headers: []string{"name", "note"},
			rows:    []dataset.Row{{"name": "Alice, Bob", "note": `He said "hi"`}},
		},
		{
			name:    "byte order mark",
			input:   "\ufeffname,price\nx,1\n",
			headers: []string{"name", "price"},
			rows:    []dataset.Row{{"name": "x", "price": "1"}},
		},
		{
			name:    "semicolon delimiter",
			input:   "name;price\nx;1,5\n",
			opts:    Options{Delimiter: ';'},
			headers: []string{"name", "price"},
			rows:    []dataset.Row{{"name": "x", "price": "1,5"}},
		},
		{
			name:    "blank lines skipped",
			input:   "name\n\nx\n\n",
			headers: []string{"name"},
			rows:    []dataset.Row{{"name": "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadCSV(strings.NewReader(tt.input), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.headers, ds.Headers)
			assert.Equal(t, tt.rows, ds.Rows)
		})
	}
}

func TestReadFile_CSV(t *testing.T) {
	path := writeFile(t, "phones.csv", []byte(phonesCSV))

	ds, err := ReadFile(path, Options{})
	require.NoError(t, err)
	assertPhones(t, ds)
}

func TestReadFile_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phones.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(phonesCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	ds, err := ReadFile(path, Options{})
	require.NoError(t, err)
	assertPhones(t, ds)
}

func TestReadFile_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phones.csv.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(phonesCSV))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	ds, err := ReadFile(path, Options{})
	require.NoError(t, err)
	assertPhones(t, ds)
}

func TestReadFile_CorruptGzip(t *testing.T) {
	path := writeFile(t, "broken.csv.gz", []byte("definitely not gzip"))

	_, err := ReadFile(path, Options{})
	require.Error(t, err)

	var accessErr *FileAccessError
	assert.False(t, errors.As(err, &accessErr), "decode failures are not access errors")
}

// phoneRow is the parquet layout used by the parquet tests
type phoneRow struct {
	Name   string  `parquet:"name"`
	Brand  string  `parquet:"brand"`
	Price  int64   `parquet:"price"`
	Rating float64 `parquet:"rating"`
	Stock  *int32  `parquet:"stock,optional"`
}

func createParquetFile(t *testing.T, rows []phoneRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phones.parquet")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[phoneRow](f)
	_, err = writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return path
}

func TestReadFile_Parquet(t *testing.T) {
	stock := int32(12)
	path := createParquetFile(t, []phoneRow{
		{Name: "iphone 15 pro", Brand: "apple", Price: 999, Rating: 4.9, Stock: &stock},
		{Name: "galaxy s23 ultra", Brand: "samsung", Price: 1199, Rating: 4.8},
	})

	ds, err := ReadFile(path, Options{})
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"name", "brand", "price", "rating", "stock"}, ds.Headers)
	assert.Equal(t, "iphone 15 pro", ds.Rows[0]["name"])
	assert.Equal(t, "999", ds.Rows[0]["price"])
	assert.Equal(t, "4.9", ds.Rows[0]["rating"])
	assert.Equal(t, "12", ds.Rows[0]["stock"])

	_, hasStock := ds.Rows[1]["stock"]
	assert.False(t, hasStock, "null values should leave the cell absent")
}

func TestReadFile_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	ds, err := ReadFile(path, Options{})
	assert.Nil(t, ds)

	var accessErr *FileAccessError
	require.True(t, errors.As(err, &accessErr), "expected *FileAccessError, got %T", err)
	assert.Equal(t, path, accessErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "file '"+path+"' not found", err.Error())
}

func TestReadFile_Directory(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(dir, Options{})

	var accessErr *FileAccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Contains(t, err.Error(), "is a directory")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path   string
		format Format
		comp   compression
	}{
		{"data.csv", FormatCSV, compressionNone},
		{"DATA.CSV.GZ", FormatCSV, compressionGzip},
		{"data.tsv.zst", FormatCSV, compressionZstd},
		{"data.csv.zstd", FormatCSV, compressionZstd},
		{"dir.parquet/data.txt", FormatCSV, compressionNone},
		{"data.parquet", FormatParquet, compressionNone},
		{"data.parquet.gz", FormatParquet, compressionGzip},
		{"noext", FormatCSV, compressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, comp := detect(tt.path)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.comp, comp)
		})
	}
}
