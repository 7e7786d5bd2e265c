package model

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"
)

// FileType represents supported file types
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeXLSX represents Excel workbook file type
	FileTypeXLSX
	// FileTypeParquet represents Apache Parquet file type
	FileTypeParquet
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtXLSX is the Excel workbook extension
	ExtXLSX = ".xlsx"
	// ExtParquet is the Apache Parquet extension
	ExtParquet = ".parquet"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

// compressionExts lists recognized compression suffixes. Only the text
// formats may carry them; xlsx and parquet are containers of their own.
var compressionExts = []string{ExtGZ, ExtBZ2, ExtXZ, ExtZSTD}

// File represents a data file that can be decoded into a Table.
type File struct {
	path     string
	fileType FileType
}

// NewFile creates a new File.
func NewFile(path string) *File {
	return &File{
		path:     path,
		fileType: DetectFileType(path),
	}
}

// IsSupportedFile checks if the file has a supported extension.
func IsSupportedFile(fileName string) bool {
	return DetectFileType(fileName) != FileTypeUnsupported
}

// DetectFileType detects file type from extension, considering compressed
// files. Extension matching ignores case.
func DetectFileType(path string) FileType {
	lower := strings.ToLower(path)
	basePath := lower
	compressed := false
	for _, ext := range compressionExts {
		if strings.HasSuffix(lower, ext) {
			basePath = strings.TrimSuffix(lower, ext)
			compressed = true
			break
		}
	}

	switch filepath.Ext(basePath) {
	case ExtCSV:
		return FileTypeCSV
	case ExtTSV:
		return FileTypeTSV
	case ExtXLSX:
		if compressed {
			return FileTypeUnsupported
		}
		return FileTypeXLSX
	case ExtParquet:
		if compressed {
			return FileTypeUnsupported
		}
		return FileTypeParquet
	default:
		return FileTypeUnsupported
	}
}

// Path returns file path.
func (f *File) Path() string {
	return f.path
}

// Type returns file type.
func (f *File) Type() FileType {
	return f.fileType
}

// IsCompressed returns true if file carries a compression extension.
func (f *File) IsCompressed() bool {
	lower := strings.ToLower(f.path)
	for _, ext := range compressionExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ToTable decodes the file fully into memory as a Table.
func (f *File) ToTable() (*Table, error) {
	switch f.fileType {
	case FileTypeCSV:
		return f.parseDelimited(',')
	case FileTypeTSV:
		return f.parseDelimited('\t')
	case FileTypeXLSX:
		return f.parseXLSX()
	case FileTypeParquet:
		return f.parseParquet()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, f.path)
	}
}

// openReader opens the file and returns a reader that handles compression.
func (f *File) openReader() (io.Reader, func() error, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, nil, err
	}

	var reader io.Reader = file
	closer := file.Close

	lower := strings.ToLower(f.path)
	switch {
	case strings.HasSuffix(lower, ExtGZ):
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		reader = gzReader
		closer = func() error {
			gzReader.Close()
			return file.Close()
		}
	case strings.HasSuffix(lower, ExtBZ2):
		reader = bzip2.NewReader(file)
	case strings.HasSuffix(lower, ExtXZ):
		xzReader, err := xz.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		reader = xzReader
	case strings.HasSuffix(lower, ExtZSTD):
		decoder, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		reader = decoder
		closer = func() error {
			decoder.Close()
			return file.Close()
		}
	}

	return reader, closer, nil
}

// parseDelimited parses a delimited text file with compression support.
// The first row is the header; short rows are padded with empty fields so
// every record matches the header width.
func (f *File) parseDelimited(delimiter rune) (*Table, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer closer()

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1
	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, f.path)
	}

	header := NewHeader(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, padRecord(row, len(header)))
	}

	return NewTable(TableFromFilePath(f.path), header, records)
}

// parseXLSX parses the first sheet of an Excel workbook.
func (f *File) parseXLSX() (*Table, error) {
	xlsxFile, err := excelize.OpenFile(f.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = xlsxFile.Close()
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("%w: no sheets in %s", ErrEmptyFile, f.path)
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetNames[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, f.path)
	}

	header := NewHeader(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, padRecord(row, len(header)))
	}

	return NewTable(TableFromFilePath(f.path), header, records)
}

// parseParquet parses a Parquet file through the Arrow reader. Parquet
// needs random access, so the whole file is read into memory first.
func (f *File) parseParquet() (*Table, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, f.path)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	arrowTable, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer arrowTable.Release()

	schema := arrowTable.Schema()
	header := make(Header, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	var records []Record
	tableReader := array.NewTableReader(arrowTable, 0)
	defer tableReader.Release()

	for tableReader.Next() {
		batch := tableReader.Record()
		for i := range int(batch.NumRows()) {
			row := make(Record, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(i) {
					row[j] = ""
					continue
				}
				row[j] = col.ValueStr(i)
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parquet records: %w", err)
	}

	return NewTable(TableFromFilePath(f.path), header, records)
}

// padRecord pads row with empty fields up to width.
func padRecord(row []string, width int) Record {
	record := make(Record, width)
	for i := range width {
		if i < len(row) {
			record[i] = row[i]
		}
	}
	return record
}
