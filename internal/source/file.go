package source

// File holds one loaded source buffer plus the byte offset of every line
// start, computed once so diagnostics can map a byte offset to line:column
// without rescanning.
type File struct {
	ID          FileID
	Path        string // as given on the command line or import path
	AbsPath     string
	Content     []byte
	lineOffsets []uint32 // lineOffsets[i] = byte offset of line i (0-based)
}

func newFile(id FileID, path, absPath string, content []byte) File {
	f := File{ID: id, Path: path, AbsPath: absPath, Content: content}
	f.lineOffsets = computeLineOffsets(content)
	return f
}

func computeLineOffsets(content []byte) []uint32 {
	offsets := make([]uint32, 1, 64)
	offsets[0] = 0
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, uint32(i+1))
		}
	}
	return offsets
}

// Position is a human-facing (line, column) pair, both 1-based.
type Position struct {
	Line   int
	Column int
}

// PositionFor converts a byte offset into the file to a 1-based line/column.
// Column is counted in bytes, not runes.
func (f *File) PositionFor(off uint32) Position {
	lo, hi := 0, len(f.lineOffsets)-1
	line := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if f.lineOffsets[mid] <= off {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	col := int(off-f.lineOffsets[line]) + 1
	return Position{Line: line + 1, Column: col}
}

// LineText returns the raw byte content of the given 1-based line, excluding
// its trailing newline.
func (f *File) LineText(line int) []byte {
	if line < 1 || line > len(f.lineOffsets) {
		return nil
	}
	start := f.lineOffsets[line-1]
	var end uint32
	if line == len(f.lineOffsets) {
		end = uint32(len(f.Content))
	} else {
		end = f.lineOffsets[line]
	}
	text := f.Content[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return text
}

// Text returns the raw bytes covered by span, which must belong to this file.
func (f *File) Text(span Span) []byte {
	return f.Content[span.Start:span.End]
}
