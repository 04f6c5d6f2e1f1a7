package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how a file's bytes were obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // added from memory
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // "\r\n" was rewritten to "\n"
)

// File is one loaded source text with its line table.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offset of each '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based line and column; columns count bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Col) }

var bom = []byte{0xEF, 0xBB, 0xBF}

// canonical strips a leading BOM and folds CRLF line ends.
func canonical(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, bom); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func lineTable(content []byte) []uint32 {
	table := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return table
		}
		off += i
		table = append(table, uint32(off))
		off++
	}
}

func cleanPath(p string) string { return filepath.ToSlash(filepath.Clean(p)) }

// Position converts a byte offset into a line/column pair.
func (f *File) Position(off uint32) LineCol {
	// Newlines strictly before off give the zero-based line.
	line, _ := slices.BinarySearch(f.LineIdx, off)
	start := uint32(0)
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	n, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: n, Col: off - start + 1}
}

// GetLine returns line lineNum (1-based) without its newline, or "" when
// the file has no such line.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if lineNum > 1 {
		start = int(f.LineIdx[lineNum-2]) + 1
	}
	end := len(f.Content)
	if int(lineNum) <= len(f.LineIdx) {
		end = int(f.LineIdx[lineNum-1])
	}
	if start >= len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// Offset converts pos back into a byte offset. ok is false when pos lies
// past the end of its line.
func (f *File) Offset(pos LineCol) (off uint32, ok bool) {
	if pos.Line == 0 || pos.Col == 0 || int(pos.Line) > len(f.LineIdx)+1 {
		return 0, false
	}
	start := uint32(0)
	if pos.Line > 1 {
		start = f.LineIdx[pos.Line-2] + 1
	}
	if uint32(len(f.GetLine(pos.Line)))+1 < pos.Col {
		return 0, false
	}
	return start + pos.Col - 1, true
}
